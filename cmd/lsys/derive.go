package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phytolab/lsystem"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Print the derived symbol string",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGrammar()
		if err != nil {
			return err
		}
		word, err := lsystem.Derive(g, generations, seed)
		if err != nil {
			return err
		}
		fmt.Println(word)
		color.Cyan("%d symbols after %d generations (seed %d)", len(word), generations, seed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deriveCmd)
}
