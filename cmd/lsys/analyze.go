package main

import (
	"github.com/spf13/cobra"

	"github.com/phytolab/lsystem"
)

var analyzeAddr string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Serve growth-analysis charts over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGrammar()
		if err != nil {
			return err
		}
		return lsystem.New(g, seed).ServeAnalysis(analyzeAddr, generations)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeAddr, "addr", ":8081", "listen address for the chart server")
	rootCmd.AddCommand(analyzeCmd)
}
