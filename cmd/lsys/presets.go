package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phytolab/lsystem"
)

type preset struct {
	about string
	build func() (*lsystem.Grammar, error)
}

var presets = map[string]preset{
	"koch": {
		about: "Koch curve variant, F -> F+F--F+F at 60 degrees",
		build: func() (*lsystem.Grammar, error) {
			return lsystem.NewGrammarFromRules("F",
				map[string]string{"F": "F+F--F+F"},
				lsystem.WithAngle(60), lsystem.WithStep(4))
		},
	},
	"plant": {
		about: "branching plant, F -> F[+F]F[-F]F at 25.7 degrees",
		build: func() (*lsystem.Grammar, error) {
			return lsystem.NewGrammarFromRules("F",
				map[string]string{"F": "F[+F]F[-F]F"},
				lsystem.WithAngle(25.7))
		},
	},
	"tree": {
		about: "two-rule tree, X -> F[+X][-X]FX with F -> FF",
		build: func() (*lsystem.Grammar, error) {
			return lsystem.NewGrammarFromRules("X",
				map[string]string{"X": "F[+X][-X]FX", "F": "FF"},
				lsystem.WithAngle(25.7))
		},
	},
	"sierpinski": {
		about: "Sierpinski arrowhead, F/G at 60 degrees",
		build: func() (*lsystem.Grammar, error) {
			return lsystem.NewGrammarFromRules("F",
				map[string]string{"F": "G-F-G", "G": "F+G+F"},
				lsystem.WithAngle(60))
		},
	},
	"bush": {
		about: "3D bush using pitch and roll, A -> F[&A][^A]/A",
		build: func() (*lsystem.Grammar, error) {
			return lsystem.NewGrammarFromRules("A",
				map[string]string{"A": "F[&A][^A]/A"},
				lsystem.WithAngle(22.5))
		},
	},
	"stochastic-plant": {
		about: "stochastic plant with three weighted branching shapes",
		build: func() (*lsystem.Grammar, error) {
			return lsystem.NewGrammarFromRules("F",
				map[string]string{"F": "0.33 F[+F]F[-F]F; 0.33 F[+F]F; 0.34 F[-F]F"},
				lsystem.WithAngle(25.7))
		},
	},
	"row-of-trees": {
		about: "parametric growth, A(s) -> F(s)[+A(s/1.456)][-A(s/1.456)]",
		build: func() (*lsystem.Grammar, error) {
			return lsystem.NewGrammarFromRules("A(1)",
				map[string]string{"A(s)": "F(s)[+A(s/1.456)][-A(s/1.456)]"},
				lsystem.WithAngle(85))
		},
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in grammars",
	Run: func(cmd *cobra.Command, args []string) {
		names := make([]string, 0, len(presets))
		for name := range presets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			color.Yellow("%-18s", name)
			fmt.Printf("  %s\n", presets[name].about)
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
