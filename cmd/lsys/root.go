package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/phytolab/lsystem"
	"github.com/phytolab/lsystem/grammarfile"
)

var (
	grammarPath string
	presetName  string
	generations int
	seed        uint64
	cpuprofile  string

	profileFile *os.File
)

var rootCmd = &cobra.Command{
	Use:           "lsys",
	Short:         "Derive L-system grammars and interpret them as turtle geometry",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cpuprofile == "" {
			return nil
		}
		f, err := os.Create(cpuprofile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return err
		}
		profileFile = f
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profileFile != nil {
			pprof.StopCPUProfile()
			profileFile.Close()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&grammarPath, "grammar", "g", "", "path to a YAML grammar definition")
	pf.StringVarP(&presetName, "preset", "p", "", "name of a built-in grammar (see 'lsys presets')")
	pf.IntVarP(&generations, "generations", "n", 4, "number of generations to derive")
	pf.Uint64Var(&seed, "seed", 1, "random seed for stochastic grammars")
	pf.StringVar(&cpuprofile, "cpuprofile", "", "write cpu profile to file")
}

func loadGrammar() (*lsystem.Grammar, error) {
	switch {
	case grammarPath != "" && presetName != "":
		return nil, fmt.Errorf("--grammar and --preset are mutually exclusive")
	case grammarPath != "":
		return grammarfile.Load(grammarPath)
	case presetName != "":
		p, ok := presets[presetName]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q, run 'lsys presets'", presetName)
		}
		return p.build()
	default:
		return nil, fmt.Errorf("either --grammar or --preset is required")
	}
}
