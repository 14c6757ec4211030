package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phytolab/lsystem"
)

var outPath string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Derive and interpret the grammar, printing geometry stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGrammar()
		if err != nil {
			return err
		}
		geom, err := lsystem.Generate(g, generations, seed)
		if err != nil {
			return err
		}
		min, max := geom.Bounds()
		color.Green("segments:      %d", len(geom.Segments))
		color.Green("polygons:      %d", len(geom.Polygons))
		fmt.Printf("total length:  %.2f\n", geom.TotalLength())
		fmt.Printf("bounds:        [%.2f %.2f %.2f] .. [%.2f %.2f %.2f]\n",
			min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z())
		if outPath == "" {
			return nil
		}
		return writeSegments(geom, outPath)
	},
}

// writeSegments dumps one segment per line:
// x1 y1 z1 x2 y2 z2 #rrggbb width
func writeSegments(geom *lsystem.Geometry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, s := range geom.Segments {
		fmt.Fprintf(w, "%g %g %g %g %g %g #%02x%02x%02x %g\n",
			s.Start.X(), s.Start.Y(), s.Start.Z(),
			s.End.X(), s.End.Y(), s.End.Z(),
			s.Color.R, s.Color.G, s.Color.B, s.Width)
	}
	return w.Flush()
}

func init() {
	buildCmd.Flags().StringVarP(&outPath, "out", "o", "", "write segments to a file, one per line")
	rootCmd.AddCommand(buildCmd)
}
