// Package grammarfile loads grammar definitions from YAML documents.
// It is a loader collaborator: rule syntax and semantics live in the
// lsystem package, this package only maps the file layout onto it.
package grammarfile

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phytolab/lsystem"
)

// File mirrors the YAML document layout.
type File struct {
	Name           string            `yaml:"name"`
	Axiom          string            `yaml:"axiom"`
	Rules          map[string]string `yaml:"rules"`
	Angle          float64           `yaml:"angle"`
	Step           float64           `yaml:"step"`
	Width          float64           `yaml:"width"`
	Normalize      bool              `yaml:"normalize"`
	MaxLength      int               `yaml:"max_length"`
	MaxGenerations int               `yaml:"max_generations"`
	Bindings       map[string]string `yaml:"bindings"`
	Palette        []string          `yaml:"palette"`
}

var opNames = map[string]lsystem.Op{
	"none":          lsystem.OpNone,
	"forward":       lsystem.OpForward,
	"move":          lsystem.OpMove,
	"turn_left":     lsystem.OpTurnLeft,
	"turn_right":    lsystem.OpTurnRight,
	"pitch_up":      lsystem.OpPitchUp,
	"pitch_down":    lsystem.OpPitchDown,
	"roll_left":     lsystem.OpRollLeft,
	"roll_right":    lsystem.OpRollRight,
	"turn_around":   lsystem.OpTurnAround,
	"push":          lsystem.OpPush,
	"pop":           lsystem.OpPop,
	"begin_polygon": lsystem.OpBeginPolygon,
	"end_polygon":   lsystem.OpEndPolygon,
	"next_color":    lsystem.OpNextColor,
	"scale_width":   lsystem.OpScaleWidth,
	"pen_up":        lsystem.OpPenUp,
	"pen_down":      lsystem.OpPenDown,
}

// parseBinding reads "forward" or "turn_left 45".
func parseBinding(s string) (lsystem.Command, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return lsystem.Command{}, fmt.Errorf("binding %q: want 'op' or 'op arg'", s)
	}
	op, ok := opNames[fields[0]]
	if !ok {
		return lsystem.Command{}, fmt.Errorf("binding %q: unknown op %q", s, fields[0])
	}
	cmd := lsystem.Command{Op: op}
	if len(fields) == 2 {
		arg, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return lsystem.Command{}, fmt.Errorf("binding %q: bad argument: %w", s, err)
		}
		cmd.Arg = arg
		cmd.HasArg = true
	}
	return cmd, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	c := color.RGBA{A: 0xff}
	if len(s) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, nil
}

// Grammar converts the decoded file into a validated grammar.
func (f *File) Grammar() (*lsystem.Grammar, error) {
	if f.Axiom == "" {
		return nil, fmt.Errorf("grammar %q: axiom is required", f.Name)
	}
	var opts []lsystem.GrammarOption
	if f.Angle != 0 {
		opts = append(opts, lsystem.WithAngle(f.Angle))
	}
	if f.Step != 0 {
		opts = append(opts, lsystem.WithStep(f.Step))
	}
	if f.Width != 0 {
		opts = append(opts, lsystem.WithWidth(f.Width))
	}
	if f.Normalize {
		opts = append(opts, lsystem.WithNormalizedWeights())
	}
	if f.MaxLength != 0 {
		opts = append(opts, lsystem.WithMaxLength(f.MaxLength))
	}
	if f.MaxGenerations != 0 {
		opts = append(opts, lsystem.WithMaxGenerations(f.MaxGenerations))
	}
	if len(f.Bindings) > 0 {
		bindings := lsystem.DefaultBindings()
		for sym, spec := range f.Bindings {
			cmd, err := parseBinding(spec)
			if err != nil {
				return nil, err
			}
			bindings[lsystem.Token(sym)] = cmd
		}
		opts = append(opts, lsystem.WithBindings(bindings))
	}
	if len(f.Palette) > 0 {
		palette := make([]color.RGBA, len(f.Palette))
		for i, s := range f.Palette {
			c, err := parseHexColor(s)
			if err != nil {
				return nil, err
			}
			palette[i] = c
		}
		opts = append(opts, lsystem.WithPalette(palette))
	}
	g, err := lsystem.NewGrammarFromRules(f.Axiom, f.Rules, opts...)
	if err != nil {
		return nil, fmt.Errorf("grammar %q: %w", f.Name, err)
	}
	return g, nil
}

type Decoder struct {
	yamlDecoder *yaml.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{yamlDecoder: yaml.NewDecoder(r)}
}

func (d *Decoder) Decode() (*lsystem.Grammar, error) {
	var f File
	if err := d.yamlDecoder.Decode(&f); err != nil {
		return nil, err
	}
	return f.Grammar()
}

func Decode(r io.Reader) (*lsystem.Grammar, error) {
	return NewDecoder(r).Decode()
}

func Load(path string) (*lsystem.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
