package lsystem

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Op is one turtle command kind. Symbols resolve to commands once at
// grammar-load time via the bindings table.
type Op int

const (
	OpNone Op = iota
	OpForward
	OpMove
	OpTurnLeft
	OpTurnRight
	OpPitchUp
	OpPitchDown
	OpRollLeft
	OpRollRight
	OpTurnAround
	OpPush
	OpPop
	OpBeginPolygon
	OpEndPolygon
	OpNextColor
	OpScaleWidth
	OpPenUp
	OpPenDown
)

// Command pairs an op with an optional constant argument; when no
// argument is bound the grammar default applies. A parametric
// symbol's first parameter overrides both, including an explicit 0.
type Command struct {
	Op     Op
	Arg    float64
	HasArg bool
}

// DefaultBindings is the classic turtle alphabet.
func DefaultBindings() map[Token]Command {
	return map[Token]Command{
		"F":  {Op: OpForward},
		"G":  {Op: OpForward},
		"f":  {Op: OpMove},
		"+":  {Op: OpTurnLeft},
		"-":  {Op: OpTurnRight},
		"&":  {Op: OpPitchDown},
		"^":  {Op: OpPitchUp},
		"\\": {Op: OpRollLeft},
		"/":  {Op: OpRollRight},
		"|":  {Op: OpTurnAround},
		"[":  {Op: OpPush},
		"]":  {Op: OpPop},
		"{":  {Op: OpBeginPolygon},
		"}":  {Op: OpEndPolygon},
		"'":  {Op: OpNextColor},
		"!":  {Op: OpScaleWidth, Arg: 0.7, HasArg: true},
	}
}

// DefaultPalette mirrors the original plotter's color cycle.
func DefaultPalette() []color.RGBA {
	return []color.RGBA{
		{R: 0xcc, G: 0x24, B: 0x1d, A: 0xff}, // red
		{R: 0x4c, G: 0x9a, B: 0x2a, A: 0xff}, // green
		{R: 0x1f, G: 0x5f, B: 0xc4, A: 0xff}, // blue
		{R: 0xe8, G: 0x85, B: 0x04, A: 0xff}, // orange
		{R: 0xd6, G: 0xc2, B: 0x0a, A: 0xff}, // yellow
		{R: 0x6b, G: 0x45, B: 0x23, A: 0xff}, // brown
	}
}

// Segment is one drawable line.
type Segment struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
	Color color.RGBA
	Width float64
}

func (s Segment) Length() float64 {
	return s.End.Sub(s.Start).Len()
}

// Polygon is a closed filled shape, used for leaf and flower
// terminals.
type Polygon struct {
	Vertices []mgl64.Vec3
	Color    color.RGBA
}

// Geometry is the ordered output of one build pass, handed to an
// external renderer.
type Geometry struct {
	Segments []Segment
	Polygons []Polygon
}

func (g *Geometry) TotalLength() float64 {
	total := 0.0
	for _, s := range g.Segments {
		total += s.Length()
	}
	return total
}

// Bounds returns the axis-aligned bounding box of all geometry.
func (g *Geometry) Bounds() (min, max mgl64.Vec3) {
	min = mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	grow := func(p mgl64.Vec3) {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	for _, s := range g.Segments {
		grow(s.Start)
		grow(s.End)
	}
	for _, p := range g.Polygons {
		for _, v := range p.Vertices {
			grow(v)
		}
	}
	if len(g.Segments) == 0 && len(g.Polygons) == 0 {
		min, max = mgl64.Vec3{}, mgl64.Vec3{}
	}
	return min, max
}

// Builder interprets a derived word into geometry in a single
// left-to-right pass, driving one turtle and one state stack.
type Builder struct {
	step     float64
	angle    float64
	width    float64
	bindings map[Token]Command
	palette  []color.RGBA

	turtle TurtleState
	stack  StateStack
	polys  [][]mgl64.Vec3
	geom   *Geometry
}

func NewBuilder(g *Grammar) *Builder {
	return &Builder{
		step:     g.Step,
		angle:    g.Angle,
		width:    g.Width,
		bindings: g.Bindings,
		palette:  g.Palette,
	}
}

func (b *Builder) reset() {
	b.turtle = NewTurtleState(b.width)
	b.stack = StateStack{}
	b.polys = nil
	b.geom = &Geometry{}
}

func (b *Builder) penColor() color.RGBA {
	if len(b.palette) == 0 {
		return color.RGBA{A: 0xff}
	}
	return b.palette[b.turtle.Pen.ColorIndex%len(b.palette)]
}

// move advances the turtle, emitting a segment when the pen is down,
// or a polygon vertex while a polygon is open.
func (b *Builder) move(distance float64, draw bool) {
	start := b.turtle.Position
	b.turtle.Forward(distance)
	if len(b.polys) > 0 {
		top := len(b.polys) - 1
		b.polys[top] = append(b.polys[top], b.turtle.Position)
		return
	}
	if draw && b.turtle.Pen.Down {
		b.geom.Segments = append(b.geom.Segments, Segment{
			Start: start,
			End:   b.turtle.Position,
			Color: b.penColor(),
			Width: b.turtle.Pen.Width,
		})
	}
}

// Build walks the word once and emits geometry. Unbound symbols are
// skipped; every ']' and '}' must match an earlier '[' or '{' in the
// same pass.
func (b *Builder) Build(word Word) (*Geometry, error) {
	b.reset()
	for i, sym := range word {
		cmd, ok := b.bindings[sym.Token]
		if !ok {
			continue
		}
		arg, hasArg := cmd.Arg, cmd.HasArg
		if len(sym.Params) > 0 {
			arg, hasArg = sym.Params[0], true
		}
		switch cmd.Op {
		case OpForward:
			if !hasArg {
				arg = b.step
			}
			b.move(arg, true)
		case OpMove:
			if !hasArg {
				arg = b.step
			}
			b.move(arg, false)
		case OpTurnLeft:
			b.turtle.TurnLeft(b.angleArg(arg, hasArg))
		case OpTurnRight:
			b.turtle.TurnRight(b.angleArg(arg, hasArg))
		case OpPitchUp:
			b.turtle.PitchUp(b.angleArg(arg, hasArg))
		case OpPitchDown:
			b.turtle.PitchDown(b.angleArg(arg, hasArg))
		case OpRollLeft:
			b.turtle.RollLeft(b.angleArg(arg, hasArg))
		case OpRollRight:
			b.turtle.RollRight(b.angleArg(arg, hasArg))
		case OpTurnAround:
			b.turtle.TurnAround()
		case OpPush:
			b.stack.Push(b.turtle)
		case OpPop:
			st, ok := b.stack.Pop()
			if !ok {
				return nil, &StackUnderflowError{Token: sym.Token, Index: i}
			}
			b.turtle = st
		case OpBeginPolygon:
			b.polys = append(b.polys, []mgl64.Vec3{b.turtle.Position})
		case OpEndPolygon:
			if len(b.polys) == 0 {
				return nil, &StackUnderflowError{Token: sym.Token, Index: i}
			}
			verts := b.polys[len(b.polys)-1]
			b.polys = b.polys[:len(b.polys)-1]
			if len(verts) >= 3 {
				b.geom.Polygons = append(b.geom.Polygons, Polygon{Vertices: verts, Color: b.penColor()})
			}
		case OpNextColor:
			b.turtle.Pen.ColorIndex++
		case OpScaleWidth:
			if len(sym.Params) > 0 {
				b.turtle.Pen.Width = arg
			} else {
				b.turtle.Pen.Width *= arg
			}
		case OpPenUp:
			b.turtle.Pen.Down = false
		case OpPenDown:
			b.turtle.Pen.Down = true
		}
	}
	return b.geom, nil
}

func (b *Builder) angleArg(arg float64, hasArg bool) float64 {
	if !hasArg {
		return b.angle
	}
	return arg
}

// Build interprets an already-derived word with the grammar's turtle
// configuration.
func Build(g *Grammar, word Word) (*Geometry, error) {
	return NewBuilder(g).Build(word)
}
