package lsystem

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Pen carries the drawing attributes of the turtle.
type Pen struct {
	ColorIndex int
	Width      float64
	Down       bool
}

// TurtleState is the full cursor state: position plus an orthonormal
// frame (heading, left, up) and the pen. The initial turtle heads
// north (+Y) with up along +Z, like the original turtle interpreter.
type TurtleState struct {
	Position mgl64.Vec3
	Heading  mgl64.Vec3
	Left     mgl64.Vec3
	Up       mgl64.Vec3
	Pen      Pen
}

func NewTurtleState(width float64) TurtleState {
	return TurtleState{
		Heading: mgl64.Vec3{0, 1, 0},
		Left:    mgl64.Vec3{-1, 0, 0},
		Up:      mgl64.Vec3{0, 0, 1},
		Pen:     Pen{Width: width, Down: true},
	}
}

// Forward moves the turtle along its heading.
func (t *TurtleState) Forward(distance float64) {
	t.Position = t.Position.Add(t.Heading.Mul(distance))
}

// rotate spins the frame about the given axis; the axis must be one
// of the frame's own vectors so the frame stays orthonormal.
func (t *TurtleState) rotate(deg float64, axis mgl64.Vec3) {
	q := mgl64.QuatRotate(mgl64.DegToRad(deg), axis)
	t.Heading = q.Rotate(t.Heading)
	t.Left = q.Rotate(t.Left)
	t.Up = q.Rotate(t.Up)
}

func (t *TurtleState) TurnLeft(deg float64)  { t.rotate(deg, t.Up) }
func (t *TurtleState) TurnRight(deg float64) { t.rotate(-deg, t.Up) }
func (t *TurtleState) TurnAround()           { t.rotate(180, t.Up) }
func (t *TurtleState) PitchDown(deg float64) { t.rotate(deg, t.Left) }
func (t *TurtleState) PitchUp(deg float64)   { t.rotate(-deg, t.Left) }
func (t *TurtleState) RollLeft(deg float64)  { t.rotate(deg, t.Heading) }
func (t *TurtleState) RollRight(deg float64) { t.rotate(-deg, t.Heading) }

// StateStack saves turtle states for branching, last in first out.
type StateStack struct {
	states []TurtleState
}

func (s *StateStack) Push(st TurtleState) {
	s.states = append(s.states, st)
}

func (s *StateStack) Pop() (TurtleState, bool) {
	if len(s.states) == 0 {
		return TurtleState{}, false
	}
	st := s.states[len(s.states)-1]
	s.states = s.states[:len(s.states)-1]
	return st, true
}

func (s *StateStack) Len() int {
	return len(s.states)
}
