package lsystem

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func assertVec(t *testing.T, expected, actual mgl64.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X(), actual.X(), eps)
	assert.InDelta(t, expected.Y(), actual.Y(), eps)
	assert.InDelta(t, expected.Z(), actual.Z(), eps)
}

func TestInitialFrameHeadsNorth(t *testing.T) {
	st := NewTurtleState(1)
	assertVec(t, mgl64.Vec3{0, 1, 0}, st.Heading)
	assertVec(t, mgl64.Vec3{-1, 0, 0}, st.Left)
	assertVec(t, mgl64.Vec3{0, 0, 1}, st.Up)
	assert.True(t, st.Pen.Down)
	assert.Equal(t, 1.0, st.Pen.Width)
}

func TestForward(t *testing.T) {
	st := NewTurtleState(1)
	st.Forward(2.5)
	assertVec(t, mgl64.Vec3{0, 2.5, 0}, st.Position)
}

func TestTurnLeftQuarter(t *testing.T) {
	st := NewTurtleState(1)
	st.TurnLeft(90)
	assertVec(t, mgl64.Vec3{-1, 0, 0}, st.Heading)
	assertVec(t, mgl64.Vec3{0, -1, 0}, st.Left)
	assertVec(t, mgl64.Vec3{0, 0, 1}, st.Up)
}

func TestTurnRightUndoesTurnLeft(t *testing.T) {
	st := NewTurtleState(1)
	st.TurnLeft(25.7)
	st.TurnRight(25.7)
	assertVec(t, mgl64.Vec3{0, 1, 0}, st.Heading)
}

func TestPitch(t *testing.T) {
	st := NewTurtleState(1)
	st.PitchDown(90)
	assertVec(t, mgl64.Vec3{0, 0, -1}, st.Heading)

	st = NewTurtleState(1)
	st.PitchUp(90)
	assertVec(t, mgl64.Vec3{0, 0, 1}, st.Heading)
}

func TestRollKeepsHeading(t *testing.T) {
	st := NewTurtleState(1)
	st.RollLeft(90)
	assertVec(t, mgl64.Vec3{0, 1, 0}, st.Heading)
	assertVec(t, mgl64.Vec3{1, 0, 0}, st.Up)
}

func TestTurnAround(t *testing.T) {
	st := NewTurtleState(1)
	st.TurnAround()
	assertVec(t, mgl64.Vec3{0, -1, 0}, st.Heading)
}

func TestFrameStaysOrthonormal(t *testing.T) {
	st := NewTurtleState(1)
	for i := 0; i < 100; i++ {
		st.TurnLeft(25.7)
		st.PitchDown(13.1)
		st.RollRight(7.9)
	}
	assert.InDelta(t, 1, st.Heading.Len(), 1e-6)
	assert.InDelta(t, 1, st.Left.Len(), 1e-6)
	assert.InDelta(t, 1, st.Up.Len(), 1e-6)
	assert.InDelta(t, 0, st.Heading.Dot(st.Left), 1e-6)
	assert.InDelta(t, 0, st.Heading.Dot(st.Up), 1e-6)
	assert.InDelta(t, 0, st.Left.Dot(st.Up), 1e-6)
}

func TestStateStackLIFO(t *testing.T) {
	var stack StateStack
	a := NewTurtleState(1)
	b := NewTurtleState(2)
	stack.Push(a)
	stack.Push(b)
	assert.Equal(t, 2, stack.Len())

	got, ok := stack.Pop()
	assert.True(t, ok)
	assert.Equal(t, 2.0, got.Pen.Width)

	got, ok = stack.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1.0, got.Pen.Width)

	_, ok = stack.Pop()
	assert.False(t, ok)
}
