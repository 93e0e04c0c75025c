package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLooksDownNegativeZ(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 6})
	assert.InDelta(t, 0, c.Front.X(), 1e-6)
	assert.InDelta(t, 0, c.Front.Y(), 1e-6)
	assert.InDelta(t, -1, c.Front.Z(), 1e-6)
	assert.InDelta(t, 1, c.Right.X(), 1e-6)
	assert.InDelta(t, 1, c.Up.Y(), 1e-6)
}

func TestProcessKeyboard(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 0})

	c.ProcessKeyboard(Forward, 1)
	assert.InDelta(t, -DefaultSpeed, c.Position.Z(), 1e-5)
	c.ProcessKeyboard(Backward, 1)
	assert.InDelta(t, 0, c.Position.Z(), 1e-5)
	c.ProcessKeyboard(Right, 2)
	assert.InDelta(t, 2*DefaultSpeed, c.Position.X(), 1e-5)
	c.ProcessKeyboard(Left, 2)
	assert.InDelta(t, 0, c.Position.X(), 1e-5)
}

func TestPitchIsClamped(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.ProcessMouseMovement(0, 10000)
	assert.Equal(t, float32(89), c.Pitch)
	c.ProcessMouseMovement(0, -20000)
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestZoomIsClamped(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.ProcessMouseScroll(10)
	assert.Equal(t, float32(35), c.Zoom)
	c.ProcessMouseScroll(100)
	assert.Equal(t, float32(1), c.Zoom)
	c.ProcessMouseScroll(-100)
	assert.Equal(t, float32(45), c.Zoom)
}

func TestViewMatrixMovesWorld(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 6})
	origin := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -6, origin.Z(), 1e-5)
}

func TestStateFirstMouse(t *testing.T) {
	s := NewState(New(mgl32.Vec3{}), 800, 600)

	// The first event only records the position.
	s.CursorMoved(100, 100)
	assert.Equal(t, DefaultYaw, s.Camera.Yaw)
	assert.Equal(t, DefaultPitch, s.Camera.Pitch)

	s.CursorMoved(110, 90)
	assert.InDelta(t, DefaultYaw+1, s.Camera.Yaw, 1e-5)
	assert.InDelta(t, DefaultPitch+1, s.Camera.Pitch, 1e-5)
}

func TestStateTiming(t *testing.T) {
	s := NewState(New(mgl32.Vec3{}), 800, 600)
	s.Tick(1.0)
	s.Tick(1.5)
	require.InDelta(t, 0.5, s.DeltaTime, 1e-6)

	s.Move(Forward)
	assert.InDelta(t, -DefaultSpeed*0.5, s.Camera.Position.Z(), 1e-5)
}

func TestStateResizeAndScroll(t *testing.T) {
	s := NewState(New(mgl32.Vec3{}), 800, 600)
	assert.InDelta(t, 800.0/600.0, s.Aspect(), 1e-6)

	s.FramebufferResized(1280, 720)
	assert.InDelta(t, 1280.0/720.0, s.Aspect(), 1e-6)

	s.FramebufferResized(0, 0)
	assert.Equal(t, float32(1), s.Aspect())

	s.Scrolled(0, 5)
	assert.Equal(t, float32(40), s.Camera.Zoom)
}
