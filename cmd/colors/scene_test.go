package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/learngl/mesh"
)

func TestCubeVertices(t *testing.T) {
	layout := mesh.Layout{3, 3, 2}
	require.NoError(t, layout.Validate(cubeVertices))
	assert.Len(t, cubeVertices, 36*int(layout.Stride()))
}

func TestCubeModel(t *testing.T) {
	require.Len(t, cubePositions, 10)

	// The first cube is not rotated.
	assert.True(t, cubeModel(0).ApproxEqual(mgl32.Ident4()))

	for i, pos := range cubePositions {
		center := cubeModel(i).Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
		assert.True(t, center.ApproxEqual(pos), "cube %d is centered at %v, not %v", i, center, pos)
	}

	// Rotation keeps the size of the cube.
	corner := cubeModel(3).Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1}).Vec3()
	assert.InDelta(t, math.Sqrt(0.75), float64(corner.Sub(cubePositions[3]).Len()), 1e-5)
}

func TestLampModel(t *testing.T) {
	corner := lampModel().Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1}).Vec3()
	assert.True(t, corner.ApproxEqual(lampPosition.Add(mgl32.Vec3{0.1, 0.1, 0.1})))
}

func TestLightColors(t *testing.T) {
	ambient, diffuse := lightColors(0)
	assert.Equal(t, mgl32.Vec3{}, ambient)
	assert.Equal(t, mgl32.Vec3{}, diffuse)

	ambient, diffuse = lightColors(1)
	assert.InDelta(t, 0.2*math.Sin(2.0), float64(ambient.X()), 1e-6)
	assert.InDelta(t, 0.5*math.Sin(0.7), float64(diffuse.Y()), 1e-6)
	assert.InDelta(t, 0.5*math.Sin(1.3), float64(diffuse.Z()), 1e-6)
}
