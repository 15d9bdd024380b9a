package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var view = View{CenterX: 400, CenterY: 300, FieldOfView: 640}

func TestProjectWithoutRotation(t *testing.T) {
	trig := NewTrig(0, 0)

	// a point on the Y axis at the globe centre depth
	radius, centerZ := 400.0, -400.0
	px, py, scale, ok := Project(0, radius, centerZ, trig, view)
	assert.True(t, ok)
	expected := view.FieldOfView / (view.FieldOfView - centerZ)
	assert.InDelta(t, expected, scale, 1e-12)
	assert.InDelta(t, view.CenterX, px, 1e-9)
	assert.InDelta(t, view.CenterY+radius*scale, py, 1e-9)
}

func TestProjectSouthPole(t *testing.T) {
	radius, centerZ := 400.0, -400.0
	phi, theta := math.Pi, 1.3
	x := radius * math.Sin(phi) * math.Cos(theta)
	y := radius * math.Sin(phi) * math.Sin(theta)
	z := radius*math.Cos(phi) + centerZ

	px, py, scale, ok := Project(x, y, z, NewTrig(0, 0), view)
	assert.True(t, ok)
	assert.InDelta(t, view.FieldOfView/(view.FieldOfView+2*radius), scale, 1e-12)
	assert.InDelta(t, view.CenterX, px, 1e-9)
	assert.InDelta(t, view.CenterY, py, 1e-9)
}

func TestProjectRotatesXThenY(t *testing.T) {
	// a quarter turn about X maps +Y onto +Z, then a quarter turn about Y
	// maps +Z onto +X
	trig := NewTrig(math.Pi/2, math.Pi/2)
	px, py, scale, ok := Project(0, 100, 0, trig, view)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, scale, 1e-9)
	assert.InDelta(t, view.CenterX+100, px, 1e-9)
	assert.InDelta(t, view.CenterY, py, 1e-9)
}

func TestProjectDepthFalloff(t *testing.T) {
	trig := NewTrig(0, 0)
	_, _, near, ok := Project(0, 0, -100, trig, view)
	assert.True(t, ok)
	_, _, far, ok := Project(0, 0, -800, trig, view)
	assert.True(t, ok)
	assert.Greater(t, near, far)
	assert.Greater(t, far, 0.0)
}

func TestProjectNearPlane(t *testing.T) {
	trig := NewTrig(0, 0)

	_, _, _, ok := Project(0, 0, view.FieldOfView, trig, view)
	assert.False(t, ok)

	_, _, _, ok = Project(0, 0, view.FieldOfView*2, trig, view)
	assert.False(t, ok)

	_, _, scale, ok := Project(0, 0, view.FieldOfView*(1-2*NearRatio), trig, view)
	assert.True(t, ok)
	assert.InDelta(t, 1/(2*NearRatio), scale, 1e-9)
}
