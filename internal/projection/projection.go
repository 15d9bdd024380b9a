// Package projection maps globe points onto the screen.
package projection

import "math"

// NearRatio is the fraction of the field of view below which the perspective
// denominator is treated as behind the viewer.
const NearRatio = 0.05

// Trig holds the sines and cosines of both rotation angles. It is computed
// once per frame and shared by every point.
type Trig struct {
	SinX, CosX float64
	SinY, CosY float64
}

func NewTrig(rotationX, rotationY float64) Trig {
	return Trig{
		SinX: math.Sin(rotationX),
		CosX: math.Cos(rotationX),
		SinY: math.Sin(rotationY),
		CosY: math.Cos(rotationY),
	}
}

// View is the part of the viewport geometry the projection needs.
type View struct {
	CenterX     float64
	CenterY     float64
	FieldOfView float64
}

// Project rotates (x, y, z) about the X axis and then the Y axis and applies
// a perspective divide. ok is false when the rotated point is at or behind
// the near plane, in which case the returned values are meaningless.
func Project(x, y, z float64, t Trig, v View) (px, py, scale float64, ok bool) {
	yRot := t.CosX*y - t.SinX*z
	zAfterX := t.SinX*y + t.CosX*z

	zRot := t.CosY*zAfterX - t.SinY*x
	xRot := t.SinY*zAfterX + t.CosY*x

	depth := v.FieldOfView - zRot
	if depth <= v.FieldOfView*NearRatio {
		return 0, 0, 0, false
	}

	scale = v.FieldOfView / depth
	return xRot*scale + v.CenterX, yRot*scale + v.CenterY, scale, true
}
