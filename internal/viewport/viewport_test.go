package viewport

import (
	"math"
	"testing"
	"time"

	"github.com/ThatOtherAndrew/netsphere/internal/config"
	"github.com/ThatOtherAndrew/netsphere/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(dots int) *models.App {
	settings := config.Default()
	settings.DotsAmount = dots
	settings.Seed = 11
	return models.NewApp(settings)
}

func TestRecompute(t *testing.T) {
	for _, tc := range []struct {
		width, height int
		ratio, scale  float64
	}{
		{1920, 1080, 1, 0.5},
		{800, 600, 2, 0.3},
		{1, 1, 1.5, 1},
	} {
		g := Recompute(tc.width, tc.height, tc.ratio, tc.scale)
		w := float64(tc.width)
		assert.InDelta(t, w*tc.scale, g.GlobeRadius, 1e-9)
		assert.InDelta(t, -g.GlobeRadius, g.GlobeCenterZ, 1e-9)
		assert.InDelta(t, w*0.8, g.FieldOfView, 1e-9)
		assert.InDelta(t, w/2, g.CenterX, 1e-9)
		assert.InDelta(t, float64(tc.height)/2, g.CenterY, 1e-9)
		assert.Equal(t, tc.ratio, g.PixelRatio)
	}

	assert.Equal(t, 1.0, Recompute(10, 10, 0, 0.5).PixelRatio)
}

func TestApplyReplacesGeometryAndDots(t *testing.T) {
	app := newApp(40)
	app.Hovered = 3
	app.AnyHovered = true

	New(app).Apply(Size{Width: 1000, Height: 700, Scale: 2})

	require.Len(t, app.Dots, 40)
	assert.Equal(t, 500.0, app.Geometry.GlobeRadius)
	assert.Equal(t, 2.0, app.Geometry.PixelRatio)
	assert.Equal(t, -1, app.Hovered)
	assert.False(t, app.AnyHovered)
	for _, d := range app.Dots {
		dz := d.Z - app.Geometry.GlobeCenterZ
		assert.InDelta(t, app.Geometry.GlobeRadius, math.Sqrt(d.X*d.X+d.Y*d.Y+dz*dz), 1e-6)
	}
}

func TestApplySameSizeTwice(t *testing.T) {
	app := newApp(30)
	size := Size{Width: 1280, Height: 720, Scale: 1}

	New(app).Apply(size)
	firstGeometry := app.Geometry
	firstDots := append([]models.Dot(nil), app.Dots...)

	New(app).Apply(size)
	assert.Equal(t, firstGeometry, app.Geometry)
	require.Len(t, app.Dots, len(firstDots))
	assert.NotEqual(t, firstDots, app.Dots)
}

func TestDebouncer(t *testing.T) {
	start := time.Unix(1000, 0)
	initial := Size{Width: 800, Height: 600, Scale: 1}
	d := NewDebouncer(250*time.Millisecond, 1)

	_, ok := d.Observe(initial, 1, start)
	assert.False(t, ok)

	// a burst of configures keeps resetting the window
	_, ok = d.Observe(Size{Width: 900, Height: 600, Scale: 1}, 2, start.Add(10*time.Millisecond))
	assert.False(t, ok)
	_, ok = d.Observe(Size{Width: 1000, Height: 600, Scale: 1}, 3, start.Add(200*time.Millisecond))
	assert.False(t, ok)
	_, ok = d.Observe(Size{Width: 1000, Height: 600, Scale: 1}, 3, start.Add(400*time.Millisecond))
	assert.False(t, ok)

	size, ok := d.Observe(Size{Width: 1000, Height: 600, Scale: 1}, 3, start.Add(450*time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, Size{Width: 1000, Height: 600, Scale: 1}, size)

	_, ok = d.Observe(size, 3, start.Add(time.Second))
	assert.False(t, ok)
}

func TestDebouncerBurstBackToApplied(t *testing.T) {
	start := time.Unix(1000, 0)
	initial := Size{Width: 800, Height: 600, Scale: 1}
	d := NewDebouncer(250*time.Millisecond, 1)

	_, ok := d.Observe(Size{Width: 900, Height: 600, Scale: 1}, 2, start)
	assert.False(t, ok)
	_, ok = d.Observe(initial, 3, start.Add(50*time.Millisecond))
	assert.False(t, ok)

	size, ok := d.Observe(initial, 3, start.Add(time.Second))
	assert.True(t, ok)
	assert.Equal(t, initial, size)
}

func TestDebouncerRepeatedConfigure(t *testing.T) {
	start := time.Unix(1000, 0)
	initial := Size{Width: 800, Height: 600, Scale: 1}
	d := NewDebouncer(250*time.Millisecond, 4)

	_, ok := d.Observe(initial, 5, start)
	assert.False(t, ok)

	size, ok := d.Observe(initial, 5, start.Add(300*time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, initial, size)

	// fires once per burst
	_, ok = d.Observe(initial, 5, start.Add(time.Second))
	assert.False(t, ok)
}

func TestDebouncerRegeneratesSameSize(t *testing.T) {
	app := newApp(30)
	size := Size{Width: 1280, Height: 720, Scale: 1}
	New(app).Apply(size)
	before := append([]models.Dot(nil), app.Dots...)

	start := time.Unix(1000, 0)
	d := NewDebouncer(0, 1)
	next, ok := d.Observe(size, 2, start)
	require.True(t, ok)

	New(app).Apply(next)
	assert.NotEqual(t, before, app.Dots)
}

func TestDebouncerScaleChange(t *testing.T) {
	start := time.Unix(1000, 0)
	d := NewDebouncer(0, 1)

	size, ok := d.Observe(Size{Width: 800, Height: 600, Scale: 2}, 2, start)
	assert.True(t, ok)
	assert.Equal(t, 2, size.Scale)
}
