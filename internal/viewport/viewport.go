package viewport

import (
	"time"

	"github.com/ThatOtherAndrew/netsphere/internal/field"
	"github.com/ThatOtherAndrew/netsphere/internal/models"
	"github.com/rs/zerolog/log"
)

// FieldOfViewRatio scales the surface width into the perspective distance.
const FieldOfViewRatio = 0.8

// Size is a surface size in logical pixels with its integer output scale.
type Size struct {
	Width  int
	Height int
	Scale  int
}

func Recompute(width, height int, pixelRatio, globeScale float64) models.Geometry {
	w, h := float64(width), float64(height)
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	radius := w * globeScale
	return models.Geometry{
		Width:        w,
		Height:       h,
		PixelRatio:   pixelRatio,
		GlobeRadius:  radius,
		GlobeCenterZ: -radius,
		CenterX:      w / 2,
		CenterY:      h / 2,
		FieldOfView:  w * FieldOfViewRatio,
	}
}

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

// Apply recomputes the geometry for size and regenerates the dots. Both are
// replaced before returning so no frame sees new geometry with old dots.
func (a *App) Apply(size Size) {
	s := a.app.Settings
	geometry := Recompute(size.Width, size.Height, float64(size.Scale), s.GlobeScale)
	dots := field.Generate(a.app.Rand, s.DotsAmount, geometry.GlobeRadius, geometry.GlobeCenterZ, a.app.Dots)

	a.app.Geometry = geometry
	a.app.Dots = dots
	a.app.Hovered = -1
	a.app.AnyHovered = false
	a.app.Segments = a.app.Segments[:0]

	log.Debug().
		Int("width", size.Width).
		Int("height", size.Height).
		Int("scale", size.Scale).
		Int("dots", len(dots)).
		Msg("Regenerated globe")
}

// Debouncer reports the surface size once resize events have stopped
// arriving for the quiescence window. Every event counts, so a burst that
// ends at the size already applied still regenerates.
type Debouncer struct {
	quiet     time.Duration
	serial    uint64
	pending   bool
	changedAt time.Time
}

// NewDebouncer starts from the resize serial of the size already applied.
func NewDebouncer(quiet time.Duration, serial uint64) *Debouncer {
	return &Debouncer{quiet: quiet, serial: serial}
}

// Observe records the current size and resize serial. It returns the size to
// apply once the serial has not moved for the window.
func (d *Debouncer) Observe(size Size, serial uint64, now time.Time) (Size, bool) {
	if serial != d.serial {
		d.serial = serial
		d.pending = true
		d.changedAt = now
	}
	if !d.pending || now.Sub(d.changedAt) < d.quiet {
		return Size{}, false
	}
	d.pending = false
	return size, true
}
