package update

import (
	"math"

	"github.com/ThatOtherAndrew/netsphere/internal/interact"
	"github.com/ThatOtherAndrew/netsphere/internal/models"
	"github.com/ThatOtherAndrew/netsphere/internal/projection"
)

// PointerSource is the window state the frame reads pointer input from.
type PointerSource interface {
	GetCursorPos() (float64, float64)
	PointerInside() bool
	TakeClick() (float64, float64, bool)
}

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

func Lerp(start, end, t float64) float64 {
	return start + (end-start)*t
}

// UpdatePointer copies the latest pointer state. A click stays pending until
// a frame resolves it.
func (a *App) UpdatePointer(src PointerSource) {
	p := &a.app.Pointer
	p.X, p.Y = src.GetCursorPos()
	p.Over = src.PointerInside()
	if x, y, ok := src.TakeClick(); ok {
		p.ClickX, p.ClickY, p.Clicked = x, y, true
	}
}

// UpdateSpeed eases the rotation speed toward the hover or base speed,
// depending on whether a dot was hovered in the previous frame.
func (a *App) UpdateSpeed() {
	s := a.app.Settings
	speed := &a.app.Speed
	if a.app.AnyHovered {
		speed.Target = s.HoverSpeed
	} else {
		speed.Target = s.BaseSpeed
	}
	speed.Current = Lerp(speed.Current, speed.Target, s.TransitionSpeed)
}

func (a *App) UpdateRotation() {
	r := &a.app.Rotation
	r.X = math.Mod(r.X+a.app.Speed.Current, 2*math.Pi)
	r.Y = math.Mod(r.Y+a.app.Speed.Current, 2*math.Pi)
}

// ProjectDots writes the screen position and scale of every dot for the
// current rotation and clears its hover flag.
func (a *App) ProjectDots() {
	trig := projection.NewTrig(a.app.Rotation.X, a.app.Rotation.Y)
	g := a.app.Geometry
	view := projection.View{CenterX: g.CenterX, CenterY: g.CenterY, FieldOfView: g.FieldOfView}

	for i := range a.app.Dots {
		d := &a.app.Dots[i]
		d.Hovered = false
		d.ProjX, d.ProjY, d.Scale, d.Visible = projection.Project(d.X, d.Y, d.Z, trig, view)
	}
}

func (a *App) UpdateHover() {
	a.app.Hovered = interact.ResolveHover(a.app.Dots, a.app.Pointer, a.app.Settings.DotRadius)
	a.app.AnyHovered = a.app.Hovered >= 0
}

// UpdateLines collects every pair of visible dots closer on screen than the
// line distance scaled by the lower-indexed dot's perspective.
func (a *App) UpdateLines() {
	segments := a.app.Segments[:0]
	dots := a.app.Dots
	lineDistance := a.app.Settings.LineDistance

	for i := range dots {
		d1 := &dots[i]
		if !d1.Visible {
			continue
		}
		limit := lineDistance * d1.Scale
		limit *= limit
		for j := i + 1; j < len(dots); j++ {
			d2 := &dots[j]
			if !d2.Visible {
				continue
			}
			dx := d1.ProjX - d2.ProjX
			dy := d1.ProjY - d2.ProjY
			if dx*dx+dy*dy < limit {
				segments = append(segments, models.Segment{A: i, B: j})
			}
		}
	}
	a.app.Segments = segments
}

// UpdateDrawOrder lists visible dots by index with the hovered one moved to
// the end so it is drawn on top.
func (a *App) UpdateDrawOrder() {
	order := a.app.DrawOrder[:0]
	for i := range a.app.Dots {
		if a.app.Dots[i].Visible && i != a.app.Hovered {
			order = append(order, i)
		}
	}
	if a.app.Hovered >= 0 {
		order = append(order, a.app.Hovered)
	}
	a.app.DrawOrder = order
}

func (a *App) ResolveClick() (string, bool) {
	return interact.ResolveClick(a.app.Dots, a.app.DrawOrder, &a.app.Pointer, a.app.Settings.DotRadius, a.app.Link)
}

// Frame advances the animation by one tick and returns the link to open if
// the pending click landed on a linked dot.
func (a *App) Frame() (string, bool) {
	a.UpdateSpeed()
	a.UpdateRotation()
	a.ProjectDots()
	a.UpdateHover()
	a.UpdateLines()
	a.UpdateDrawOrder()
	a.app.Frames++
	return a.ResolveClick()
}
