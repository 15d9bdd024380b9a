// Package interact resolves pointer hover and click against projected dots.
package interact

import (
	"math"

	"github.com/ThatOtherAndrew/netsphere/internal/models"
)

// Hit reports whether (x, y) lies inside the dot's hit circle. The hit
// radius uses the unscaled marker size regardless of hover state.
func Hit(d *models.Dot, x, y, dotRadius float64) bool {
	if !d.Visible {
		return false
	}
	return distance(d, x, y) < dotRadius*d.Scale/2
}

// ResolveHover marks the dot nearest to the pointer among those whose hit
// circle contains it and returns its index, or -1. Every other dot is left
// unhovered.
func ResolveHover(dots []models.Dot, p models.Pointer, dotRadius float64) int {
	for i := range dots {
		dots[i].Hovered = false
	}
	if !p.Over {
		return -1
	}

	closest := -1
	closestDistance := math.Inf(1)
	for i := range dots {
		d := &dots[i]
		if !d.Visible {
			continue
		}
		dist := distance(d, p.X, p.Y)
		if dist < dotRadius*d.Scale/2 && dist < closestDistance {
			closest = i
			closestDistance = dist
		}
	}

	if closest >= 0 {
		dots[closest].Hovered = true
	}
	return closest
}

// ResolveClick tests the pending click against the dots in draw order. The
// first hit consumes the click, so overlapping dots fire only the one drawn
// first. The click is cleared after the pass whether or not anything was
// hit. link reports the navigation target when the hit dot has one.
func ResolveClick(dots []models.Dot, order []int, p *models.Pointer, dotRadius float64, link func(int) (string, bool)) (string, bool) {
	if !p.Clicked {
		return "", false
	}
	defer clearClick(p)

	if !p.Over {
		return "", false
	}

	for _, i := range order {
		if !Hit(&dots[i], p.ClickX, p.ClickY, dotRadius) {
			continue
		}
		clearClick(p)
		return link(dots[i].Index)
	}
	return "", false
}

func clearClick(p *models.Pointer) {
	p.Clicked = false
	p.ClickX = 0
	p.ClickY = 0
}

func distance(d *models.Dot, x, y float64) float64 {
	dx := d.ProjX - x
	dy := d.ProjY - y
	return math.Sqrt(dx*dx + dy*dy)
}
