package draw

import (
	"math"

	"github.com/ThatOtherAndrew/netsphere/internal/models"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type color struct{ r, g, b float32 }

var (
	lineStart   = color{0xCB / 255., 0xD5 / 255., 0xE0 / 255.}
	lineEnd     = color{0xA3 / 255., 0xBF / 255., 0xFA / 255.}
	markerColor = color{0xA3 / 255., 0xBF / 255., 0xFA / 255.}
	hoverColor  = color{0x2B / 255., 0x6C / 255., 0xB0 / 255.}
)

const glowRadius = 5

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

// Draw renders the frame prepared by update.Frame: lines first, then every
// dot except the hovered one, then the hovered dot on top.
func (a *App) Draw() {
	g := a.app.Geometry
	gl.Viewport(0, 0, int32(g.Width*g.PixelRatio), int32(g.Height*g.PixelRatio))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	a.drawLines()

	order := a.app.DrawOrder
	if a.app.Hovered >= 0 && len(order) > 0 {
		a.drawDots(order[:len(order)-1])
		a.drawDots(order[len(order)-1:])
	} else {
		a.drawDots(order)
	}
}

func (a *App) size(d *models.Dot) float64 {
	size := a.app.Settings.DotRadius * d.Scale
	if d.Hovered {
		size *= a.app.Settings.HoverScale
	}
	return size
}

func (a *App) drawLines() {
	if len(a.app.Segments) == 0 {
		return
	}

	halfWidth := float32(a.app.Settings.LineWidth / 2)
	vertices := a.app.LineVertices[:0]
	for _, s := range a.app.Segments {
		d1, d2 := &a.app.Dots[s.A], &a.app.Dots[s.B]
		x1, y1 := float32(d1.ProjX), float32(d1.ProjY)
		x2, y2 := float32(d2.ProjX), float32(d2.ProjY)

		dx, dy := x2-x1, y2-y1
		length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if length == 0 {
			continue
		}
		perpX := -dy / length * halfWidth
		perpY := dx / length * halfWidth

		vertices = append(vertices,
			x1, y1, perpX, perpY, 0,
			x1, y1, -perpX, -perpY, 0,
			x2, y2, perpX, perpY, 1,
			x2, y2, perpX, perpY, 1,
			x1, y1, -perpX, -perpY, 0,
			x2, y2, -perpX, -perpY, 1,
		)
	}
	a.app.LineVertices = vertices

	if len(vertices) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.LineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)

	g := a.app.Geometry
	gl.UseProgram(a.app.LineProgram)
	resolutionLoc := gl.GetUniformLocation(a.app.LineProgram, gl.Str("resolution\x00"))
	gl.Uniform2f(resolutionLoc, float32(g.Width), float32(g.Height))
	startLoc := gl.GetUniformLocation(a.app.LineProgram, gl.Str("startColor\x00"))
	gl.Uniform3f(startLoc, lineStart.r, lineStart.g, lineStart.b)
	endLoc := gl.GetUniformLocation(a.app.LineProgram, gl.Str("endColor\x00"))
	gl.Uniform3f(endLoc, lineEnd.r, lineEnd.g, lineEnd.b)

	gl.BindVertexArray(a.app.LineVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/5))
	gl.BindVertexArray(0)
}

// drawDots draws markers for the given dots in one batch, then the images of
// the dots that have one.
func (a *App) drawDots(order []int) {
	vertices := a.app.DotVertices[:0]
	for _, i := range order {
		d := &a.app.Dots[i]
		if i < len(a.app.Resources) && a.app.Resources[i].Texture != 0 {
			continue
		}
		hovered := float32(0)
		if d.Hovered {
			hovered = 1
		}
		vertices = append(vertices, float32(d.ProjX), float32(d.ProjY), float32(a.size(d)), hovered)
	}
	a.app.DotVertices = vertices

	if len(vertices) > 0 {
		a.drawMarkers(vertices)
	}

	for _, i := range order {
		if i < len(a.app.Resources) && a.app.Resources[i].Texture != 0 {
			a.drawImage(&a.app.Dots[i], a.app.Resources[i])
		}
	}
}

func (a *App) drawMarkers(vertices []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.DotVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)

	g := a.app.Geometry
	gl.UseProgram(a.app.DotProgram)
	resolutionLoc := gl.GetUniformLocation(a.app.DotProgram, gl.Str("resolution\x00"))
	gl.Uniform2f(resolutionLoc, float32(g.Width), float32(g.Height))
	pixelRatioLoc := gl.GetUniformLocation(a.app.DotProgram, gl.Str("pixelRatio\x00"))
	gl.Uniform1f(pixelRatioLoc, float32(g.PixelRatio))
	glowLoc := gl.GetUniformLocation(a.app.DotProgram, gl.Str("glow\x00"))
	gl.Uniform1f(glowLoc, glowRadius)
	baseLoc := gl.GetUniformLocation(a.app.DotProgram, gl.Str("baseColor\x00"))
	gl.Uniform3f(baseLoc, markerColor.r, markerColor.g, markerColor.b)
	hoverLoc := gl.GetUniformLocation(a.app.DotProgram, gl.Str("hoverColor\x00"))
	gl.Uniform3f(hoverLoc, hoverColor.r, hoverColor.g, hoverColor.b)

	gl.BindVertexArray(a.app.DotVAO)
	gl.DrawArrays(gl.POINTS, 0, int32(len(vertices)/4))
	gl.BindVertexArray(0)
}

func (a *App) drawImage(d *models.Dot, r models.Resource) {
	w, h := r.Fit(a.size(d))
	x0 := float32(d.ProjX - w/2)
	y0 := float32(d.ProjY - h/2)
	x1 := x0 + float32(w)
	y1 := y0 + float32(h)

	quad := [16]float32{
		x0, y0, 0, 0,
		x1, y0, 1, 0,
		x0, y1, 0, 1,
		x1, y1, 1, 1,
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.ImageVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(&quad[0]))

	g := a.app.Geometry
	gl.UseProgram(a.app.ImageProgram)
	resolutionLoc := gl.GetUniformLocation(a.app.ImageProgram, gl.Str("resolution\x00"))
	gl.Uniform2f(resolutionLoc, float32(g.Width), float32(g.Height))
	imageLoc := gl.GetUniformLocation(a.app.ImageProgram, gl.Str("image\x00"))
	gl.Uniform1i(imageLoc, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.Texture)
	gl.BindVertexArray(a.app.ImageVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}
