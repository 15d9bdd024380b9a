package models

import (
	"math/rand/v2"
	"time"

	"github.com/ThatOtherAndrew/netsphere/internal/config"
)

// Dot is one point of the globe. X, Y, Z are object space coordinates with
// the globe centre offset already applied to Z; the remaining fields are
// rewritten every frame.
type Dot struct {
	Index   int
	X, Y, Z float64
	ProjX   float64
	ProjY   float64
	Scale   float64
	Visible bool
	Hovered bool
}

type Rotation struct {
	X, Y float64
}

type Speed struct {
	Current float64
	Target  float64
}

// Geometry is derived from the surface size and replaced on resize.
type Geometry struct {
	Width        float64
	Height       float64
	PixelRatio   float64
	GlobeRadius  float64
	GlobeCenterZ float64
	CenterX      float64
	CenterY      float64
	FieldOfView  float64
}

type Pointer struct {
	X, Y    float64
	Over    bool
	ClickX  float64
	ClickY  float64
	Clicked bool
}

// Segment connects the dots at indices A and B, A < B.
type Segment struct {
	A, B int
}

type Resource struct {
	Image   string
	Link    string
	Texture uint32
	Width   int32
	Height  int32
}

// Fit returns the aspect-preserving width and height of the image inside a
// square of side 2*size.
func (r Resource) Fit(size float64) (float64, float64) {
	base := size * 2
	if r.Width <= 0 || r.Height <= 0 {
		return base, base
	}
	aspect := float64(r.Width) / float64(r.Height)
	if aspect > 1 {
		return base, base / aspect
	}
	return base * aspect, base
}

type App struct {
	Settings *config.Settings
	Rand     *rand.Rand

	Geometry   Geometry
	Dots       []Dot
	Rotation   Rotation
	Speed      Speed
	Pointer    Pointer
	Hovered    int
	AnyHovered bool
	Segments   []Segment
	DrawOrder  []int
	Resources  []Resource

	LineVAO      uint32
	LineVBO      uint32
	LineProgram  uint32
	DotVAO       uint32
	DotVBO       uint32
	DotProgram   uint32
	ImageVAO     uint32
	ImageVBO     uint32
	ImageProgram uint32
	LineVertices []float32
	DotVertices  []float32

	StartTime time.Time
	Frames    uint64
}

// NewApp builds the initial state for settings. A zero seed picks a random
// one.
func NewApp(settings *config.Settings) *App {
	seed := settings.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	resources := make([]Resource, len(settings.Resources))
	for i, r := range settings.Resources {
		resources[i] = Resource{Image: settings.ResolvePath(r.Image), Link: r.Link}
	}

	return &App{
		Settings:  settings,
		Rand:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Speed:     Speed{Current: settings.BaseSpeed, Target: settings.BaseSpeed},
		Hovered:   -1,
		Resources: resources,
		StartTime: time.Now(),
	}
}

// Link returns the navigation target of the dot at index, if it has one.
func (a *App) Link(index int) (string, bool) {
	if index < 0 || index >= len(a.Resources) {
		return "", false
	}
	link := a.Resources[index].Link
	return link, link != ""
}
