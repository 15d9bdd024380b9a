package shaders

import "embed"

//go:embed *.glsl
var files embed.FS

const (
	LineVertex    = "line.vert.glsl"
	LineFragment  = "line.frag.glsl"
	DotVertex     = "dot.vert.glsl"
	DotFragment   = "dot.frag.glsl"
	ImageVertex   = "image.vert.glsl"
	ImageFragment = "image.frag.glsl"
)
