package opengl

import (
	"fmt"

	"github.com/ThatOtherAndrew/netsphere/internal/models"
	"github.com/ThatOtherAndrew/netsphere/internal/resources"
	"github.com/ThatOtherAndrew/netsphere/internal/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

func (a *App) InitGL() error {
	if err := gl.Init(); err != nil {
		return err
	}

	var err error
	if a.app.LineProgram, err = shaders.Link(shaders.LineVertex, shaders.LineFragment); err != nil {
		return err
	}
	if a.app.DotProgram, err = shaders.Link(shaders.DotVertex, shaders.DotFragment); err != nil {
		return err
	}
	if a.app.ImageProgram, err = shaders.Link(shaders.ImageVertex, shaders.ImageFragment); err != nil {
		return err
	}

	// line quads: position, perpendicular offset, position along the line
	gl.GenVertexArrays(1, &a.app.LineVAO)
	gl.GenBuffers(1, &a.app.LineVBO)

	gl.BindVertexArray(a.app.LineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.LineVBO)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, 5*4, 4*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	// marker sprites: position, size, hovered
	gl.GenVertexArrays(1, &a.app.DotVAO)
	gl.GenBuffers(1, &a.app.DotVBO)

	gl.BindVertexArray(a.app.DotVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.DotVBO)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, 4*4, 3*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	// image quads: position, texture coordinate
	gl.GenVertexArrays(1, &a.app.ImageVAO)
	gl.GenBuffers(1, &a.app.ImageVBO)

	gl.BindVertexArray(a.app.ImageVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.ImageVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 16*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0, 0, 0, 0)

	return nil
}

// UploadTextures creates a texture for every decoded image. A nil image
// leaves its resource without a texture so the dot draws as a marker.
func (a *App) UploadTextures(images []*resources.Image) error {
	if len(images) != len(a.app.Resources) {
		return fmt.Errorf("got %d images for %d resources", len(images), len(a.app.Resources))
	}

	for i, image := range images {
		if image == nil {
			continue
		}

		var texture uint32
		gl.GenTextures(1, &texture)
		gl.BindTexture(gl.TEXTURE_2D, texture)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, image.Width, image.Height, 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(image.Pixels))
		gl.GenerateMipmap(gl.TEXTURE_2D)

		r := &a.app.Resources[i]
		r.Texture = texture
		r.Width = image.Width
		r.Height = image.Height
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return nil
}

func (a *App) Release() {
	for i := range a.app.Resources {
		if t := a.app.Resources[i].Texture; t != 0 {
			gl.DeleteTextures(1, &t)
			a.app.Resources[i].Texture = 0
		}
	}
	for _, vao := range []*uint32{&a.app.LineVAO, &a.app.DotVAO, &a.app.ImageVAO} {
		gl.DeleteVertexArrays(1, vao)
	}
	for _, vbo := range []*uint32{&a.app.LineVBO, &a.app.DotVBO, &a.app.ImageVBO} {
		gl.DeleteBuffers(1, vbo)
	}
	gl.DeleteProgram(a.app.LineProgram)
	gl.DeleteProgram(a.app.DotProgram)
	gl.DeleteProgram(a.app.ImageProgram)
}
