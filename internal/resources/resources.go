// Package resources decodes the images of the resource map.
package resources

import (
	"fmt"

	"github.com/ThatOtherAndrew/netsphere/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"
)

// Image is a decoded image as tightly packed 8-bit RGBA rows.
type Image struct {
	Width  int32
	Height int32
	Pixels []byte
}

// Decode reads the image file at path into RGBA pixels.
func Decode(path string) (*Image, error) {
	surface, err := img.Load(path)
	if err != nil {
		return nil, err
	}
	defer surface.Free()

	// ABGR8888 is R, G, B, A in memory order on little endian hosts, which is
	// what GL_RGBA/GL_UNSIGNED_BYTE expects.
	rgba, err := surface.ConvertFormat(uint32(sdl.PIXELFORMAT_ABGR8888), 0)
	if err != nil {
		return nil, err
	}
	defer rgba.Free()

	if err := rgba.Lock(); err != nil {
		return nil, err
	}
	defer rgba.Unlock()

	width, height := rgba.W, rgba.H
	rowBytes := int(width) * 4
	pitch := int(rgba.Pitch)
	src := rgba.Pixels()
	pixels := make([]byte, rowBytes*int(height))
	for y := range int(height) {
		copy(pixels[y*rowBytes:(y+1)*rowBytes], src[y*pitch:y*pitch+rowBytes])
	}

	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}

// Load decodes every resource image concurrently. Without fallback the first
// failure aborts the whole load. With fallback a failed image is logged and
// left nil so its dot renders as a plain marker.
func Load(resources []models.Resource, fallback bool) ([]*Image, error) {
	return load(resources, fallback, Decode)
}

func load(resources []models.Resource, fallback bool, decode func(string) (*Image, error)) ([]*Image, error) {
	images := make([]*Image, len(resources))

	var g errgroup.Group
	for i, r := range resources {
		g.Go(func() error {
			image, err := decode(r.Image)
			if err != nil {
				if fallback {
					log.Warn().Err(err).Str("image", r.Image).Int("index", i).
						Msg("Failed to load image, using plain marker")
					return nil
				}
				return fmt.Errorf("failed to load image %q for dot %d: %w", r.Image, i, err)
			}
			images[i] = image
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
