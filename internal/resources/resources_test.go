package resources

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ThatOtherAndrew/netsphere/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeDecode(path string) (*Image, error) {
	if filepath.Base(path) == "broken.png" {
		return nil, errors.New("corrupt")
	}
	return &Image{Width: 2, Height: 1, Pixels: make([]byte, 8)}, nil
}

func TestLoadAll(t *testing.T) {
	images, err := load([]models.Resource{
		{Image: "a.png"},
		{Image: "b.png"},
	}, false, fakeDecode)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, int32(2), images[1].Width)
}

func TestLoadFailureAborts(t *testing.T) {
	images, err := load([]models.Resource{
		{Image: "a.png"},
		{Image: "broken.png"},
	}, false, fakeDecode)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.png")
	assert.Contains(t, err.Error(), "dot 1")
	assert.Nil(t, images)
}

func TestLoadFallback(t *testing.T) {
	images, err := load([]models.Resource{
		{Image: "broken.png"},
		{Image: "b.png"},
	}, true, fakeDecode)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Nil(t, images[0])
	assert.NotNil(t, images[1])
}

func TestLoadEmpty(t *testing.T) {
	images, err := Load(nil, false)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
