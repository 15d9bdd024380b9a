package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources(t *testing.T) {
	for _, name := range []string{
		LineVertex, LineFragment,
		DotVertex, DotFragment,
		ImageVertex, ImageFragment,
	} {
		source, err := Source(name)
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(source, "#version 410 core"), name)
		assert.Contains(t, source, "void main()", name)
	}
}

func TestSourceMissing(t *testing.T) {
	_, err := Source("missing.glsl")
	assert.Error(t, err)
}
