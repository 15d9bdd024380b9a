package wayland

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyboardInteractivity(t *testing.T) {
	for _, tc := range []struct {
		layer   string
		version uint32
		want    uint32
	}{
		{"background", 4, keyboardNone},
		{"bottom", 4, keyboardNone},
		{"top", 4, keyboardOnDemand},
		{"overlay", 4, keyboardOnDemand},
		{"top", 3, keyboardNone},
		{"overlay", 1, keyboardNone},
	} {
		got := keyboardInteractivity(tc.layer, tc.version)
		assert.Equal(t, tc.want, got, "layer %s, shell v%d", tc.layer, tc.version)
		assert.NotEqual(t, uint32(keyboardExclusive), got)
	}
}
