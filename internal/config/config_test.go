package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettingsCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 90, settings.DotsAmount)
	assert.Equal(t, 30.0, settings.DotRadius)
	assert.Equal(t, 0.5, settings.GlobeScale)
	assert.Equal(t, 0.002, settings.BaseSpeed)
	assert.Equal(t, 0.0005, settings.HoverSpeed)
	assert.Equal(t, 4.0, settings.HoverScale)
	assert.Equal(t, 0.1, settings.TransitionSpeed)
	assert.Equal(t, 130.0, settings.LineDistance)
	assert.Equal(t, 0.5, settings.LineWidth)
	assert.Equal(t, 250*time.Millisecond, settings.ResizeDelay())
	assert.False(t, settings.Metrics)
	assert.Equal(t, 30*time.Second, settings.MetricsPeriod())
	assert.Equal(t, filepath.Dir(path), settings.Dir)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var written map[string]any
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Contains(t, written, "dots_amount")
	assert.Contains(t, written, "resources")
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := writeSettings(t, `{
		"dots_amount": 12,
		"hover_scale": 2.5,
		"layer": "overlay",
		"metrics": true,
		"seed": 42,
		"resources": [
			{"image": "images/a.png", "link": "https://example.com/a"},
			{"image": "/abs/b.png", "link": "https://example.com/b"}
		]
	}`)

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 12, settings.DotsAmount)
	assert.Equal(t, 2.5, settings.HoverScale)
	assert.Equal(t, "overlay", settings.Layer)
	assert.True(t, settings.Metrics)
	assert.Equal(t, uint64(42), settings.Seed)
	assert.Equal(t, 30.0, settings.DotRadius)
	require.Len(t, settings.Resources, 2)
	assert.Equal(t, "https://example.com/b", settings.Resources[1].Link)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "images/a.png"), settings.ResolvePath(settings.Resources[0].Image))
	assert.Equal(t, "/abs/b.png", settings.ResolvePath(settings.Resources[1].Image))
}

func TestLoadSettingsResetsInvalidValues(t *testing.T) {
	path := writeSettings(t, `{
		"dots_amount": -3,
		"transition_speed": 1.5,
		"dot_radius": 0,
		"layer": "sideways",
		"metrics_interval_s": 0,
		"opener": ""
	}`)

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	d := Default()
	assert.Equal(t, d.DotsAmount, settings.DotsAmount)
	assert.Equal(t, d.TransitionSpeed, settings.TransitionSpeed)
	assert.Equal(t, d.DotRadius, settings.DotRadius)
	assert.Equal(t, d.Layer, settings.Layer)
	assert.Equal(t, d.Opener, settings.Opener)
	assert.Equal(t, d.MetricsInterval, settings.MetricsInterval)
}

func TestLoadSettingsInvalidJSON(t *testing.T) {
	path := writeSettings(t, `{not json`)

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default().DotsAmount, settings.DotsAmount)
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	path := writeSettings(t, `{"dots_amount": 12}`)
	t.Setenv("NETSPHERE_DOTS_AMOUNT", "7")

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 7, settings.DotsAmount)
}

func TestKnownKeys(t *testing.T) {
	keys := getKnownKeys(Settings{})
	assert.True(t, keys["dots_amount"])
	assert.True(t, keys["resources"])
	assert.False(t, keys["Dir"])
	assert.False(t, keys["-"])
}
