package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const appName = "netsphere"

// Resource is one entry of the resource map. Its position in the list is the
// index of the dot it decorates.
type Resource struct {
	Image string `json:"image" mapstructure:"image"`
	Link  string `json:"link" mapstructure:"link"`
}

type Settings struct {
	DotsAmount      int     `json:"dots_amount" mapstructure:"dots_amount"`
	DotRadius       float64 `json:"dot_radius" mapstructure:"dot_radius"`
	GlobeScale      float64 `json:"globe_scale" mapstructure:"globe_scale"`
	BaseSpeed       float64 `json:"base_speed" mapstructure:"base_speed"`
	HoverSpeed      float64 `json:"hover_speed" mapstructure:"hover_speed"`
	HoverScale      float64 `json:"hover_scale" mapstructure:"hover_scale"`
	TransitionSpeed float64 `json:"transition_speed" mapstructure:"transition_speed"`
	LineDistance    float64 `json:"line_distance" mapstructure:"line_distance"`
	LineWidth       float64 `json:"line_width" mapstructure:"line_width"`

	ResizeDelayMs   int        `json:"resize_delay_ms" mapstructure:"resize_delay_ms"`
	Seed            uint64     `json:"seed" mapstructure:"seed"`
	Layer           string     `json:"layer" mapstructure:"layer"`
	Opener          string     `json:"opener" mapstructure:"opener"`
	FallbackMarkers bool       `json:"fallback_markers" mapstructure:"fallback_markers"`
	LogLevel        string     `json:"log_level" mapstructure:"log_level"`
	Metrics         bool       `json:"metrics" mapstructure:"metrics"`
	MetricsInterval int        `json:"metrics_interval_s" mapstructure:"metrics_interval_s"`
	Resources       []Resource `json:"resources" mapstructure:"resources"`

	// Dir is the directory the settings were read from. Relative image paths
	// resolve against it.
	Dir string `json:"-" mapstructure:"-"`
}

func Default() *Settings {
	return &Settings{
		DotsAmount:      90,
		DotRadius:       30,
		GlobeScale:      0.5,
		BaseSpeed:       0.002,
		HoverSpeed:      0.0005,
		HoverScale:      4,
		TransitionSpeed: 0.1,
		LineDistance:    130,
		LineWidth:       0.5,
		ResizeDelayMs:   250,
		Layer:           "background",
		Opener:          "xdg-open",
		LogLevel:        "info",
		MetricsInterval: 30,
		Resources:       []Resource{},
	}
}

func (s *Settings) ResizeDelay() time.Duration {
	return time.Duration(s.ResizeDelayMs) * time.Millisecond
}

func (s *Settings) MetricsPeriod() time.Duration {
	return time.Duration(s.MetricsInterval) * time.Second
}

// ResolvePath returns p relative to the settings directory unless it is
// already absolute.
func (s *Settings) ResolvePath(p string) string {
	if filepath.IsAbs(p) || s.Dir == "" {
		return p
	}
	return filepath.Join(s.Dir, p)
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", appName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

func LoadSettings() (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(settingsPath)
}

// LoadSettingsFrom reads the settings file at path, creating it with the
// defaults when it does not exist yet. NETSPHERE_* environment variables
// override file values.
func LoadSettingsFrom(settingsPath string) (*Settings, error) {
	defaultSettings := Default()
	defaultSettings.Dir = filepath.Dir(settingsPath)

	v := viper.New()
	setDefaults(v, defaultSettings)
	v.SetConfigFile(settingsPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(settingsPath); errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", settingsPath).Msg("Creating default settings file")
		if err := createDefaultSettings(settingsPath, defaultSettings); err != nil {
			log.Warn().Err(err).Msg("Failed to create default settings file")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return defaultSettings, nil
		}
		log.Warn().Err(err).Msg("Invalid settings file, using defaults")
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for _, key := range v.AllKeys() {
		if !knownKeys[strings.SplitN(key, ".", 2)[0]] {
			log.Warn().Str("key", key).Msg("Unrecognised setting key in settings file")
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		log.Warn().Err(err).Msg("Invalid settings file, using defaults")
		return defaultSettings, nil
	}
	settings.Dir = defaultSettings.Dir

	validate(settings, defaultSettings)
	return settings, nil
}

func setDefaults(v *viper.Viper, d *Settings) {
	v.SetDefault("dots_amount", d.DotsAmount)
	v.SetDefault("dot_radius", d.DotRadius)
	v.SetDefault("globe_scale", d.GlobeScale)
	v.SetDefault("base_speed", d.BaseSpeed)
	v.SetDefault("hover_speed", d.HoverSpeed)
	v.SetDefault("hover_scale", d.HoverScale)
	v.SetDefault("transition_speed", d.TransitionSpeed)
	v.SetDefault("line_distance", d.LineDistance)
	v.SetDefault("line_width", d.LineWidth)
	v.SetDefault("resize_delay_ms", d.ResizeDelayMs)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("layer", d.Layer)
	v.SetDefault("opener", d.Opener)
	v.SetDefault("fallback_markers", d.FallbackMarkers)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("metrics", d.Metrics)
	v.SetDefault("metrics_interval_s", d.MetricsInterval)
	v.SetDefault("resources", d.Resources)
}

// validate resets out-of-range values to their defaults.
func validate(s, d *Settings) {
	if s.DotsAmount < 0 {
		log.Warn().Int("dots_amount", s.DotsAmount).Int("default", d.DotsAmount).
			Msg("Invalid dots_amount, must not be negative, using default")
		s.DotsAmount = d.DotsAmount
	}

	positive := []struct {
		name  string
		value *float64
		def   float64
	}{
		{"dot_radius", &s.DotRadius, d.DotRadius},
		{"globe_scale", &s.GlobeScale, d.GlobeScale},
		{"hover_scale", &s.HoverScale, d.HoverScale},
		{"line_distance", &s.LineDistance, d.LineDistance},
		{"line_width", &s.LineWidth, d.LineWidth},
	}
	for _, p := range positive {
		if *p.value <= 0 {
			log.Warn().Float64(p.name, *p.value).Float64("default", p.def).
				Msgf("Invalid %s, must be positive, using default", p.name)
			*p.value = p.def
		}
	}

	if s.TransitionSpeed < 0.0 || s.TransitionSpeed > 1.0 {
		log.Warn().Float64("transition_speed", s.TransitionSpeed).Float64("default", d.TransitionSpeed).
			Msg("Invalid transition_speed, must be between 0.0 and 1.0, using default")
		s.TransitionSpeed = d.TransitionSpeed
	}

	if s.ResizeDelayMs < 0 {
		s.ResizeDelayMs = d.ResizeDelayMs
	}

	switch s.Layer {
	case "background", "bottom", "top", "overlay":
	default:
		log.Warn().Str("layer", s.Layer).Str("default", d.Layer).Msg("Unknown layer, using default")
		s.Layer = d.Layer
	}

	if s.MetricsInterval <= 0 {
		log.Warn().Int("metrics_interval_s", s.MetricsInterval).Int("default", d.MetricsInterval).
			Msg("Invalid metrics_interval_s, must be positive, using default")
		s.MetricsInterval = d.MetricsInterval
	}

	if s.Opener == "" {
		s.Opener = d.Opener
	}
}

func createDefaultSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if tag := field.Tag.Get("mapstructure"); tag != "" {
			tagName := strings.Split(tag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
