package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/ThatOtherAndrew/netsphere/internal/config"
	"github.com/ThatOtherAndrew/netsphere/internal/logging"
	"github.com/ThatOtherAndrew/netsphere/internal/telemetry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	logLevel    string
	metricsFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "netsphere",
	Short: "A rotating globe of linked dots on your desktop",
	Long: `netsphere draws a slowly rotating sphere of dots as a Wayland layer surface.
Nearby dots are joined by lines, hovering a dot enlarges it and slows the
globe, and clicking a dot opens the link configured for it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevel
		if level == "" {
			level = "info"
		}
		logging.Setup(os.Stderr, level)
	},
	Run: Run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (default ~/.config/netsphere/settings.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides the settings file")
	rootCmd.PersistentFlags().BoolVar(&metricsFlag, "metrics", false, "periodically write OpenTelemetry metrics to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings() *config.Settings {
	var (
		settings *config.Settings
		err      error
	)
	if configPath != "" {
		settings, err = config.LoadSettingsFrom(configPath)
	} else {
		settings, err = config.LoadSettings()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load settings")
	}

	if logLevel == "" {
		logging.Setup(os.Stderr, settings.LogLevel)
	}
	return settings
}

// setupMetrics installs the metric exporter when enabled by flag or settings.
// The returned function flushes and shuts it down.
func setupMetrics(w io.Writer, settings *config.Settings) func() {
	if !metricsFlag && !settings.Metrics {
		return func() {}
	}

	shutdown, err := telemetry.Setup(w, settings.MetricsPeriod())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to set up metrics, continuing without")
		return func() {}
	}
	log.Debug().Dur("interval", settings.MetricsPeriod()).Msg("Exporting metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to flush metrics")
		}
	}
}
