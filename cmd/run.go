package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThatOtherAndrew/netsphere/internal/draw"
	"github.com/ThatOtherAndrew/netsphere/internal/execute"
	"github.com/ThatOtherAndrew/netsphere/internal/models"
	"github.com/ThatOtherAndrew/netsphere/internal/opengl"
	"github.com/ThatOtherAndrew/netsphere/internal/resources"
	"github.com/ThatOtherAndrew/netsphere/internal/telemetry"
	"github.com/ThatOtherAndrew/netsphere/internal/update"
	"github.com/ThatOtherAndrew/netsphere/internal/viewport"
	"github.com/ThatOtherAndrew/netsphere/pkg/wayland"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const namespace = "netsphere"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the globe (default)",
	Args:  cobra.NoArgs,
	Run:   Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func Run(cmd *cobra.Command, args []string) {
	ctx, _, stop := trapSignals(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := loadSettings()
	app := models.NewApp(settings)

	flushMetrics := setupMetrics(os.Stderr, settings)
	defer flushMetrics()

	metrics, err := telemetry.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create metrics")
	}

	// decode before any surface exists so a bad image aborts without a flash
	images, err := resources.Load(app.Resources, settings.FallbackMarkers)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load resources")
	}
	log.Info().Int("resources", len(images)).Msg("Loaded resources")

	window, err := wayland.NewWaylandWindow(wayland.Options{Layer: settings.Layer, Namespace: namespace})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Wayland window")
	}
	defer window.Destroy()

	renderer := opengl.New(app)
	if err := renderer.InitGL(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize OpenGL")
	}
	defer renderer.Release()

	if err := renderer.UploadTextures(images); err != nil {
		log.Fatal().Err(err).Msg("Failed to upload textures")
	}

	apply(ctx, app, window, metrics, currentSize(window))
	debouncer := viewport.NewDebouncer(settings.ResizeDelay(), window.ResizeSerial())

	updater := update.New(app)
	drawer := draw.New(app)

	for !window.ShouldClose() {
		if ctx.Err() != nil {
			log.Info().Msg("Interrupted, shutting down")
			break
		}

		window.PollEvents()
		updater.UpdatePointer(window)

		if next, ok := debouncer.Observe(currentSize(window), window.ResizeSerial(), time.Now()); ok {
			apply(ctx, app, window, metrics, next)
		}

		if link, ok := updater.Frame(); ok {
			err := execute.OpenLink(settings.Opener, link)
			metrics.LinkOpened(ctx, link, err)
			if err != nil {
				log.Error().Err(err).Str("link", link).Msg("Failed to open link")
			} else {
				log.Info().Str("link", link).Msg("Opened link")
			}
		}

		drawer.Draw()
		window.SwapBuffers()
		metrics.Frame(ctx)
	}

	log.Debug().
		Uint64("frames", app.Frames).
		Dur("uptime", time.Since(app.StartTime)).
		Msg("Exiting")
}

// trapSignals cancels the returned context on the first of sigs and then
// restores their default handling, so a second signal terminates the process
// even while a frame is blocked in SwapBuffers. released is closed once the
// handlers are restored.
func trapSignals(parent context.Context, sigs ...os.Signal) (ctx context.Context, released <-chan struct{}, stop context.CancelFunc) {
	ctx, stop = signal.NotifyContext(parent, sigs...)
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		stop()
		close(done)
	}()
	return ctx, done, stop
}

func currentSize(window *wayland.WaylandWindow) viewport.Size {
	width, height := window.GetSize()
	return viewport.Size{Width: width, Height: height, Scale: window.GetScale()}
}

// apply resizes the surface and regenerates the globe for size.
func apply(ctx context.Context, app *models.App, window *wayland.WaylandWindow, metrics *telemetry.Metrics, size viewport.Size) {
	window.Resize(size.Width, size.Height, size.Scale)
	viewport.New(app).Apply(size)
	metrics.Regenerated(ctx, len(app.Dots))
}
