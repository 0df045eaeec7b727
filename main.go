package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/williamokano/s3_uploader/pkg/config"
	"github.com/williamokano/s3_uploader/pkg/logger"
	"github.com/williamokano/s3_uploader/pkg/server"
	"github.com/williamokano/s3_uploader/pkg/storage/s3"
	"github.com/williamokano/s3_uploader/pkg/uploader"
)

const usage = `usage: s3_uploader [command]

commands:
  serve           run the image saved hook server (default)
  upload <file>   upload one saved image
  test            test the connection to the configured bucket
  validate        validate the host settings file
`

func main() {
	os.Exit(run())
}

// run executes the command and returns the process exit code, so deferred
// cleanup runs before the process exits
func run() int {
	appCfg := config.LoadApp()
	logger.Init(appCfg.GetLogLevel(), appCfg.GetLogFormat())
	log := *logger.Get()

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	store := config.NewFileStore(appCfg.GetSettingsFile())
	dispatcher := uploader.New(config.NewResolver(store), s3.NewObjectStore, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "serve":
		validateSettings(store, log)
		if err := serve(ctx, appCfg, dispatcher, log); err != nil {
			log.Error().Err(err).Msg("hook server failed")
			return 1
		}

	case "upload":
		if len(os.Args) < 3 {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		// Upload failures are logged, never turned into a failing exit code
		dispatcher.OnImageSaved(ctx, uploader.ImageSavedEvent{Filename: os.Args[2]})

	case "test":
		msg := dispatcher.TestConnection(ctx)
		fmt.Println(msg)
		if !strings.HasPrefix(msg, "Success") {
			return 1
		}

	case "validate":
		if err := config.Validate(store.Path()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("%s is valid\n", store.Path())

	default:
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	return 0
}

// validateSettings reports schema problems without refusing to start;
// the host may not have written its settings file yet
func validateSettings(store *config.FileStore, log zerolog.Logger) {
	if _, err := os.Stat(store.Path()); err != nil {
		log.Info().Str("settings_file", store.Path()).Msg("host settings file not found, using environment and defaults")
		return
	}
	if err := config.Validate(store.Path()); err != nil {
		log.Warn().Err(err).Str("settings_file", store.Path()).Msg("host settings file has invalid s3_uploader values")
	}
}

func serve(ctx context.Context, appCfg *config.AppConfig, dispatcher *uploader.Dispatcher, log zerolog.Logger) error {
	srv := server.New(dispatcher, appCfg.GetMaxConcurrentUploads(), log).HTTPServer(appCfg.GetListenAddr())

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("settings_file", appCfg.GetSettingsFile()).
			Int("max_concurrent_uploads", appCfg.GetMaxConcurrentUploads()).
			Msg("starting s3_uploader hook server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("hook server stopped")
	return nil
}
