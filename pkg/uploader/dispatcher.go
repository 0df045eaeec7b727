package uploader

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/williamokano/s3_uploader/pkg/config"
	"github.com/williamokano/s3_uploader/pkg/metrics"
	"github.com/williamokano/s3_uploader/pkg/storage"
)

// ImageSavedEvent is sent by the host after it wrote a generated image to disk
type ImageSavedEvent struct {
	Filename string `json:"filename"`
}

// ConfigSource yields the effective configuration for one attempt. An error
// reports settings that could not be read; the returned config is still usable.
type ConfigSource interface {
	Resolve() (config.UploadConfig, error)
}

// Dispatcher uploads saved images to the configured object store.
// It keeps no state between calls; every call resolves configuration and
// builds its own client.
type Dispatcher struct {
	source  ConfigSource
	factory storage.Factory
	logger  zerolog.Logger
}

// New creates a dispatcher
func New(source ConfigSource, factory storage.Factory, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		source:  source,
		factory: factory,
		logger:  logger,
	}
}

// OnImageSaved uploads the saved image, best effort. Failures end in a log
// line and are never returned to the caller.
func (d *Dispatcher) OnImageSaved(ctx context.Context, event ImageSavedEvent) {
	outcome := d.dispatch(ctx, event)
	metrics.UploadsTotal.WithLabelValues(outcome).Inc()
}

func (d *Dispatcher) dispatch(ctx context.Context, event ImageSavedEvent) (outcome string) {
	log := d.logger.With().Str("file", event.Filename).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("unexpected error while handling saved image")
			outcome = metrics.OutcomeUnexpectedError
		}
	}()

	cfg, err := d.source.Resolve()
	if err != nil {
		log.Warn().Err(err).Msg("host settings could not be read, using environment and defaults")
	}
	if !cfg.Enabled {
		log.Debug().Msg("upload disabled, skipping")
		return metrics.OutcomeDisabled
	}

	if cfg.BucketName == "" {
		log.Warn().Msg("bucket name is not configured, skipping upload")
		return metrics.OutcomeNotConfigured
	}

	if !cfg.HasCredentials() {
		log.Error().
			Strs("missing", cfg.MissingFields()).
			Msg("S3 client could not be initialized, check your settings")
		return metrics.OutcomeNotConfigured
	}

	// The host may report images it kept in memory or removed before we ran
	if _, err := os.Stat(event.Filename); err != nil {
		log.Warn().Err(err).Msg("image file not found, skipping upload")
		return metrics.OutcomeFileMissing
	}

	store, err := storage.Build(ctx, d.factory, cfg)
	if err != nil || store == nil {
		log.Error().Err(err).Msg("S3 client could not be initialized, check your settings")
		return metrics.OutcomeClientError
	}

	key := filepath.Base(event.Filename)
	log = log.With().Str("bucket", cfg.BucketName).Str("key", key).Logger()
	log.Debug().Msg("uploading image")

	start := time.Now()
	err = store.Upload(ctx, event.Filename, cfg.BucketName, key)
	duration := time.Since(start)
	metrics.UploadDuration.Observe(duration.Seconds())

	switch {
	case err == nil:
		log.Info().Dur("duration", duration).Msg("uploaded image")
		return metrics.OutcomeSuccess
	case storage.IsCredentials(err):
		log.Error().Err(err).Msg("credentials not available")
		return metrics.OutcomeCredentialsError
	case storage.IsService(err):
		log.Error().Err(err).Msg("object store rejected the upload")
		return metrics.OutcomeServiceError
	default:
		log.Error().Err(err).Msg("unexpected error during upload")
		return metrics.OutcomeUnexpectedError
	}
}
