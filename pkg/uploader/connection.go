package uploader

import (
	"context"
	"fmt"

	"github.com/williamokano/s3_uploader/pkg/metrics"
	"github.com/williamokano/s3_uploader/pkg/storage"
)

// Fixed connection test answers shown next to the host's test button
const (
	MsgClientUnavailable = "Error: Could not initialize client. Check Settings (Endpoint, Keys)."
	MsgBucketMissing     = "Error: Bucket name not configured."
	msgSuccessFormat     = "Success! Connected to %s."
	msgFailureFormat     = "Connection Failed: %s"
)

// TestConnection lists at most one object of the configured bucket and
// describes the result for the user. It ignores the enabled flag.
func (d *Dispatcher) TestConnection(ctx context.Context) string {
	msg, result := d.testConnection(ctx)
	metrics.ConnectionTestsTotal.WithLabelValues(result).Inc()
	return msg
}

func (d *Dispatcher) testConnection(ctx context.Context) (string, string) {
	cfg, err := d.source.Resolve()
	log := d.logger.With().Str("bucket", cfg.BucketName).Logger()
	if err != nil {
		log.Warn().Err(err).Msg("host settings could not be read, using environment and defaults")
	}

	store, err := storage.Build(ctx, d.factory, cfg)
	if err != nil || store == nil {
		log.Warn().Err(err).Strs("missing", cfg.MissingFields()).Msg("connection test: no client")
		return MsgClientUnavailable, "no_client"
	}

	if cfg.BucketName == "" {
		log.Warn().Msg("connection test: bucket name not configured")
		return MsgBucketMissing, "no_bucket"
	}

	if _, err := store.ListObjects(ctx, cfg.BucketName, 1); err != nil {
		log.Warn().Err(err).Msg("connection test failed")
		return fmt.Sprintf(msgFailureFormat, err.Error()), "failure"
	}

	log.Info().Msg("connection test succeeded")
	return fmt.Sprintf(msgSuccessFormat, cfg.BucketName), "success"
}
