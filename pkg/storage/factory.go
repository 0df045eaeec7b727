package storage

import (
	"context"

	"github.com/williamokano/s3_uploader/pkg/config"
)

// Factory builds an ObjectStore from a resolved configuration.
// Build checks the credential precondition before a Factory is called.
type Factory func(ctx context.Context, cfg config.UploadConfig) (ObjectStore, error)

// Build returns a client for cfg. A nil store with a nil error means the
// endpoint or credentials are not configured; no client is constructed then.
func Build(ctx context.Context, factory Factory, cfg config.UploadConfig) (ObjectStore, error) {
	if !cfg.HasCredentials() {
		return nil, nil
	}

	store, err := factory(ctx, cfg)
	if err != nil {
		return nil, WrapError("init", err)
	}

	return store, nil
}
