package config

import (
	"fmt"
	"os"
	"strings"
)

// LookupEnvFunc matches os.LookupEnv
type LookupEnvFunc func(key string) (string, bool)

// Resolver merges environment variables over host settings over defaults.
// A variable counts as set whenever it is defined, even as the empty string.
type Resolver struct {
	settings  SettingsStore
	lookupEnv LookupEnvFunc
}

// NewResolver creates a resolver reading the process environment
func NewResolver(settings SettingsStore) *Resolver {
	return NewResolverWithEnv(settings, os.LookupEnv)
}

// NewResolverWithEnv creates a resolver with an explicit environment source
func NewResolverWithEnv(settings SettingsStore, lookupEnv LookupEnvFunc) *Resolver {
	if settings == nil {
		settings = MapStore{}
	}
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &Resolver{settings: settings, lookupEnv: lookupEnv}
}

// String resolves a string value
func (r *Resolver) String(envVar, key, def string) string {
	if v, ok := r.lookupEnv(envVar); ok {
		return v
	}
	if v, ok := r.settings.Lookup(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool resolves a boolean value
func (r *Resolver) Bool(envVar, key string, def bool) bool {
	if v, ok := r.lookupEnv(envVar); ok {
		return ParseBool(v)
	}
	if v, ok := r.settings.Lookup(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

type snapshotter interface {
	Snapshot() (MapStore, error)
}

// Resolve builds the effective UploadConfig. When the settings store cannot
// be read the config is resolved from the environment and defaults alone,
// and the read error is returned alongside it.
func (r *Resolver) Resolve() (UploadConfig, error) {
	var readErr error
	if s, ok := r.settings.(snapshotter); ok {
		snap, err := s.Snapshot()
		if err != nil {
			readErr = fmt.Errorf("host settings unreadable: %w", err)
			snap = MapStore{}
		}
		r = &Resolver{settings: snap, lookupEnv: r.lookupEnv}
	}

	return UploadConfig{
		Enabled:         r.Bool(EnvEnabled, KeyEnabled, false),
		EndpointURL:     r.String(EnvEndpointURL, KeyEndpointURL, ""),
		AccessKeyID:     r.String(EnvAccessKeyID, KeyAccessKeyID, ""),
		SecretAccessKey: r.String(EnvSecretAccessKey, KeySecretAccessKey, ""),
		BucketName:      r.String(EnvBucketName, KeyBucketName, ""),
		RegionName:      r.String(EnvRegionName, KeyRegionName, DefaultRegion),
		UseSSL:          r.Bool(EnvUseSSL, KeyUseSSL, true),
		PathStyle:       r.Bool(EnvPathStyle, KeyPathStyle, false),
	}, readErr
}

// ParseBool coerces environment text: true, 1, yes and on (any case) are true
func ParseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
