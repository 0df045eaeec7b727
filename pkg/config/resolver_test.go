package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(vars map[string]string) LookupEnvFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func mustResolve(t *testing.T, r *Resolver) UploadConfig {
	t.Helper()
	cfg, err := r.Resolve()
	require.NoError(t, err)
	return cfg
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"1", true},
		{"yes", true},
		{"YES", true},
		{"on", true},
		{"On", true},
		{"false", false},
		{"", false},
		{"no", false},
		{"off", false},
		{"0", false},
		{"y", false},
		{" true", false},
		{"enabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBool(tt.in))
		})
	}
}

func TestResolver_Defaults(t *testing.T) {
	r := NewResolverWithEnv(MapStore{}, envFrom(nil))

	cfg := mustResolve(t, r)

	assert.Equal(t, UploadConfig{
		Enabled:    false,
		RegionName: "us-east-1",
		UseSSL:     true,
		PathStyle:  false,
	}, cfg)
}

func TestResolver_SettingsFallback(t *testing.T) {
	settings := MapStore{
		KeyEnabled:         true,
		KeyEndpointURL:     "https://s3.example.com",
		KeyAccessKeyID:     "AK",
		KeySecretAccessKey: "SK",
		KeyBucketName:      "images",
		KeyRegionName:      "eu-west-1",
		KeyUseSSL:          false,
		KeyPathStyle:       true,
	}
	r := NewResolverWithEnv(settings, envFrom(nil))

	cfg := mustResolve(t, r)

	assert.Equal(t, UploadConfig{
		Enabled:         true,
		EndpointURL:     "https://s3.example.com",
		AccessKeyID:     "AK",
		SecretAccessKey: "SK",
		BucketName:      "images",
		RegionName:      "eu-west-1",
		UseSSL:          false,
		PathStyle:       true,
	}, cfg)
}

func TestResolver_EnvironmentWins(t *testing.T) {
	settings := MapStore{
		KeyEnabled:    false,
		KeyBucketName: "from-ui",
		KeyRegionName: "eu-west-1",
		KeyUseSSL:     true,
	}

	t.Run("set_values_override", func(t *testing.T) {
		r := NewResolverWithEnv(settings, envFrom(map[string]string{
			EnvEnabled:    "yes",
			EnvBucketName: "from-env",
			EnvUseSSL:     "off",
		}))

		cfg := mustResolve(t, r)

		assert.True(t, cfg.Enabled)
		assert.Equal(t, "from-env", cfg.BucketName)
		assert.False(t, cfg.UseSSL)
		assert.Equal(t, "eu-west-1", cfg.RegionName)
	})

	t.Run("empty_string_is_still_set", func(t *testing.T) {
		r := NewResolverWithEnv(settings, envFrom(map[string]string{
			EnvBucketName: "",
			EnvRegionName: "",
			EnvUseSSL:     "",
		}))

		cfg := mustResolve(t, r)

		assert.Equal(t, "", cfg.BucketName)
		assert.Equal(t, "", cfg.RegionName)
		assert.False(t, cfg.UseSSL)
	})
}

func TestResolver_SettingsEdgeCases(t *testing.T) {
	t.Run("null_uses_default", func(t *testing.T) {
		r := NewResolverWithEnv(MapStore{KeyRegionName: nil, KeyUseSSL: nil}, envFrom(nil))

		assert.Equal(t, "us-east-1", r.String(EnvRegionName, KeyRegionName, DefaultRegion))
		assert.True(t, r.Bool(EnvUseSSL, KeyUseSSL, true))
	})

	t.Run("empty_string_setting_is_present", func(t *testing.T) {
		r := NewResolverWithEnv(MapStore{KeyRegionName: ""}, envFrom(nil))

		assert.Equal(t, "", r.String(EnvRegionName, KeyRegionName, DefaultRegion))
	})

	t.Run("wrong_type_uses_default", func(t *testing.T) {
		r := NewResolverWithEnv(MapStore{KeyEnabled: "true", KeyBucketName: 42.0}, envFrom(nil))

		assert.False(t, r.Bool(EnvEnabled, KeyEnabled, false))
		assert.Equal(t, "", r.String(EnvBucketName, KeyBucketName, ""))
	})
}

func TestResolver_FileStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	r := NewResolverWithEnv(NewFileStore(path), envFrom(nil))

	// No file yet
	assert.False(t, mustResolve(t, r).Enabled)

	require.NoError(t, os.WriteFile(path, []byte(`{
		"samples_save": true,
		"s3_uploader_enabled": true,
		"s3_uploader_bucket_name": "images"
	}`), 0o600))

	cfg := mustResolve(t, r)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "images", cfg.BucketName)

	// Edits are picked up on the next resolve
	require.NoError(t, os.WriteFile(path, []byte(`{"s3_uploader_enabled": false}`), 0o600))
	assert.False(t, mustResolve(t, r).Enabled)
}

func TestResolver_TruncatedSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"s3_uploader_enabled": true, "s3_uploader_bucket_name": "images", "s3_up`), 0o600))
	r := NewResolverWithEnv(NewFileStore(path), envFrom(map[string]string{
		EnvEndpointURL: "https://s3.example.com",
	}))

	cfg, err := r.Resolve()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "host settings unreadable")
	assert.Contains(t, err.Error(), "failed to parse settings file")
	// Environment and defaults still apply
	assert.Equal(t, "https://s3.example.com", cfg.EndpointURL)
	assert.Equal(t, DefaultRegion, cfg.RegionName)
	assert.False(t, cfg.Enabled)
}

func TestUploadConfig_Checks(t *testing.T) {
	full := UploadConfig{
		Enabled:         true,
		EndpointURL:     "https://s3.example.com",
		AccessKeyID:     "AK",
		SecretAccessKey: "SK",
		BucketName:      "images",
	}
	assert.True(t, full.HasCredentials())
	assert.Empty(t, full.MissingFields())

	noSecret := full
	noSecret.SecretAccessKey = ""
	assert.False(t, noSecret.HasCredentials())
	assert.Equal(t, []string{KeySecretAccessKey}, noSecret.MissingFields())

	noBucket := full
	noBucket.BucketName = ""
	assert.True(t, noBucket.HasCredentials())
	assert.Equal(t, []string{KeyBucketName}, noBucket.MissingFields())
}
