package config

// Environment variables that override the host settings
const (
	EnvEnabled         = "S3_UPLOADER_ENABLED"
	EnvEndpointURL     = "S3_UPLOADER_ENDPOINT_URL"
	EnvAccessKeyID     = "S3_UPLOADER_ACCESS_KEY_ID"
	EnvSecretAccessKey = "S3_UPLOADER_SECRET_ACCESS_KEY"
	EnvBucketName      = "S3_UPLOADER_BUCKET_NAME"
	EnvRegionName      = "S3_UPLOADER_REGION_NAME"
	EnvUseSSL          = "S3_UPLOADER_USE_SSL"
	EnvPathStyle       = "S3_UPLOADER_PATH_STYLE"
)

// Keys under which the host persists the "S3 Uploader" settings section
const (
	KeyEnabled         = "s3_uploader_enabled"
	KeyEndpointURL     = "s3_uploader_endpoint_url"
	KeyAccessKeyID     = "s3_uploader_access_key_id"
	KeySecretAccessKey = "s3_uploader_secret_access_key"
	KeyBucketName      = "s3_uploader_bucket_name"
	KeyRegionName      = "s3_uploader_region_name"
	KeyUseSSL          = "s3_uploader_use_ssl"
	KeyPathStyle       = "s3_uploader_path_style"
)

// DefaultRegion is used when neither the environment nor the host sets a region
const DefaultRegion = "us-east-1"

// UploadConfig is the effective upload configuration for a single attempt
type UploadConfig struct {
	Enabled         bool
	EndpointURL     string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	RegionName      string // "" or "auto" lets the SDK pick the region
	UseSSL          bool   // Default: true
	PathStyle       bool   // Path-style bucket addressing
}

// HasCredentials reports whether the fields needed to build a client are set
func (c UploadConfig) HasCredentials() bool {
	return c.EndpointURL != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// MissingFields lists the required fields that are empty, by settings key
func (c UploadConfig) MissingFields() []string {
	var missing []string
	if c.EndpointURL == "" {
		missing = append(missing, KeyEndpointURL)
	}
	if c.AccessKeyID == "" {
		missing = append(missing, KeyAccessKeyID)
	}
	if c.SecretAccessKey == "" {
		missing = append(missing, KeySecretAccessKey)
	}
	if c.BucketName == "" {
		missing = append(missing, KeyBucketName)
	}
	return missing
}
