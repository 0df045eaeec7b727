package config

// Schema is the JSON schema for the s3_uploader keys of the host settings file.
// The host stores many unrelated options in the same file, so other keys are allowed.
const Schema = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "s3_uploader_enabled": {
            "type": ["boolean", "null"]
        },
        "s3_uploader_endpoint_url": {
            "type": ["string", "null"],
            "description": "S3-compatible endpoint, e.g. https://s3.amazonaws.com"
        },
        "s3_uploader_access_key_id": {
            "type": ["string", "null"]
        },
        "s3_uploader_secret_access_key": {
            "type": ["string", "null"]
        },
        "s3_uploader_bucket_name": {
            "type": ["string", "null"]
        },
        "s3_uploader_region_name": {
            "type": ["string", "null"]
        },
        "s3_uploader_use_ssl": {
            "type": ["boolean", "null"]
        },
        "s3_uploader_path_style": {
            "type": ["boolean", "null"]
        }
    },
    "additionalProperties": true
}`
