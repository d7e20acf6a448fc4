// Package minio provides a MinIO/S3-compatible implementation of the core.FS interface.
//
// S3 has no directories, so folders are stored as zero-byte marker objects
// whose key ends in "/". A folder exists when its marker exists or when any
// object lives under its prefix.
package minio

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/minio/minio-go/v7"
)

// Config holds MinIO filesystem configuration.
type Config struct {
	// Endpoint is the MinIO server address (e.g., "localhost:9000")
	Endpoint string

	// Bucket is the S3 bucket name
	Bucket string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// Prefix is an optional prefix for all object keys (for namespacing)
	Prefix string

	// Client is an optional pre-configured MinIO client.
	// If provided, Endpoint/AccessKey/SecretKey are ignored.
	Client *minio.Client

	// MultipartThreshold is the write size above which uploads stream
	// instead of buffering. Default: 5MB.
	MultipartThreshold int64

	// MaxRenameConcurrency limits concurrent copies during directory rename.
	// Default: 10.
	MaxRenameConcurrency int
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	needConn := c.Client == nil
	return validation.ValidateStruct(c,
		validation.Field(&c.Bucket, validation.Required),
		validation.Field(&c.Endpoint, validation.When(needConn, validation.Required)),
		validation.Field(&c.AccessKey, validation.When(needConn, validation.Required)),
		validation.Field(&c.SecretKey, validation.When(needConn, validation.Required)),
		validation.Field(&c.MultipartThreshold, validation.Min(int64(0))),
		validation.Field(&c.MaxRenameConcurrency, validation.Min(0)),
	)
}
