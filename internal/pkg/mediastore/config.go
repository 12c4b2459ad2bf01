package mediastore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/albumdesk/albumdesk/internal/pkg/env"
)

// Config holds media object store configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	CDNHostname     string // Public hostname the CDN serves objects from
}

// LoadConfig loads media store configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("MEDIA_S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("MEDIA_S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("MEDIA_S3_REGION", "us-west-001"),
		BucketName:      env.GetEnv("MEDIA_S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("MEDIA_S3_ENDPOINT_URL", ""),
		CDNHostname:     strings.TrimSuffix(env.GetEnv("MEDIA_CDN_HOSTNAME", ""), "/"),
	}

	if config.AccessKeyID == "" {
		return nil, errors.New("MEDIA_S3_ACCESS_KEY_ID is required")
	}
	if config.SecretAccessKey == "" {
		return nil, errors.New("MEDIA_S3_SECRET_ACCESS_KEY is required")
	}
	if config.BucketName == "" {
		return nil, errors.New("MEDIA_S3_BUCKET_NAME is required")
	}
	if config.CDNHostname == "" {
		return nil, errors.New("MEDIA_CDN_HOSTNAME is required")
	}

	return config, nil
}

// ObjectKey joins folder and filename into the bucket key
func (c *Config) ObjectKey(folder, filename string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return filename
	}
	return fmt.Sprintf("%s/%s", folder, filename)
}

// GetAppEnv returns the current application environment
func GetAppEnv() string {
	return env.GetEnv("APP_ENV", "dev")
}
