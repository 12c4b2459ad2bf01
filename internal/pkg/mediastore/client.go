package mediastore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gofiber/fiber/v2/log"
)

// Client implements ObjectStore against an S3-compatible storage zone
// fronted by a CDN hostname.
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// NewClient creates a new media store client
func NewClient(cfg *Config) (*Client, error) {
	awsConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3-compatible zones want path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	client := &Client{
		s3Client: s3Client,
		config:   cfg,
	}

	if err := client.testConnection(); err != nil {
		return nil, fmt.Errorf("failed to connect to media storage: %w", err)
	}

	log.Infof("[MediaStore] Successfully initialized client for bucket: %s", cfg.BucketName)
	return client, nil
}

// testConnection checks that the configured bucket is reachable
func (c *Client) testConnection() error {
	ctx := context.Background()

	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.config.BucketName),
	})

	if err != nil {
		// If the bucket doesn't exist, try to create it (for development)
		if GetAppEnv() != "prod" {
			log.Warnf("[MediaStore] Bucket %s not found, attempting to create it", c.config.BucketName)
			return c.createBucket(c.config.BucketName)
		}
		return fmt.Errorf("bucket %s not accessible: %w", c.config.BucketName, err)
	}

	return nil
}

// createBucket creates a new bucket (dev/staging only)
func (c *Client) createBucket(bucketName string) error {
	ctx := context.Background()

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	}

	// AWS regions other than us-east-1 need the location constraint;
	// S3-compatible zones with a custom endpoint don't.
	if c.config.EndpointURL == "" && c.config.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.config.Region),
		}
	}

	_, err := c.s3Client.CreateBucket(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
	}

	log.Infof("[MediaStore] Successfully created bucket: %s", bucketName)
	return nil
}

// Put uploads an object and returns the public CDN URL it is served from
func (c *Client) Put(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (string, error) {
	objectKey := c.config.ObjectKey(folder, filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	log.Infof("[MediaStore] Starting upload: s3://%s/%s (Size: %d bytes)",
		c.config.BucketName, objectKey, size)

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.config.BucketName),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to media storage: %w", err)
	}

	return c.PublicURL(folder, filename), nil
}

// Delete removes an object. The caller decides whether a failure aborts
// its operation; batch cleanup logs and continues.
func (c *Client) Delete(ctx context.Context, folder, filename string) error {
	objectKey := c.config.ObjectKey(folder, filename)

	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectKey, err)
	}

	return nil
}

// List returns the entries under a storage folder
func (c *Client) List(ctx context.Context, folder string) ([]ObjectInfo, error) {
	prefix := strings.Trim(folder, "/")
	if prefix != "" {
		prefix += "/"
	}

	var objects []ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.config.BucketName),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list folder %s: %w", folder, err)
		}
		for _, cp := range page.CommonPrefixes {
			objects = append(objects, ObjectInfo{
				Name:        strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/"),
				IsDirectory: true,
			})
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" {
				continue
			}
			info := ObjectInfo{
				Name: name,
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				info.CreatedAt = *obj.LastModified
			} else {
				info.CreatedAt = time.Time{}
			}
			objects = append(objects, info)
		}
	}

	return objects, nil
}

// PublicURL builds the CDN URL for an object. Path segments are escaped so
// the URL can later be parsed back into (folder, filename) losslessly.
func (c *Client) PublicURL(folder, filename string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return fmt.Sprintf("https://%s/%s", c.config.CDNHostname, url.PathEscape(filename))
	}
	return fmt.Sprintf("https://%s/%s/%s", c.config.CDNHostname, url.PathEscape(folder), url.PathEscape(filename))
}
