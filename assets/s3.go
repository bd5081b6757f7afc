package assets

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// S3Store serves article images from a single S3 bucket fronted by the
// configured trusted host(s).
type S3Store struct {
	client       *s3.Client
	bucket       string
	trustedHosts []string
	logger       zerolog.Logger
}

func NewS3Store(ctx context.Context, bucket string, trustedHosts []string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("asset store bucket is required")
	}
	if len(trustedHosts) == 0 {
		return nil, fmt.Errorf("at least one trusted asset host is required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3Store{
		client:       s3.NewFromConfig(cfg),
		bucket:       bucket,
		trustedHosts: trustedHosts,
		logger:       log.With().Str("component", "s3AssetStore").Logger(),
	}, nil
}

func (s *S3Store) Trusted(rawURL string) bool {
	return TrustedHost(rawURL, s.trustedHosts)
}

// Delete removes the object the URL points at. The error is informational;
// callers treat deletion as best-effort.
func (s *S3Store) Delete(ctx context.Context, rawURL string) error {
	key, err := objectKey(rawURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to delete asset")
		return fmt.Errorf("deleting asset %s: %w", key, err)
	}

	s.logger.Debug().Str("key", key).Msg("deleted asset")
	return nil
}

// objectKey maps an asset URL to its bucket key (the URL path without the
// leading slash).
func objectKey(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("unparseable asset URL: %w", err)
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", fmt.Errorf("asset URL %q has no object path", rawURL)
	}
	return key, nil
}
