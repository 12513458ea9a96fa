package client

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "church-site-backend/internal/config"
)

// ObjectStore uploads media binaries and hands back a public URL. Buckets are
// logical folders ("gallery", "resources") under the configured S3 bucket.
type ObjectStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
}

type s3ObjectStore struct {
	s3Client      *s3.Client
	bucket        string
	publicBaseURL string
}

func NewS3ObjectStore(ctx context.Context, storageCfg *appconfig.Storage) (ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(storageCfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	publicBaseURL := storageCfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", storageCfg.Bucket, storageCfg.Region)
	}

	return &s3ObjectStore{
		s3Client:      s3.NewFromConfig(awsCfg),
		bucket:        storageCfg.Bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (s *s3ObjectStore) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	// Random key keeps uploads from clobbering each other; the original
	// extension is kept so browsers get a sensible type.
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), path.Ext(filename))

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}
