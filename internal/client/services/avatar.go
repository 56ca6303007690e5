package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/surlink/internal/netx"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// AvatarStore saves a profile picture and returns the value kept in the
// account record.
type AvatarStore interface {
	Save(ctx context.Context, email string, img *Image) (string, error)
}

// InlineAvatarStore keeps the picture inside the account as a data: URI.
type InlineAvatarStore struct{}

func (InlineAvatarStore) Save(_ context.Context, _ string, img *Image) (string, error) {
	return img.DataURI(), nil
}

type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3AvatarStore uploads pictures through presigned PUT URLs and returns an
// s3://bucket/key reference.
type S3AvatarStore struct {
	cfg        S3Config
	httpClient *http.Client
}

func NewS3AvatarStore(cfg S3Config, httpClient *http.Client) *S3AvatarStore {
	return &S3AvatarStore{cfg: cfg, httpClient: httpClient}
}

func avatarStorageKey(now time.Time) string {
	return fmt.Sprintf("avatars/%d/%d/%d/%v", now.Year(), now.Month(), now.Day(), uuid.New())
}

func (s *S3AvatarStore) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.cfg.Region)}
	if s.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.cfg.AccessKey, s.cfg.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

func (s *S3AvatarStore) Save(ctx context.Context, _ string, img *Image) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 config: %w", err)
	}

	bucket := s.cfg.Bucket
	key := avatarStorageKey(time.Now())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(img.MIME),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}

	if err := netx.UploadToPresignedURL(ctx, s.httpClient, req.URL, img.MIME, img.Data); err != nil {
		return "", err
	}

	return "s3://" + bucket + "/" + key, nil
}
