package exporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/filex"
	"github.com/dmitrijs2005/screenmock/internal/logging"
)

var ErrNotConfigured = errors.New("export destination not configured")

// Sink stores an exported document and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, key string, doc []byte) (string, error)
}

// Export wraps the artifact and stores it in sink.
func Export(ctx context.Context, sink Sink, a *models.Artifact, platform string) (string, error) {
	if a == nil {
		return "", errors.New("nothing to export")
	}
	doc := Document(a.Markup, platform)
	return sink.Put(ctx, Key(a), []byte(doc))
}

// FileSink writes documents below a local directory.
type FileSink struct {
	Dir string
}

func (s FileSink) Put(ctx context.Context, key string, doc []byte) (string, error) {
	if s.Dir == "" {
		return "", ErrNotConfigured
	}
	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return "", fmt.Errorf("prepare export dir: %w", err)
	}
	if err := filex.WriteFileAtomic(path, doc); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Sink uploads documents to an S3-compatible bucket (MinIO works).
type S3Sink struct {
	cfg    S3Config
	logger logging.Logger
}

func NewS3Sink(cfg S3Config, logger logging.Logger) *S3Sink {
	return &S3Sink{cfg: cfg, logger: logger.With("module", "exporter")}
}

func (s *S3Sink) client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.cfg.Region)}
	if s.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey, s.cfg.SecretKey, "",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *S3Sink) Put(ctx context.Context, key string, doc []byte) (string, error) {
	if s.cfg.Bucket == "" {
		return "", ErrNotConfigured
	}
	c, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(doc),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	loc := fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, key)
	s.logger.Info(ctx, "exported mockup", "location", loc, "bytes", len(doc))
	return loc, nil
}
