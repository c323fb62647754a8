package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etlasneha/greenzone/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// BlobStore persists uploaded images and returns a URL clients can fetch.
// There is no deletion path; uploads are kept forever.
type BlobStore interface {
	Put(ctx context.Context, data []byte, contentType, key string) (string, error)
}

// ObjectKey builds a store key for an upload. Keys are time-derived and
// carry a random suffix, so concurrent uploads never collide.
func ObjectKey(prefix, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := strings.TrimSuffix(filepath.Base(fileName), ext)
	base = strings.ReplaceAll(base, " ", "-")
	return fmt.Sprintf("%s/%d-%s-%s%s",
		prefix, time.Now().UnixMilli(), base, uuid.New().String()[:8], ext)
}

// R2Store stores blobs in a Cloudflare R2 bucket through the S3 API.
type R2Store struct {
	Client *s3.Client
	Config *config.R2Config
}

func NewR2Store() *R2Store {
	r2Config := config.GetR2Config()

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &R2Store{Client: client, Config: r2Config}
}

func (s *R2Store) Put(ctx context.Context, data []byte, contentType, key string) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.Config.PublicURL, key), nil
}

// LocalStore writes blobs under a directory on disk and serves them from
// BaseURL. Used for local development and tests.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{Dir: dir, BaseURL: baseURL}
}

func (s *LocalStore) Put(_ context.Context, data []byte, _ string, key string) (string, error) {
	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.BaseURL + "/" + key, nil
}

// FromEnv picks the R2 store when credentials are configured and falls
// back to a local uploads directory otherwise.
func FromEnv() BlobStore {
	if os.Getenv("CLOUDFLARE_ACCOUNT_ID") != "" {
		return NewR2Store()
	}
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "public"
	}
	return NewLocalStore(dir, "")
}
