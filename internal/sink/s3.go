package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config locates a bucket on an S3-compatible service.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// Prefix is prepended to every object name.
	Prefix string
	UseSSL bool
}

// Bucket writes files as objects of an S3-compatible bucket.
type Bucket struct {
	client *minio.Client
	bucket string
	prefix string
	claims
}

// NewBucket connects to the service and creates the bucket if it does not exist.
func NewBucket(ctx context.Context, cfg S3Config) (*Bucket, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	bucket := &Bucket{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}

	if err = bucket.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return bucket, nil
}

func (b *Bucket) ensureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err = b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (b *Bucket) objectName(name string) string {
	if b.prefix == "" {
		return name
	}

	return path.Join(b.prefix, name)
}

// Put uploads data as the object name, below the configured prefix.
func (b *Bucket) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}

	if err := b.claim(name); err != nil {
		return err
	}

	_, err := b.client.PutObject(
		ctx,
		b.bucket,
		b.objectName(name),
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: ContentType(name),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}

	return nil
}

// Get downloads the object name.
func (b *Bucket) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	object, err := b.client.GetObject(ctx, b.bucket, b.objectName(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return data, nil
}
