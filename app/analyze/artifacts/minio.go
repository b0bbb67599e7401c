package artifacts

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type MinioSettings struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioMirror uploads reports into a bucket, creating it on first use.
type MinioMirror struct {
	client *minio.Client
	bucket string
}

var _ Mirror = &MinioMirror{}

func NewMinioMirror(ctx context.Context, s MinioSettings) (*MinioMirror, error) {
	cli, err := minio.New(s.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't create minio client for %s", s.Endpoint)
	}

	exists, err := cli.BucketExists(ctx, s.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "can't check bucket %s", s.Bucket)
	}
	if !exists {
		if err = cli.MakeBucket(ctx, s.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "can't make bucket %s", s.Bucket)
		}
	}

	return &MinioMirror{
		client: cli,
		bucket: s.Bucket,
	}, nil
}

func (m MinioMirror) Upload(ctx context.Context, localPath, key string) error {
	_, err := m.client.FPutObject(ctx, m.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "text/markdown; charset=utf-8",
	})
	if err != nil {
		return errors.Wrapf(err, "can't upload %s to bucket %s", key, m.bucket)
	}

	return nil
}
