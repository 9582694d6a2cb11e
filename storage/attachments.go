package storage

import (
	"context"
	"errors"
	"io"

	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// AttachmentStorage stores the raw bytes of uploaded files (id cards,
// proposals, payment proofs). Metadata lives on the Application document; the
// blob itself is addressed by object key.
type AttachmentStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

type S3AttachmentStorage struct {
	Client     *s3.Client
	BucketName string
}

func (s *S3AttachmentStorage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.BucketName,
		Key:           &key,
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		logging.Log.Errorf("ATTACHMENT: failed to put object %s: %v", key, err)
		return translateError(err)
	}
	return nil
}

func (s *S3AttachmentStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.BucketName,
		Key:    &key,
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			logging.Log.Warnf("ATTACHMENT: no object with key %s", key)
			return nil, "", ErrNotFound
		}
		logging.Log.Errorf("ATTACHMENT: failed to get object %s: %v", key, err)
		return nil, "", translateError(err)
	}

	contentType := ""
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}

func (s *S3AttachmentStorage) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.BucketName,
		Key:    &key,
	})
	if err != nil {
		logging.Log.Errorf("ATTACHMENT: failed to delete object %s: %v", key, err)
		return translateError(err)
	}
	return nil
}
