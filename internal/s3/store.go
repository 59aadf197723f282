package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client is the subset of the AWS S3 API the store uses. *s3.Client
// satisfies it; tests substitute a fake.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Object is a stored object's key and modification time, the two attributes
// housekeeping and status reporting care about.
type Object struct {
	Key          string
	LastModified time.Time
}

// Store wraps a single bucket of an S3-compatible object store.
type Store struct {
	client Client
	bucket string
}

// NewStore creates a Store over the given client and bucket.
func NewStore(client Client, bucket string) (*Store, error) {
	const op = "s3.NewStore"

	if client == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilClient)
	}
	if bucket == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyBucket)
	}

	return &Store{client: client, bucket: bucket}, nil
}

// Bucket returns the bucket name the store operates on.
func (s *Store) Bucket() string {
	return s.bucket
}

// Put uploads body under the given key.
func (s *Store) Put(ctx context.Context, key string, body io.Reader) error {
	const op = "s3.Store.Put"

	if key == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("%s: failed to put object %s: %w", op, key, err)
	}

	return nil
}

// Fetch downloads the object under key and returns its content.
func (s *Store) Fetch(ctx context.Context, key string) ([]byte, error) {
	const op = "s3.Store.Fetch"

	if key == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%s: %s: %w", op, key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get object %s: %w", op, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read object %s: %w", op, key, err)
	}

	return data, nil
}

// Copy duplicates an object server-side within the bucket.
func (s *Store) Copy(ctx context.Context, srcKey, dstKey string) error {
	const op = "s3.Store.Copy"

	if srcKey == "" || dstKey == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}

	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(url.PathEscape(s.bucket + "/" + srcKey)),
	})
	if err != nil {
		return fmt.Errorf("%s: failed to copy %s to %s: %w", op, srcKey, dstKey, err)
	}

	return nil
}

// Exists reports whether an object is present under key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	const op = "s3.Store.Exists"

	if key == "" {
		return false, fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("%s: failed to head object %s: %w", op, key, err)
	}

	return true, nil
}

// List returns all objects whose keys start with prefix. An empty prefix
// lists the whole bucket.
func (s *Store) List(ctx context.Context, prefix string) ([]Object, error) {
	const op = "s3.Store.List"

	var objects []Object
	var token *string

	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: failed to list prefix %q: %w", op, prefix, err)
		}

		for _, obj := range out.Contents {
			objects = append(objects, Object{
				Key:          aws.ToString(obj.Key),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}

		if out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}

	return objects, nil
}

// Delete removes the object under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	const op = "s3.Store.Delete"

	if key == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: failed to delete object %s: %w", op, key, err)
	}

	return nil
}
