// Package s3 provides the object store used for backup dumps and the remote
// settings object, against AWS S3 or any S3-compatible provider.
package s3

import "errors"

var (
	// ErrNilClient indicates that a nil S3 client was provided.
	ErrNilClient = errors.New("client cannot be nil")

	// ErrEmptyBucket indicates that an empty bucket name was provided.
	ErrEmptyBucket = errors.New("bucket name cannot be empty")

	// ErrEmptyKey indicates that an empty object key was provided.
	ErrEmptyKey = errors.New("object key cannot be empty")

	// ErrObjectNotFound indicates that the requested object does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrMissingCredentials indicates the storage credentials are not set.
	ErrMissingCredentials = errors.New("missing storage credentials")
)
