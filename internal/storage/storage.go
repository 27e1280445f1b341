package storage

import "context"

// ObjectStorage archives raw dataset uploads so a bad load can always be
// replayed from the original file.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
}

type noopStorage struct{}

// NewNoopStorage is used when no object store is configured; uploads then
// live only in the local upload directory.
func NewNoopStorage() ObjectStorage {
	return &noopStorage{}
}

func (noopStorage) UploadObject(context.Context, string, []byte, string) error {
	return nil
}
