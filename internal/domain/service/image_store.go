package service

import "context"

// ImageStore keeps product images in object storage.
type ImageStore interface {
	// Put writes the image under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)

	// Delete removes the image stored under key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
