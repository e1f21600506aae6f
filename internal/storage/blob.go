package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rpdg/vercel_blob"
	"github.com/rs/zerolog"
)

// ErrMissingBlobToken indicates the blob store credential is not configured
var ErrMissingBlobToken = errors.New("blob read/write token is not configured")

// BlobStore writes a named object to durable storage and returns its public URL
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// vercelBlobStore writes to Vercel Blob storage
type vercelBlobStore struct {
	client *vercel_blob.VercelBlobClient
	log    zerolog.Logger
}

// NewVercelBlobStore creates a blob store using the token held in the named
// environment variable
func NewVercelBlobStore(tokenEnv string, log zerolog.Logger) (BlobStore, error) {
	if os.Getenv(tokenEnv) == "" {
		return nil, ErrMissingBlobToken
	}

	tokenProvider, err := vercel_blob.NewEnvTokenProvider(tokenEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob token provider: %w", err)
	}

	return &vercelBlobStore{
		client: vercel_blob.NewVercelBlobClientExternal(tokenProvider),
		log:    log.With().Str("component", "blob").Logger(),
	}, nil
}

// Put writes the object at a stable, deterministic key. Random suffixing is
// suppressed so re-publishing the same key overwrites in place instead of
// accumulating mangled paths.
func (s *vercelBlobStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	options := vercel_blob.PutCommandOptions{
		ContentType:     contentType,
		AddRandomSuffix: false,
	}

	resp, err := s.client.Put(path, bytes.NewReader(data), options)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}

	s.log.Debug().Str("path", path).Str("url", resp.URL).Int("bytes", len(data)).Msg("Blob written")
	return resp.URL, nil
}
