package mocks

import (
	"context"
	"io"

	"github.com/mutaaf/ramadan-guide-sub002/internal/ai"
	"github.com/mutaaf/ramadan-guide-sub002/internal/storage"
)

// MockCompletionClient is a mock implementation of ai.CompletionClient
type MockCompletionClient struct {
	CompleteFunc func(ctx context.Context, req ai.CompletionRequest) (string, error)
	Requests     []ai.CompletionRequest
	Response     string
	Err          error
}

// Verify interface compliance
var _ ai.CompletionClient = (*MockCompletionClient)(nil)

func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{
		Requests: make([]ai.CompletionRequest, 0),
	}
}

func (m *MockCompletionClient) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// MockTranscriptionClient is a mock implementation of ai.TranscriptionClient
type MockTranscriptionClient struct {
	TranscribeFunc func(ctx context.Context, audio io.Reader, filename string) (string, error)
	Calls          int
	Filenames      []string
	Transcript     string
	Err            error
}

var _ ai.TranscriptionClient = (*MockTranscriptionClient)(nil)

func NewMockTranscriptionClient() *MockTranscriptionClient {
	return &MockTranscriptionClient{
		Filenames: make([]string, 0),
	}
}

func (m *MockTranscriptionClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	m.Calls++
	m.Filenames = append(m.Filenames, filename)
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, filename)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Transcript, nil
}

// MockBlobStore is a mock implementation of storage.BlobStore that records
// every written object
type MockBlobStore struct {
	PutFunc func(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Objects map[string][]byte
	Paths   []string
	Err     error
}

var _ storage.BlobStore = (*MockBlobStore)(nil)

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		Objects: make(map[string][]byte),
		Paths:   make([]string, 0),
	}
}

func (m *MockBlobStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, path, data, contentType)
	}
	if m.Err != nil {
		return "", m.Err
	}
	m.Objects[path] = data
	m.Paths = append(m.Paths, path)
	return "https://blob.example.com/" + path, nil
}
