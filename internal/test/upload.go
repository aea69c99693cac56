package test

import (
	"context"
	"io"
)

// UploadClientStub satisfies the asset host client.
type UploadClientStub struct {
	UploadFn func(ctx context.Context, filename string, content io.Reader) (string, error)

	Uploads []string
}

// Upload records the filename and returns a deterministic hosted URL.
func (s *UploadClientStub) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, filename, content)
	}
	s.Uploads = append(s.Uploads, filename)
	return "https://cdn.example.com/" + filename, nil
}
