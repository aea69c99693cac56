package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"time"
)

// ErrUnsupportedImage indicates the asset host rejected the file type.
var ErrUnsupportedImage = errors.New("unsupported image type")

// Client uploads product images to the asset host and returns their
// public URLs.
type Client interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// HTTPClient implements Client via the asset host's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the JSON payload from the asset host.
type response struct {
	URL string `json:"url"`
}

// NewHTTPClient creates an asset host client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse asset host url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("asset host url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Upload sends the file as multipart form data and returns the hosted URL.
func (c *HTTPClient) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/uploads")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return "", err
		}
		if data.URL == "" {
			return "", fmt.Errorf("asset host returned empty url")
		}
		return data.URL, nil
	case http.StatusUnsupportedMediaType:
		return "", ErrUnsupportedImage
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("asset upload failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("asset host error: %s", resp.Status)
	}
}
