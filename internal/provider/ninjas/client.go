package ninjas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider"
)

const (
	defaultBaseURL = "https://api.api-ninjas.com"
	detectPath     = "/v1/facedetect"
	apiKeyHeader   = "X-Api-Key"

	// maxResponseSize caps the body read from the detector
	maxResponseSize = 1 << 20
)

var (
	ErrMissingAPIKey = errors.New("api ninjas key is not configured")
	ErrUnavailable   = errors.New("api ninjas face detection unavailable")
)

// Config holds the API Ninjas client configuration
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults. The API key has no
// default and must be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Timeout: 8 * time.Second,
	}
}

// Provider implements provider.FaceProvider against the API Ninjas facedetect endpoint
type Provider struct {
	httpClient *http.Client
	config     Config
}

// NewProvider creates a provider. It fails when no API key is configured.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	return &Provider{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}, nil
}

// Name implements provider.FaceProvider
func (p *Provider) Name() string {
	return "ninjas"
}

// DetectFaces uploads the image as multipart field "image" and normalizes the
// returned box list.
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.FaceBox, error) {
	body, contentType, err := multipartImage(image)
	if err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+detectPath, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(apiKeyHeader, p.config.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: api ninjas returned status %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	boxes, err := provider.NormalizeBoxes(respBody)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	return boxes, nil
}

func multipartImage(image []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", "photo")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

var _ provider.FaceProvider = (*Provider)(nil)
