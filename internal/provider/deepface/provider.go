package deepface

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider"
)

// Provider implements provider.FaceProvider using DeepFace API
type Provider struct {
	client *Client
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// Name implements provider.FaceProvider
func (p *Provider) Name() string {
	return "deepface"
}

// DetectFaces detects faces in the image. DeepFace only reports regions, so the
// optional pose and expression attributes stay nil.
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.FaceBox, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Analyze(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	faces := make([]provider.FaceBox, 0, len(resp.Results))
	for _, result := range resp.Results {
		if result.FaceConfidence != nil && *result.FaceConfidence == 0 {
			continue
		}
		faces = append(faces, provider.FaceBox{
			X:      float64(result.Region.X),
			Y:      float64(result.Region.Y),
			Width:  float64(result.Region.W),
			Height: float64(result.Region.H),
		})
	}

	return faces, nil
}

// Ensure Provider implements provider.FaceProvider
var _ provider.FaceProvider = (*Provider)(nil)
