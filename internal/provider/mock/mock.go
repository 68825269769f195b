package mock

import (
	"context"
	"errors"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/imagemeta"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider"
)

// ErrImageTooSmall is returned for payloads that cannot be an image
var ErrImageTooSmall = errors.New("mock provider: image too small")

// coverage is the fraction of the image height the simulated face occupies
const coverage = 0.7

// Provider implementa provider.FaceProvider para testes e desenvolvimento.
// Reporta uma face centralizada, dimensionada a partir do cabeçalho da imagem.
type Provider struct{}

// New cria uma nova instância do MockProvider
func New() *Provider {
	return &Provider{}
}

// Name implements provider.FaceProvider
func (p *Provider) Name() string {
	return "mock"
}

// DetectFaces simula detecção de faces
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.FaceBox, error) {
	if len(image) < 1000 {
		return nil, ErrImageTooSmall
	}

	meta := imagemeta.Extract(image)
	if !meta.HasDimensions() {
		return []provider.FaceBox{}, nil
	}

	w, h := float64(meta.Width), float64(meta.Height)
	faceH := h * coverage
	faceW := faceH * 0.75

	return []provider.FaceBox{
		{
			X:      (w - faceW) / 2,
			Y:      (h - faceH) / 2,
			Width:  faceW,
			Height: faceH,
		},
	}, nil
}

var _ provider.FaceProvider = (*Provider)(nil)
