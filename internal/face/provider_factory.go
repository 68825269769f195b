package face

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/audit"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/config"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider/ninjas"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider/rekognition"
)

// ProviderType defines supported face detection provider types
type ProviderType string

const (
	// ProviderTypeNinjas is the API Ninjas facedetect endpoint (default)
	ProviderTypeNinjas ProviderType = "ninjas"
	// ProviderTypeDeepFace is a self-hosted DeepFace server
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeRekognition is AWS Rekognition; it also reports pose, eyes and glasses
	ProviderTypeRekognition ProviderType = "rekognition"
	// ProviderTypeMock answers locally, for development
	ProviderTypeMock ProviderType = "mock"
)

// NewFaceProvider creates a FaceProvider instance based on configuration
//
// Environment variables:
//   - FACE_PROVIDER: "ninjas", "deepface", "rekognition" or "mock" (default: "ninjas")
//   - API_NINJAS_KEY / API_NINJAS_URL: API Ninjas credentials and endpoint
//   - DEEPFACE_URL / DEEPFACE_RETRY_COUNT: DeepFace API URL and retries
//   - AWS_REGION: AWS region for Rekognition; credentials come from the SDK chain
//   - DETECTION_TIMEOUT: per-call HTTP timeout
func NewFaceProvider(ctx context.Context, cfg *config.Config, auditLogger audit.Logger) (provider.FaceProvider, error) {
	providerType := ProviderType(cfg.FaceProvider)

	switch providerType {
	case ProviderTypeNinjas, "":
		return createNinjasProvider(cfg)

	case ProviderTypeDeepFace:
		return createDeepFaceProvider(cfg), nil

	case ProviderTypeRekognition:
		return createRekognitionProvider(ctx, cfg, auditLogger)

	case ProviderTypeMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s, %s)",
			cfg.FaceProvider, ProviderTypeNinjas, ProviderTypeDeepFace, ProviderTypeRekognition, ProviderTypeMock)
	}
}

// createNinjasProvider creates an API Ninjas provider instance
func createNinjasProvider(cfg *config.Config) (provider.FaceProvider, error) {
	ninjasConfig := ninjas.DefaultConfig()
	ninjasConfig.APIKey = cfg.APINinjasKey
	if cfg.APINinjasURL != "" {
		ninjasConfig.BaseURL = cfg.APINinjasURL
	}
	if cfg.DetectionTimeout > 0 {
		ninjasConfig.Timeout = cfg.DetectionTimeout
	}

	prov, err := ninjas.NewProvider(ninjasConfig)
	if err != nil {
		return nil, fmt.Errorf("create ninjas provider: %w", err)
	}

	return prov, nil
}

// createRekognitionProvider creates an AWS Rekognition provider instance
func createRekognitionProvider(ctx context.Context, cfg *config.Config, auditLogger audit.Logger) (provider.FaceProvider, error) {
	rekogConfig := rekognition.DefaultConfig()
	if cfg.AWSRegion != "" {
		rekogConfig.Region = cfg.AWSRegion
	}

	var opts []rekognition.ProviderOption
	if auditLogger != nil {
		opts = append(opts, rekognition.WithAuditLogger(auditLogger))
	}

	prov, err := rekognition.NewProvider(ctx, rekogConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("create rekognition provider: %w", err)
	}

	return prov, nil
}

// createDeepFaceProvider creates a DeepFace provider instance
func createDeepFaceProvider(cfg *config.Config) provider.FaceProvider {
	deepfaceConfig := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceRetries > 0 {
		deepfaceConfig.RetryCount = cfg.DeepFaceRetries
	}
	if cfg.DetectionTimeout > 0 {
		deepfaceConfig.Timeout = cfg.DetectionTimeout
	}

	return deepface.NewProvider(deepfaceConfig)
}
