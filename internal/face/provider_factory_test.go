package face

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/audit"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/config"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider/ninjas"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider/rekognition"
)

func TestNewFaceProvider_Ninjas(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		faceProvider string
	}{
		{"explicit ninjas provider", "ninjas"},
		{"empty provider defaults to ninjas", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				FaceProvider: tt.faceProvider,
				APINinjasKey: "key-123",
			}

			provider, err := NewFaceProvider(ctx, cfg, &audit.NoOpLogger{})
			if err != nil {
				t.Fatalf("NewFaceProvider() error = %v", err)
			}

			if _, ok := provider.(*ninjas.Provider); !ok {
				t.Errorf("NewFaceProvider() returned type %T, want *ninjas.Provider", provider)
			}
		})
	}
}

func TestNewFaceProvider_NinjasWithoutKey(t *testing.T) {
	cfg := &config.Config{FaceProvider: "ninjas"}

	_, err := NewFaceProvider(context.Background(), cfg, nil)
	if !errors.Is(err, ninjas.ErrMissingAPIKey) {
		t.Errorf("NewFaceProvider() error = %v, want %v", err, ninjas.ErrMissingAPIKey)
	}
}

func TestNewFaceProvider_DeepFace(t *testing.T) {
	tests := []struct {
		name        string
		deepFaceURL string
	}{
		{"default deepface URL", ""},
		{"custom deepface URL", "http://custom-host:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				FaceProvider: "deepface",
				DeepFaceURL:  tt.deepFaceURL,
			}

			provider, err := NewFaceProvider(context.Background(), cfg, nil)
			if err != nil {
				t.Fatalf("NewFaceProvider() error = %v", err)
			}

			if _, ok := provider.(*deepface.Provider); !ok {
				t.Errorf("NewFaceProvider() returned type %T, want *deepface.Provider", provider)
			}
		})
	}
}

func TestNewFaceProvider_Mock(t *testing.T) {
	provider, err := NewFaceProvider(context.Background(), &config.Config{FaceProvider: "mock"}, nil)
	if err != nil {
		t.Fatalf("NewFaceProvider() error = %v", err)
	}

	if _, ok := provider.(*mock.Provider); !ok {
		t.Errorf("NewFaceProvider() returned type %T, want *mock.Provider", provider)
	}
}

func TestNewFaceProvider_Rekognition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Rekognition test in short mode (requires AWS configuration)")
	}

	cfg := &config.Config{
		FaceProvider: "rekognition",
		AWSRegion:    "us-east-1",
	}

	provider, err := NewFaceProvider(context.Background(), cfg, &audit.NoOpLogger{})
	if err != nil {
		t.Skipf("Skipping Rekognition test (AWS configuration unavailable): %v", err)
	}

	if _, ok := provider.(*rekognition.Provider); !ok {
		t.Errorf("NewFaceProvider() returned type %T, want *rekognition.Provider", provider)
	}
}

func TestNewFaceProvider_UnknownProvider(t *testing.T) {
	cfg := &config.Config{
		FaceProvider: "unknown-provider",
	}

	_, err := NewFaceProvider(context.Background(), cfg, nil)
	if err == nil {
		t.Fatal("NewFaceProvider() expected error for unknown provider, got nil")
	}

	expectedErrMsg := "unknown provider type: unknown-provider"
	if !strings.HasPrefix(err.Error(), expectedErrMsg) {
		t.Errorf("NewFaceProvider() error = %v, want error containing %q", err, expectedErrMsg)
	}
}

func TestProviderType_Constants(t *testing.T) {
	for want, got := range map[string]ProviderType{
		"ninjas":      ProviderTypeNinjas,
		"deepface":    ProviderTypeDeepFace,
		"rekognition": ProviderTypeRekognition,
		"mock":        ProviderTypeMock,
	} {
		if string(got) != want {
			t.Errorf("ProviderType = %q, want %q", got, want)
		}
	}
}
