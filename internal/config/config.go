package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var (
	ErrMissingNinjasKey = errors.New("API_NINJAS_KEY is required when FACE_PROVIDER is ninjas")
	ErrUnknownProvider  = errors.New("unknown FACE_PROVIDER")
	ErrInvalidThreshold = errors.New("COMPLIANCE_THRESHOLD must be between 0 and 100")
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Provider
	FaceProvider     string        `envconfig:"FACE_PROVIDER" default:"ninjas"`
	APINinjasKey     string        `envconfig:"API_NINJAS_KEY"`
	APINinjasURL     string        `envconfig:"API_NINJAS_URL" default:"https://api.api-ninjas.com"`
	DeepFaceURL      string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceRetries  int           `envconfig:"DEEPFACE_RETRY_COUNT" default:"0"`
	AWSRegion        string        `envconfig:"AWS_REGION" default:"us-east-1"`
	DetectionTimeout time.Duration `envconfig:"DETECTION_TIMEOUT" default:"8s"`

	// Image fetch
	FetchTimeout  time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	MaxImageBytes int64         `envconfig:"MAX_IMAGE_BYTES" default:"10485760"`

	// Scoring
	ComplianceThreshold int `envconfig:"COMPLIANCE_THRESHOLD" default:"75"`
	CloseBand           int `envconfig:"CLOSE_BAND" default:"15"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field rules envconfig cannot express.
func (c *Config) Validate() error {
	switch c.FaceProvider {
	case "ninjas":
		if c.APINinjasKey == "" {
			return ErrMissingNinjasKey
		}
	case "deepface", "rekognition", "mock":
	default:
		return fmt.Errorf("%w: %q (supported: ninjas, deepface, rekognition, mock)", ErrUnknownProvider, c.FaceProvider)
	}

	if c.ComplianceThreshold < 0 || c.ComplianceThreshold > 100 {
		return ErrInvalidThreshold
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
