package rekognition

import "errors"

var (
	// ErrInvalidCredentials indicates that AWS credentials are invalid or missing
	ErrInvalidCredentials = errors.New("invalid or missing AWS credentials")

	// ErrInvalidImage indicates the image is empty or outside Rekognition size limits
	ErrInvalidImage = errors.New("invalid image for rekognition")

	// ErrInvalidImageFormat indicates Rekognition could not decode the image
	ErrInvalidImageFormat = errors.New("unsupported image format for rekognition")
)
