package rekognition

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/audit"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/imagemeta"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider"
)

const (
	// maxImageSize is the maximum image size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
	// minImageSize is the minimum image size for valid processing
	minImageSize = 100
)

// Provider implements the provider.FaceProvider interface using AWS Rekognition
type Provider struct {
	client      *Client
	auditLogger audit.Logger
}

// ProviderOption defines optional configuration for Provider
type ProviderOption func(*Provider)

// WithAuditLogger sets the audit logger for the provider
func WithAuditLogger(logger audit.Logger) ProviderOption {
	return func(p *Provider) {
		p.auditLogger = logger
	}
}

// Ensure Provider implements provider.FaceProvider interface at compile time
var _ provider.FaceProvider = (*Provider)(nil)

// NewProvider creates a new Rekognition provider
func NewProvider(ctx context.Context, cfg Config, opts ...ProviderOption) (*Provider, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create rekognition client: %w", err)
	}

	return newProvider(client, opts...), nil
}

func newProvider(client *Client, opts ...ProviderOption) *Provider {
	p := &Provider{client: client}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements provider.FaceProvider
func (p *Provider) Name() string {
	return "rekognition"
}

// logAudit logs an audit event if an audit logger is configured
// Audit failure does not affect the operation (fire-and-forget)
func (p *Provider) logAudit(ctx context.Context, success bool, err error, metadata map[string]string) {
	if p.auditLogger == nil {
		return
	}

	event := audit.Event{
		EventType: audit.EventFaceDetected,
		Provider:  p.Name(),
		Success:   success,
		Metadata:  metadata,
	}

	if err != nil {
		event.Error = err.Error()
	}

	_ = p.auditLogger.Log(ctx, event)
}

// validateImage checks if image data is valid for Rekognition processing
func validateImage(image []byte) error {
	if len(image) == 0 {
		return ErrInvalidImage
	}
	if len(image) < minImageSize {
		return fmt.Errorf("%w: image too small (%d bytes, minimum %d)", ErrInvalidImage, len(image), minImageSize)
	}
	if len(image) > maxImageSize {
		return fmt.Errorf("%w: image too large (%d bytes, maximum %d)", ErrInvalidImage, len(image), maxImageSize)
	}
	return nil
}

// DetectFaces detects faces using the Rekognition DetectFaces API with all
// attributes. Rekognition reports boxes as ratios of the image size; they are
// scaled to pixels with the dimensions read from the image header.
// Returns an empty slice if no faces are detected (not an error)
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.FaceBox, error) {
	if err := validateImage(image); err != nil {
		p.logAudit(ctx, false, err, map[string]string{
			"image_size": strconv.Itoa(len(image)),
		})
		return nil, err
	}

	input := &rekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: image,
		},
		Attributes: []types.Attribute{types.AttributeAll},
	}

	output, err := p.client.rekognition.DetectFaces(ctx, input)
	if err != nil {
		err = parseAPIError(err)
		p.logAudit(ctx, false, err, map[string]string{
			"image_size": strconv.Itoa(len(image)),
		})
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	meta := imagemeta.Extract(image)
	faces := make([]provider.FaceBox, 0, len(output.FaceDetails))
	for _, detail := range output.FaceDetails {
		faces = append(faces, toFaceBox(detail, float64(meta.Width), float64(meta.Height)))
	}

	p.logAudit(ctx, true, nil, map[string]string{
		"faces_count": strconv.Itoa(len(faces)),
		"image_size":  strconv.Itoa(len(image)),
	})

	return faces, nil
}

func toFaceBox(detail types.FaceDetail, width, height float64) provider.FaceBox {
	var box provider.FaceBox

	if bb := detail.BoundingBox; bb != nil {
		box.X = f32(bb.Left) * width
		box.Y = f32(bb.Top) * height
		box.Width = f32(bb.Width) * width
		box.Height = f32(bb.Height) * height
	}

	if pose := detail.Pose; pose != nil {
		box.HeadPose = &provider.HeadPose{
			Yaw:   f32(pose.Yaw),
			Pitch: f32(pose.Pitch),
			Roll:  f32(pose.Roll),
		}
	}

	if eyes := detail.EyesOpen; eyes != nil && eyes.Confidence != nil {
		prob := probability(eyes.Value, eyes.Confidence)
		box.EyesOpen = &prob
	}

	if mouth := detail.MouthOpen; mouth != nil && mouth.Confidence != nil {
		prob := 1 - probability(mouth.Value, mouth.Confidence)
		box.MouthClosed = &prob
	}

	if detail.Eyeglasses != nil || detail.Sunglasses != nil {
		glasses := (detail.Eyeglasses != nil && detail.Eyeglasses.Value) ||
			(detail.Sunglasses != nil && detail.Sunglasses.Value)
		box.HasGlasses = &glasses
	}

	if detail.Quality != nil {
		score := calculateQualityScore(detail.Quality)
		box.QualityScore = &score
	}

	return box
}

// probability converts a Rekognition boolean attribute with a 0-100
// confidence into the probability that the attribute is true
func probability(value bool, confidence *float32) float64 {
	c := f32(confidence) / 100.0
	if value {
		return c
	}
	return 1 - c
}

// calculateQualityScore computes an overall quality score from Rekognition quality metrics
// Returns a score between 0.0 (poor quality) and 1.0 (excellent quality)
func calculateQualityScore(quality *types.ImageQuality) float64 {
	if quality == nil {
		return 0.0
	}

	brightness := f32(quality.Brightness) / 100.0
	sharpness := f32(quality.Sharpness) / 100.0

	// Weight sharpness more heavily as blur is the usual rejection cause
	return brightness*0.3 + sharpness*0.7
}

func f32(v *float32) float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}
