package provider

import "context"

// FaceProvider is a face-detection backend.
type FaceProvider interface {
	// Name identifies the backend in logs and audit events.
	Name() string

	// DetectFaces returns every face found in the image. An empty slice with a
	// nil error means the backend answered and saw no face.
	DetectFaces(ctx context.Context, image []byte) ([]FaceBox, error)
}

// FaceBox is a detected face in pixel coordinates of the source image.
// The optional attributes are nil when the backend does not report them;
// providers never fill them with guessed values.
type FaceBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	HeadPose *HeadPose `json:"headPose,omitempty"`
	// EyesOpen is the probability (0..1) that both eyes are open.
	EyesOpen *float64 `json:"eyesOpen,omitempty"`
	// MouthClosed is the probability (0..1) that the mouth is closed.
	MouthClosed  *float64 `json:"mouthClosed,omitempty"`
	HasGlasses   *bool    `json:"hasGlasses,omitempty"`
	QualityScore *float64 `json:"qualityScore,omitempty"`
}

// HeadPose holds face orientation in degrees.
type HeadPose struct {
	Yaw   float64 `json:"yaw"`   // left/right rotation
	Pitch float64 `json:"pitch"` // up/down rotation
	Roll  float64 `json:"roll"`  // tilted rotation
}

// CenterX returns the horizontal center of the box.
func (b FaceBox) CenterX() float64 {
	return b.X + b.Width/2
}

// CenterY returns the vertical center of the box.
func (b FaceBox) CenterY() float64 {
	return b.Y + b.Height/2
}
