package detection

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/audit"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/imagemeta"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 8 * time.Second

// Adapter wraps a provider.FaceProvider with a timeout and provenance tagging.
type Adapter struct {
	provider    provider.FaceProvider
	timeout     time.Duration
	logger      *slog.Logger
	auditLogger audit.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithAuditLogger records detection outcomes.
func WithAuditLogger(l audit.Logger) Option {
	return func(a *Adapter) {
		a.auditLogger = l
	}
}

// NewAdapter creates an Adapter.
func NewAdapter(p provider.FaceProvider, logger *slog.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		provider:    p,
		timeout:     DefaultTimeout,
		logger:      logger,
		auditLogger: &audit.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Detect makes one attempt against the backend. It never returns an error:
// any failure, including a timeout or cancellation, resolves to Unavailable or
// Inconclusive depending on LooksLikePortrait(meta).
func (a *Adapter) Detect(ctx context.Context, image []byte, meta imagemeta.Metadata) Result {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	faces, err := a.provider.DetectFaces(callCtx, image)
	latency := time.Since(start)

	if err == nil {
		a.logger.DebugContext(ctx, "faces detected",
			slog.String("provider", a.provider.Name()),
			slog.Int("faces", len(faces)),
			slog.Duration("latency", latency),
		)
		_ = a.auditLogger.Log(ctx, audit.Event{
			EventType: audit.EventFaceDetected,
			Provider:  a.provider.Name(),
			Success:   true,
			Metadata: map[string]string{
				"faces_count": strconv.Itoa(len(faces)),
				"latency_ms":  strconv.FormatInt(latency.Milliseconds(), 10),
			},
		})
		if faces == nil {
			faces = []provider.FaceBox{}
		}
		return Detected{Faces: faces}
	}

	portrait := LooksLikePortrait(meta)
	a.logger.WarnContext(ctx, "face detection unavailable",
		slog.String("provider", a.provider.Name()),
		slog.Any("error", err),
		slog.Duration("latency", latency),
		slog.Bool("portrait_heuristic", portrait),
	)
	_ = a.auditLogger.Log(ctx, audit.Event{
		EventType: audit.EventDetectionUnavailable,
		Provider:  a.provider.Name(),
		Success:   false,
		Error:     err.Error(),
		Metadata: map[string]string{
			"portrait_heuristic": strconv.FormatBool(portrait),
		},
	})

	if portrait {
		return Inconclusive{Reason: err}
	}
	return Unavailable{Reason: err}
}
