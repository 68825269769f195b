package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/audit"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/compliance"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/detection"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/domain"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/fetch"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/imagemeta"
)

type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, imagemeta.Metadata, error)
}

type FaceDetector interface {
	Detect(ctx context.Context, image []byte, meta imagemeta.Metadata) detection.Result
}

type ComplianceEvaluator interface {
	Evaluate(meta imagemeta.Metadata, result detection.Result) compliance.Report
}

type VerificationService struct {
	fetcher     ImageFetcher
	detector    FaceDetector
	evaluator   ComplianceEvaluator
	logger      *slog.Logger
	auditLogger audit.Logger
}

func NewVerificationService(
	fetcher ImageFetcher,
	detector FaceDetector,
	evaluator ComplianceEvaluator,
	logger *slog.Logger,
) *VerificationService {
	return &VerificationService{
		fetcher:     fetcher,
		detector:    detector,
		evaluator:   evaluator,
		logger:      logger,
		auditLogger: &audit.NoOpLogger{},
	}
}

func (s *VerificationService) WithAuditLogger(l audit.Logger) *VerificationService {
	s.auditLogger = l
	return s
}

// VerifyURL fetches the image at imageURL and evaluates it.
func (s *VerificationService) VerifyURL(ctx context.Context, requestID, imageURL string) (*compliance.Report, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, domain.ErrImageURLRequired
	}
	if _, err := fetch.ParseURL(imageURL); err != nil {
		return nil, domain.ErrInvalidImageURL.WithError(err)
	}

	image, meta, err := s.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		s.logger.ErrorContext(ctx, "image fetch failed",
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		if errors.Is(err, fetch.ErrTooLarge) {
			return nil, domain.ErrImageTooLarge.WithError(err)
		}
		return nil, domain.ErrImageFetchFailed.WithError(err)
	}

	return s.verify(ctx, requestID, image, meta), nil
}

// VerifyImage evaluates uploaded image bytes.
func (s *VerificationService) VerifyImage(ctx context.Context, requestID string, image []byte) (*compliance.Report, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidImage
	}
	return s.verify(ctx, requestID, image, imagemeta.Extract(image)), nil
}

func (s *VerificationService) verify(ctx context.Context, requestID string, image []byte, meta imagemeta.Metadata) *compliance.Report {
	analysisID := uuid.New()
	start := time.Now()

	result := s.detector.Detect(ctx, image, meta)
	report := s.evaluator.Evaluate(meta, result)

	s.logger.InfoContext(ctx, "photo verified",
		slog.String("request_id", requestID),
		slog.String("analysis_id", analysisID.String()),
		slog.Int("score", report.Score),
		slog.Bool("compliant", report.IsCompliant),
		slog.String("face_source", string(report.FaceSource)),
		slog.Uint64("face_count", uint64(report.FaceCount)),
		slog.Duration("latency", time.Since(start)),
	)

	_ = s.auditLogger.Log(ctx, audit.Event{
		EventType: audit.EventPhotoVerified,
		RequestID: requestID,
		Success:   true,
		Metadata: map[string]string{
			"analysis_id": analysisID.String(),
			"score":       strconv.Itoa(report.Score),
			"compliant":   strconv.FormatBool(report.IsCompliant),
			"face_source": string(report.FaceSource),
			"format":      string(meta.Format),
		},
	})

	return &report
}
