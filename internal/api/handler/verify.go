package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/compliance"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/domain"
)

// DefaultMaxImageSize caps uploads when no limit is configured.
const DefaultMaxImageSize = 10 * 1024 * 1024 // 10MB

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// VerificationService interface for the service
type VerificationService interface {
	VerifyURL(ctx context.Context, requestID, imageURL string) (*compliance.Report, error)
	VerifyImage(ctx context.Context, requestID string, image []byte) (*compliance.Report, error)
}

// VerifyRequest is the JSON body of POST /v1/verify-icao-photo
type VerifyRequest struct {
	ImageURL string `json:"imageUrl"`
}

// VerifyHandler handles photo verification requests
type VerifyHandler struct {
	service      VerificationService
	logger       *slog.Logger
	maxImageSize int64
}

// NewVerifyHandler creates a new VerifyHandler instance
func NewVerifyHandler(service VerificationService, logger *slog.Logger, maxImageSize int64) *VerifyHandler {
	if maxImageSize <= 0 {
		maxImageSize = DefaultMaxImageSize
	}
	return &VerifyHandler{
		service:      service,
		logger:       logger,
		maxImageSize: maxImageSize,
	}
}

// Verify POST /v1/verify-icao-photo - score a photo given by URL or upload
func (h *VerifyHandler) Verify(c *fiber.Ctx) error {
	requestID := c.GetRespHeader(fiber.HeaderXRequestID)

	var (
		report *compliance.Report
		err    error
	)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		image, extractErr := h.extractAndValidateImage(c)
		if extractErr != nil {
			return extractErr
		}
		report, err = h.service.VerifyImage(c.Context(), requestID, image)
	} else {
		imageURL, parseErr := parseImageURL(c.Body())
		if parseErr != nil {
			return parseErr
		}
		h.logger.Debug("verifying photo by url",
			slog.String("request_id", requestID),
			slog.String("image_url", imageURL),
		)
		report, err = h.service.VerifyURL(c.Context(), requestID, imageURL)
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(report)
}

func parseImageURL(body []byte) (string, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", domain.ErrImageURLRequired
	}

	var req VerifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", domain.ErrInvalidRequest.WithError(err)
	}
	return req.ImageURL, nil
}

// extractAndValidateImage extracts and validates the image from the form
func (h *VerifyHandler) extractAndValidateImage(c *fiber.Ctx) ([]byte, error) {
	// 1. Extract file
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	// 2. Validate size
	if file.Size == 0 {
		return nil, domain.ErrInvalidImage.WithError(errors.New("image is empty"))
	}
	if file.Size > h.maxImageSize {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("image is larger than %d bytes", h.maxImageSize))
	}

	// 3. Validate Content-Type
	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("unsupported content type %q", contentType))
	}

	// 4. Read image bytes
	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return imageBytes, nil
}
