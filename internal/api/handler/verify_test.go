package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/compliance"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/detection"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/domain"
)

// MockVerificationService is a mock implementation of VerificationService
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) VerifyURL(ctx context.Context, requestID, imageURL string) (*compliance.Report, error) {
	args := m.Called(ctx, requestID, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compliance.Report), args.Error(1)
}

func (m *MockVerificationService) VerifyImage(ctx context.Context, requestID string, image []byte) (*compliance.Report, error) {
	args := m.Called(ctx, requestID, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compliance.Report), args.Error(1)
}

// testLogger returns a logger that discards all output
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestApp(h *VerifyHandler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(testLogger())})
	app.Post("/v1/verify-icao-photo", h.Verify)
	return app
}

// Helper to create multipart request
func createMultipartRequest(imageContent []byte, contentType string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if imageContent != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="photo.jpg"`)
		h.Set("Content-Type", contentType)

		part, _ := writer.CreatePart(h)
		_, _ = part.Write(imageContent)
	}

	_ = writer.Close()
	return body, writer.FormDataContentType()
}

func sampleReport() *compliance.Report {
	return &compliance.Report{
		IsCompliant: true,
		HasFace:     true,
		FaceCount:   1,
		FaceSource:  detection.ProvenanceDetected,
		Checks: compliance.Checks{
			compliance.HasSingleFace: {Name: compliance.HasSingleFace, Passed: true, Message: "Exactly one face detected"},
		},
		Score:       100,
		Suggestions: []string{"Photo meets ICAO photo standards"},
		ImageInfo:   compliance.ImageInfo{Width: 450, Height: 500, AspectRatio: 0.9, ApproxSizeMM: "38mm × 42mm"},
	}
}

func TestVerifyHandler_VerifyURL(t *testing.T) {
	const imageURL = "https://cdn.example.com/photo.jpg"

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockVerificationService)
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name: "completed analysis",
			body: `{"imageUrl":"` + imageURL + `"}`,
			setupMock: func(m *MockVerificationService) {
				m.On("VerifyURL", mock.Anything, mock.Anything, imageURL).Return(sampleReport(), nil)
			},
			expectedStatus: 200,
			checkResponse: func(t *testing.T, body []byte) {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, true, resp["isCompliant"])
				assert.Equal(t, float64(100), resp["score"])
				assert.Equal(t, "detected", resp["faceSource"])
				assert.Contains(t, resp, "checks")
				assert.Contains(t, resp, "imageInfo")
			},
		},
		{
			name: "non-compliant photo is still ok",
			body: `{"imageUrl":"` + imageURL + `"}`,
			setupMock: func(m *MockVerificationService) {
				r := sampleReport()
				r.IsCompliant = false
				r.Score = 25
				m.On("VerifyURL", mock.Anything, mock.Anything, imageURL).Return(r, nil)
			},
			expectedStatus: 200,
		},
		{
			name:           "empty body",
			body:           "",
			setupMock:      func(m *MockVerificationService) {},
			expectedStatus: 400,
			checkResponse: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"Image URL is required"}`, string(body))
			},
		},
		{
			name:           "malformed json",
			body:           `{"imageUrl":`,
			setupMock:      func(m *MockVerificationService) {},
			expectedStatus: 400,
		},
		{
			name: "missing imageUrl",
			body: `{}`,
			setupMock: func(m *MockVerificationService) {
				m.On("VerifyURL", mock.Anything, mock.Anything, "").Return(nil, domain.ErrImageURLRequired)
			},
			expectedStatus: 400,
		},
		{
			name: "fetch failure",
			body: `{"imageUrl":"` + imageURL + `"}`,
			setupMock: func(m *MockVerificationService) {
				m.On("VerifyURL", mock.Anything, mock.Anything, imageURL).
					Return(nil, domain.ErrImageFetchFailed.WithError(assert.AnError))
			},
			expectedStatus: 500,
			checkResponse: func(t *testing.T, body []byte) {
				var resp middleware.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Failed to verify photo", resp.Error)
				assert.Equal(t, assert.AnError.Error(), resp.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockVerificationService)
			tt.setupMock(svc)
			app := createTestApp(NewVerifyHandler(svc, testLogger(), 0))

			req := httptest.NewRequest("POST", "/v1/verify-icao-photo", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				body, _ := io.ReadAll(resp.Body)
				tt.checkResponse(t, body)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestVerifyHandler_VerifyUpload(t *testing.T) {
	image := bytes.Repeat([]byte{0xFF}, 5000)

	tests := []struct {
		name           string
		imageContent   []byte
		contentType    string
		maxSize        int64
		setupMock      func(*MockVerificationService)
		expectedStatus int
	}{
		{
			name:         "jpeg upload",
			imageContent: image,
			contentType:  "image/jpeg",
			setupMock: func(m *MockVerificationService) {
				m.On("VerifyImage", mock.Anything, mock.Anything, image).Return(sampleReport(), nil)
			},
			expectedStatus: 200,
		},
		{
			name:         "webp upload",
			imageContent: image,
			contentType:  "image/webp",
			setupMock: func(m *MockVerificationService) {
				m.On("VerifyImage", mock.Anything, mock.Anything, image).Return(sampleReport(), nil)
			},
			expectedStatus: 200,
		},
		{
			name:           "missing image part",
			contentType:    "image/jpeg",
			setupMock:      func(m *MockVerificationService) {},
			expectedStatus: 400,
		},
		{
			name:           "unsupported type",
			imageContent:   image,
			contentType:    "image/gif",
			setupMock:      func(m *MockVerificationService) {},
			expectedStatus: 400,
		},
		{
			name:           "too large",
			imageContent:   image,
			contentType:    "image/png",
			maxSize:        1024,
			setupMock:      func(m *MockVerificationService) {},
			expectedStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockVerificationService)
			tt.setupMock(svc)
			app := createTestApp(NewVerifyHandler(svc, testLogger(), tt.maxSize))

			body, contentType := createMultipartRequest(tt.imageContent, tt.contentType)
			req := httptest.NewRequest("POST", "/v1/verify-icao-photo", body)
			req.Header.Set("Content-Type", contentType)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			svc.AssertExpectations(t)
		})
	}
}
