package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
)

// VerifyPhotoRequest is the JSON body of a verification by URL
type VerifyPhotoRequest struct {
	ImageURL string `json:"imageUrl" example:"https://cdn.example.com/photos/passport.jpg"`
}

// CriterionVerdict is the outcome of one compliance criterion
type CriterionVerdict struct {
	Name    string `json:"name" example:"faceCoverage"`
	Passed  bool   `json:"passed" example:"true"`
	Message string `json:"message" example:"Face covers 75% of image height"`
	Assumed bool   `json:"assumed,omitempty" example:"false"`
}

// ImageInfo summarises the image geometry
type ImageInfo struct {
	Width        int     `json:"width" example:"450"`
	Height       int     `json:"height" example:"500"`
	AspectRatio  float64 `json:"aspectRatio" example:"0.9"`
	ApproxSizeMM string  `json:"approxSizeMM" example:"38mm × 42mm"`
}

// ComplianceReport is the verification result
type ComplianceReport struct {
	IsCompliant bool                        `json:"isCompliant" example:"true"`
	HasFace     bool                        `json:"hasFace" example:"true"`
	FaceCount   int                         `json:"faceCount" example:"1"`
	FaceSource  string                      `json:"faceSource" example:"detected"`
	Checks      map[string]CriterionVerdict `json:"checks"`
	Score       int                         `json:"score" example:"100"`
	Suggestions []string                    `json:"suggestions"`
	ImageInfo   ImageInfo                   `json:"imageInfo"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Image URL is required"`
	Details string `json:"details,omitempty" example:"unexpected status fetching image: 404"`
}

// HealthResponse is returned by the probes
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Version  string `json:"version,omitempty" example:"0.1.0"`
	Provider string `json:"provider,omitempty" example:"ninjas"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "ICAO Photo Check API",
		Version:     "v1.0.0",
		Description: "Scores portrait photos against ICAO-style ID photo rules and suggests fixes",
		Host:        "localhost:3000",
		Path:        "/",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/verify-icao-photo
		endpoint.New(
			endpoint.POST,
			"/v1/verify-icao-photo",
			endpoint.WithTags("Verification"),
			endpoint.WithSummary("Verify an ID photo"),
			endpoint.WithDescription("Fetches the image at imageUrl, detects faces and scores it against 12 criteria. A multipart/form-data body with an image part (JPEG, PNG or WebP) is accepted instead of the URL. A non-compliant photo is still a 200."),
			endpoint.WithConsume([]mime.MIME{mime.JSON, mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(VerifyPhotoRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ComplianceReport{}, "200", "Analysis completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Error: "Image URL is required"}, "400", "Bad Request"),
				response.New(ErrorResponse{Error: "Failed to verify photo", Details: "unexpected status fetching image: 404"}, "500", "Internal Server Error"),
			}),
		),

		// GET /health
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is up"),
			}),
		),

		// GET /ready
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is ready"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
