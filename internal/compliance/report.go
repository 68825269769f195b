package compliance

import "github.com/saturnino-fabrica-de-software/icaocheck/internal/detection"

// Checks maps each criterion to its verdict. It is keyed by name so the JSON
// encoding is stable.
type Checks map[CriterionName]CriterionVerdict

// ImageInfo summarises the image geometry.
type ImageInfo struct {
	Width        uint    `json:"width"`
	Height       uint    `json:"height"`
	AspectRatio  float64 `json:"aspectRatio"`
	ApproxSizeMM string  `json:"approxSizeMM"`
}

// Report is the full result of one evaluation. Callers treat it as read-only.
type Report struct {
	IsCompliant bool                 `json:"isCompliant"`
	HasFace     bool                 `json:"hasFace"`
	FaceCount   uint                 `json:"faceCount"`
	FaceSource  detection.Provenance `json:"faceSource"`
	Checks      Checks               `json:"checks"`
	Score       int                  `json:"score"`
	Suggestions []string             `json:"suggestions"`
	ImageInfo   ImageInfo            `json:"imageInfo"`
}

// Passed reports whether the named criterion passed.
func (r Report) Passed(name CriterionName) bool {
	return r.Checks[name].Passed
}
