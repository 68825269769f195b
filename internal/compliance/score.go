package compliance

import (
	"fmt"
	"math"
)

// Score returns round(100 * passed / total), or 0 when total is 0.
func Score(passed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(passed) / float64(total)))
}

const (
	summaryCompliant = "Photo meets ICAO photo standards. Check once more for a plain background, neutral expression and even lighting"
	summaryClose     = "Photo is close to compliant but needs improvement. Address the issues below"
	summaryFailing   = "Photo does not meet ICAO requirements. Please address all issues below"
	summaryNoFace    = "NO FACE DETECTED: this image cannot be used for an ID photo. Upload a clear, front-facing photo of one person"
)

// suggest composes the leading summary followed by one remedy per failed
// criterion, in Criteria order.
func (e *Engine) suggest(report Report, state faceState, outcomes []outcome) []string {
	suggestions := []string{e.summary(report, state)}
	for _, o := range outcomes {
		if !o.verdict.Passed && o.remedy != "" {
			suggestions = append(suggestions, o.remedy)
		}
	}
	return suggestions
}

func (e *Engine) summary(report Report, state faceState) string {
	switch {
	case state == faceNone:
		return summaryNoFace
	case state == faceMultiple:
		return fmt.Sprintf("MULTIPLE FACES DETECTED (%d): only one person may appear in an ID photo", report.FaceCount)
	case report.IsCompliant:
		return summaryCompliant
	case report.Score >= e.policy.ComplianceThreshold-e.policy.CloseBand:
		return summaryClose
	default:
		return summaryFailing
	}
}
