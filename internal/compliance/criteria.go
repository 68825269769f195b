// Package compliance scores a portrait photo against ICAO-style ID photo rules.
//
// Six criteria (background, headPose, eyesOpen, expression, lighting,
// accessories) pass by default unless the detector supplied attributes that
// measure them. Such verdicts carry Assumed=true: a pass there means
// "not contradicted", not "verified", and the score overstates measured
// compliance accordingly.
package compliance

// CriterionName identifies one compliance rule.
type CriterionName string

const (
	HasSingleFace CriterionName = "hasSingleFace"
	Dimensions    CriterionName = "dimensions"
	Resolution    CriterionName = "resolution"
	FacePosition  CriterionName = "facePosition"
	FaceCoverage  CriterionName = "faceCoverage"
	Background    CriterionName = "background"
	HeadPose      CriterionName = "headPose"
	EyesOpen      CriterionName = "eyesOpen"
	Expression    CriterionName = "expression"
	Lighting      CriterionName = "lighting"
	Accessories   CriterionName = "accessories"
	Sharpness     CriterionName = "sharpness"
)

// Criteria lists every criterion in evaluation and suggestion order.
var Criteria = []CriterionName{
	HasSingleFace,
	Dimensions,
	Resolution,
	FacePosition,
	FaceCoverage,
	Background,
	HeadPose,
	EyesOpen,
	Expression,
	Lighting,
	Accessories,
	Sharpness,
}

// TotalCriteria is the score denominator.
var TotalCriteria = len(Criteria)

// CriterionVerdict is the outcome of one criterion.
type CriterionVerdict struct {
	Name    CriterionName `json:"name"`
	Passed  bool          `json:"passed"`
	Message string        `json:"message"`
	// Assumed marks a pass granted by leniency policy rather than measurement.
	Assumed bool `json:"assumed,omitempty"`
}
