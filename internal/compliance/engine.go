package compliance

import (
	"fmt"
	"math"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/detection"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/imagemeta"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider"
)

const (
	msgNoFace        = "Cannot verify: no face detected"
	msgMultipleFaces = "Cannot verify: multiple faces detected"
	msgInconclusive  = "Could not be verified: face detection was unavailable, image proportions suggest a single portrait"
)

// outcome is a verdict plus the remediation hint shown when it fails.
// Criteria that could not be measured carry no remedy.
type outcome struct {
	verdict CriterionVerdict
	remedy  string
}

func pass(name CriterionName, msg string) outcome {
	return outcome{verdict: CriterionVerdict{Name: name, Passed: true, Message: msg}}
}

func assumed(name CriterionName, msg string) outcome {
	return outcome{verdict: CriterionVerdict{Name: name, Passed: true, Message: msg, Assumed: true}}
}

func fail(name CriterionName, msg, remedy string) outcome {
	return outcome{verdict: CriterionVerdict{Name: name, Message: msg}, remedy: remedy}
}

// faceState is what the rule set knows about faces in the image.
type faceState int

const (
	faceNone faceState = iota
	faceSingle
	faceMultiple
	// faceAssumedSingle comes from the portrait heuristic; there is no box.
	faceAssumedSingle
)

// Engine evaluates images against a Policy. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	policy Policy
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the thresholds in use.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Evaluate runs every criterion and assembles the report. It is a pure
// function of its inputs.
func (e *Engine) Evaluate(meta imagemeta.Metadata, result detection.Result) Report {
	var (
		state     faceState
		faceCount uint
		face      *provider.FaceBox
		source    detection.Provenance
	)

	switch r := result.(type) {
	case detection.Detected:
		source = r.Provenance()
		faceCount = uint(len(r.Faces))
		switch len(r.Faces) {
		case 0:
			state = faceNone
		case 1:
			state = faceSingle
			face = &r.Faces[0]
		default:
			state = faceMultiple
		}
	case detection.Inconclusive:
		source = r.Provenance()
		state = faceAssumedSingle
		faceCount = 1
	case detection.Unavailable:
		source = r.Provenance()
		state = faceNone
	case nil:
		source = detection.ProvenanceUnavailable
		state = faceNone
	default:
		panic(fmt.Sprintf("compliance: unknown detection result %T", result))
	}

	outcomes := e.evaluate(meta, state, faceCount, face)

	checks := make(Checks, len(outcomes))
	passed := 0
	for _, o := range outcomes {
		checks[o.verdict.Name] = o.verdict
		if o.verdict.Passed {
			passed++
		}
	}

	score := Score(passed, TotalCriteria)
	hasFace := faceCount > 0

	report := Report{
		IsCompliant: score >= e.policy.ComplianceThreshold && hasFace && faceCount == 1,
		HasFace:     hasFace,
		FaceCount:   faceCount,
		FaceSource:  source,
		Checks:      checks,
		Score:       score,
		ImageInfo:   e.imageInfo(meta),
	}
	report.Suggestions = e.suggest(report, state, outcomes)

	return report
}

// evaluate returns one outcome per criterion in Criteria order.
func (e *Engine) evaluate(meta imagemeta.Metadata, state faceState, faceCount uint, face *provider.FaceBox) []outcome {
	outcomes := make([]outcome, 0, TotalCriteria)
	for _, name := range Criteria {
		outcomes = append(outcomes, e.check(name, meta, state, faceCount, face))
	}
	return outcomes
}

func (e *Engine) check(name CriterionName, meta imagemeta.Metadata, state faceState, faceCount uint, face *provider.FaceBox) outcome {
	switch name {
	case HasSingleFace:
		return e.checkSingleFace(state, faceCount)
	case Dimensions:
		return e.checkDimensions(meta)
	case Resolution:
		return e.checkResolution(meta)
	case Sharpness:
		return e.checkSharpness(meta)
	}

	switch state {
	case faceNone:
		return fail(name, msgNoFace, "")
	case faceMultiple:
		if name == FacePosition || name == FaceCoverage {
			return fail(name, msgMultipleFaces, "")
		}
		return assumed(name, "Not verified with multiple faces in frame")
	case faceAssumedSingle:
		if name == FacePosition || name == FaceCoverage {
			return assumed(name, msgInconclusive)
		}
		return e.checkAdvisory(name, nil)
	}

	switch name {
	case FacePosition:
		return e.checkFacePosition(meta, face)
	case FaceCoverage:
		return e.checkFaceCoverage(meta, face)
	default:
		return e.checkAdvisory(name, face)
	}
}

func (e *Engine) checkSingleFace(state faceState, faceCount uint) outcome {
	switch state {
	case faceSingle:
		return pass(HasSingleFace, "Exactly one face detected")
	case faceAssumedSingle:
		return assumed(HasSingleFace, "Face detection was unavailable; image looks like a single portrait")
	case faceMultiple:
		return fail(HasSingleFace,
			fmt.Sprintf("Multiple faces detected (%d)", faceCount),
			"CRITICAL: Only one person may appear in the photo. Remove other people from the frame")
	default:
		return fail(HasSingleFace,
			"No face detected in the image",
			"CRITICAL: Upload a photo showing a clear, frontal view of one human face")
	}
}

func (e *Engine) checkDimensions(meta imagemeta.Metadata) outcome {
	p := e.policy
	recommended := fmt.Sprintf("%d-%d × %d-%d px (35-40mm × 40-45mm at %.0f DPI)",
		p.TargetMinWidth, p.TargetMaxWidth, p.TargetMinHeight, p.TargetMaxHeight, p.DPI)
	remedy := fmt.Sprintf("Use a larger photo of at least %d×%d px; %s is recommended", p.MinWidth, p.MinHeight, recommended)

	if !meta.HasDimensions() {
		return fail(Dimensions, "Image dimensions could not be read; use a PNG or JPEG photo", remedy)
	}
	if meta.Width < p.MinWidth || meta.Height < p.MinHeight {
		return fail(Dimensions,
			fmt.Sprintf("Image %d×%d px is below the %d×%d px minimum", meta.Width, meta.Height, p.MinWidth, p.MinHeight),
			remedy)
	}

	inTarget := meta.Width >= p.TargetMinWidth && meta.Width <= p.TargetMaxWidth &&
		meta.Height >= p.TargetMinHeight && meta.Height <= p.TargetMaxHeight
	if inTarget {
		return pass(Dimensions, fmt.Sprintf("Image %d×%d px is within the recommended %s", meta.Width, meta.Height, recommended))
	}
	return pass(Dimensions, fmt.Sprintf("Image %d×%d px meets the minimum; recommended size is %s", meta.Width, meta.Height, recommended))
}

func (e *Engine) checkResolution(meta imagemeta.Metadata) outcome {
	pixels := meta.Pixels()
	if pixels >= e.policy.MinPixels {
		return pass(Resolution, fmt.Sprintf("Image resolution is sufficient (%d pixels)", pixels))
	}
	return fail(Resolution,
		fmt.Sprintf("Image resolution too low (%d pixels, minimum %d)", pixels, e.policy.MinPixels),
		fmt.Sprintf("Use a higher resolution image with at least %d pixels", e.policy.MinPixels))
}

func (e *Engine) checkSharpness(meta imagemeta.Metadata) outcome {
	if meta.ByteSize > e.policy.MinSharpBytes {
		return pass(Sharpness, fmt.Sprintf("Image file size suggests adequate detail (%d bytes)", meta.ByteSize))
	}
	return fail(Sharpness,
		fmt.Sprintf("Image may be blurry or heavily compressed (%d bytes)", meta.ByteSize),
		"Use a steady camera with proper focus and avoid heavy compression")
}

func (e *Engine) checkFacePosition(meta imagemeta.Metadata, face *provider.FaceBox) outcome {
	const remedy = "Center your face in the frame, not too far left, right, up or down"
	if !meta.HasDimensions() {
		return fail(FacePosition, "Cannot verify: image dimensions unknown", "")
	}

	w, h := float64(meta.Width), float64(meta.Height)
	offX := math.Abs(face.CenterX()-w/2) / w
	offY := math.Abs(face.CenterY()-h/2) / h

	if offX <= e.policy.MaxCenterOffset && offY <= e.policy.MaxCenterOffset {
		return pass(FacePosition, "Face is centered in the frame")
	}
	return fail(FacePosition,
		fmt.Sprintf("Face is off-center (%.0f%% horizontal, %.0f%% vertical offset, max %.0f%%)",
			offX*100, offY*100, e.policy.MaxCenterOffset*100),
		remedy)
}

func (e *Engine) checkFaceCoverage(meta imagemeta.Metadata, face *provider.FaceBox) outcome {
	if meta.Height == 0 {
		return fail(FaceCoverage, "Cannot verify: image dimensions unknown", "")
	}

	p := e.policy
	ratio := face.Height / float64(meta.Height)
	pct := ratio * 100
	bounds := fmt.Sprintf("%.0f-%.0f%%", p.MinFaceCoverage*100, p.MaxFaceCoverage*100)

	switch {
	case ratio < p.MinFaceCoverage:
		return fail(FaceCoverage,
			fmt.Sprintf("Face is too small (%.0f%% of image height, expected %s)", pct, bounds),
			fmt.Sprintf("Move closer to the camera or crop tighter; the face should fill %s of the image height", bounds))
	case ratio > p.MaxFaceCoverage:
		return fail(FaceCoverage,
			fmt.Sprintf("Face is too large (%.0f%% of image height, expected %s)", pct, bounds),
			"Move back from the camera or crop wider so the full head and top of the shoulders are visible")
	default:
		return pass(FaceCoverage, fmt.Sprintf("Face covers %.0f%% of image height", pct))
	}
}

// checkAdvisory evaluates the criteria that default to a pass. face is nil
// when no attributes are available at all.
func (e *Engine) checkAdvisory(name CriterionName, face *provider.FaceBox) outcome {
	p := e.policy
	if face == nil {
		face = &provider.FaceBox{}
	}

	switch name {
	case Background:
		return assumed(Background, "Background could not be measured; ensure a plain, light-colored background")

	case HeadPose:
		hp := face.HeadPose
		if hp == nil {
			return assumed(HeadPose, "Head pose not measured; face the camera directly")
		}
		angles := fmt.Sprintf("yaw %.0f°, pitch %.0f°, roll %.0f°", hp.Yaw, hp.Pitch, hp.Roll)
		if math.Abs(hp.Yaw) < p.MaxHeadAngle && math.Abs(hp.Pitch) < p.MaxHeadAngle && math.Abs(hp.Roll) < p.MaxHeadAngle {
			return pass(HeadPose, "Head is straight and facing the camera ("+angles+")")
		}
		return fail(HeadPose,
			fmt.Sprintf("Head is turned or tilted (%s, max %.0f°)", angles, p.MaxHeadAngle),
			"Face the camera directly and keep your head level")

	case EyesOpen:
		if face.EyesOpen == nil {
			return assumed(EyesOpen, "Eyes not measured; keep both eyes open and visible")
		}
		if *face.EyesOpen > p.MinEyesOpen {
			return pass(EyesOpen, "Eyes are open")
		}
		return fail(EyesOpen, "Eyes appear closed", "Keep both eyes open and looking at the camera")

	case Expression:
		if face.MouthClosed == nil {
			return assumed(Expression, "Expression not measured; keep a neutral expression with mouth closed")
		}
		if *face.MouthClosed > p.MinMouthClosed {
			return pass(Expression, "Neutral expression with mouth closed")
		}
		return fail(Expression, "Mouth appears open", "Keep a neutral expression with your mouth closed; do not smile")

	case Lighting:
		if face.QualityScore == nil {
			return assumed(Lighting, "Lighting not measured; ensure even lighting without shadows")
		}
		if *face.QualityScore >= p.MinQualityScore {
			return pass(Lighting, "Lighting and image quality are adequate")
		}
		return fail(Lighting,
			fmt.Sprintf("Poor lighting or image quality (score %.2f)", *face.QualityScore),
			"Use even, front-facing light and avoid shadows on the face or background")

	case Accessories:
		if face.HasGlasses == nil {
			return assumed(Accessories, "Accessories not measured; remove glasses, hats and head coverings")
		}
		if !*face.HasGlasses {
			return pass(Accessories, "No glasses detected")
		}
		return fail(Accessories, "Glasses detected", "Remove glasses, hats and other accessories")
	}

	panic(fmt.Sprintf("compliance: %s is not an advisory criterion", name))
}

func (e *Engine) imageInfo(meta imagemeta.Metadata) ImageInfo {
	info := ImageInfo{
		Width:       meta.Width,
		Height:      meta.Height,
		AspectRatio: meta.AspectRatio(),
	}
	if meta.HasDimensions() && e.policy.DPI > 0 {
		info.ApproxSizeMM = fmt.Sprintf("%dmm × %dmm", toMM(meta.Width, e.policy.DPI), toMM(meta.Height, e.policy.DPI))
	}
	return info
}

func toMM(px uint, dpi float64) int {
	return int(math.Round(float64(px) / dpi * 25.4))
}
