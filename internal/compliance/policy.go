package compliance

// Policy holds every tunable threshold of the rule engine.
type Policy struct {
	// ComplianceThreshold is the minimum score for a compliant photo.
	ComplianceThreshold int
	// CloseBand is how far below the threshold a score still counts as "close".
	CloseBand int

	MinWidth  uint
	MinHeight uint

	// Recommended window, reported in messages only.
	TargetMinWidth  uint
	TargetMaxWidth  uint
	TargetMinHeight uint
	TargetMaxHeight uint

	MinPixels uint64

	// MaxCenterOffset is the allowed face-center distance from the image
	// center, as a fraction of the image size on each axis.
	MaxCenterOffset float64

	MinFaceCoverage float64
	MaxFaceCoverage float64

	// MaxHeadAngle bounds |yaw|, |pitch| and |roll| in degrees.
	MaxHeadAngle    float64
	MinEyesOpen     float64
	MinMouthClosed  float64
	MinQualityScore float64

	// MinSharpBytes is a file-size proxy for blur; strictly greater passes.
	MinSharpBytes uint

	// DPI converts pixels to millimetres for the size hint.
	DPI float64
}

// DefaultPolicy returns the lenient 12-criterion thresholds.
func DefaultPolicy() Policy {
	return Policy{
		ComplianceThreshold: 75,
		CloseBand:           15,
		MinWidth:            200,
		MinHeight:           250,
		TargetMinWidth:      400,
		TargetMaxWidth:      500,
		TargetMinHeight:     450,
		TargetMaxHeight:     550,
		MinPixels:           50000,
		MaxCenterOffset:     0.30,
		MinFaceCoverage:     0.30,
		MaxFaceCoverage:     0.95,
		MaxHeadAngle:        10,
		MinEyesOpen:         0.5,
		MinMouthClosed:      0.5,
		MinQualityScore:     0.5,
		MinSharpBytes:       30000,
		DPI:                 300,
	}
}
