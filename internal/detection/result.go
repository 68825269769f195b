// Package detection calls a face-detection backend once per image and tags the
// outcome with its provenance.
package detection

import "github.com/saturnino-fabrica-de-software/icaocheck/internal/provider"

// Provenance names where a Result came from.
type Provenance string

const (
	ProvenanceDetected     Provenance = "detected"
	ProvenanceUnavailable  Provenance = "unavailable"
	ProvenanceInconclusive Provenance = "inconclusive"
)

// Result is one of Detected, Unavailable or Inconclusive. The set is closed:
// consumers type-switch over the three variants.
type Result interface {
	Provenance() Provenance
	sealed()
}

// Detected means the backend answered with a parseable (possibly empty) list.
type Detected struct {
	Faces []provider.FaceBox
}

// Unavailable means the backend failed and the image does not look like a
// single portrait.
type Unavailable struct {
	Reason error
}

// Inconclusive means the backend failed but the local heuristic judges the
// image plausibly a single portrait. It never carries a face location.
type Inconclusive struct {
	Reason error
}

func (Detected) Provenance() Provenance     { return ProvenanceDetected }
func (Unavailable) Provenance() Provenance  { return ProvenanceUnavailable }
func (Inconclusive) Provenance() Provenance { return ProvenanceInconclusive }

func (Detected) sealed()     {}
func (Unavailable) sealed()  {}
func (Inconclusive) sealed() {}
