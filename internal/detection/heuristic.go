package detection

import "github.com/saturnino-fabrica-de-software/icaocheck/internal/imagemeta"

// Portrait heuristic bounds, applied only when the backend is unreachable.
const (
	portraitMinAspect   = 1.0 // height / width
	portraitMaxAspect   = 2.5
	portraitMinWidth    = 200
	portraitMinHeight   = 300
	portraitMinByteSize = 20000
)

// LooksLikePortrait reports whether header metadata alone is consistent with a
// single-person portrait photo.
func LooksLikePortrait(meta imagemeta.Metadata) bool {
	if !meta.HasDimensions() {
		return false
	}

	aspect := float64(meta.Height) / float64(meta.Width)

	return aspect >= portraitMinAspect &&
		aspect <= portraitMaxAspect &&
		meta.Width >= portraitMinWidth &&
		meta.Height >= portraitMinHeight &&
		meta.ByteSize > portraitMinByteSize
}
