// Package imagemeta reads pixel dimensions straight from PNG and JPEG headers
// without decoding the image.
package imagemeta

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned by Read when the source exceeds the byte limit.
var ErrTooLarge = errors.New("image exceeds size limit")

// Format identifies the container recognised from the magic bytes.
type Format string

const (
	FormatUnknown Format = "unknown"
	FormatPNG     Format = "png"
	FormatJPEG    Format = "jpeg"
)

// Metadata describes an image as far as its header allows.
// Width and Height are zero when the format is not recognised or the header is
// truncated; that is an expected state, not an error.
type Metadata struct {
	Width    uint   `json:"width"`
	Height   uint   `json:"height"`
	ByteSize uint   `json:"byteSize"`
	Format   Format `json:"format"`
}

// HasDimensions reports whether both dimensions were recovered.
func (m Metadata) HasDimensions() bool {
	return m.Width > 0 && m.Height > 0
}

// AspectRatio returns width/height, or 0 when dimensions are unknown.
func (m Metadata) AspectRatio() float64 {
	if !m.HasDimensions() {
		return 0
	}
	return float64(m.Width) / float64(m.Height)
}

// Pixels returns width*height.
func (m Metadata) Pixels() uint64 {
	return uint64(m.Width) * uint64(m.Height)
}

const (
	pngWidthOffset  = 16
	pngHeightOffset = 20
	pngHeaderLen    = 24

	// SOF segment: FF Cx | length(2) | precision(1) | height(2) | width(2)
	sofHeightOffset = 5
	sofWidthOffset  = 7
	sofMinLen       = 9
)

// Extract parses b and never fails.
func Extract(b []byte) Metadata {
	meta := Metadata{
		ByteSize: uint(len(b)),
		Format:   FormatUnknown,
	}

	switch {
	case isPNG(b):
		meta.Format = FormatPNG
		if len(b) >= pngHeaderLen {
			meta.Width = uint(binary.BigEndian.Uint32(b[pngWidthOffset:]))
			meta.Height = uint(binary.BigEndian.Uint32(b[pngHeightOffset:]))
		}
	case isJPEG(b):
		meta.Format = FormatJPEG
		meta.Width, meta.Height = jpegDimensions(b)
	}

	return meta
}

// Read drains r (up to limit bytes when limit > 0) and extracts metadata from
// what was read. Only an I/O failure or an exceeded limit is an error.
func Read(r io.Reader, limit int64) ([]byte, Metadata, error) {
	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}

	b, err := io.ReadAll(src)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("read image: %w", err)
	}
	if limit > 0 && int64(len(b)) > limit {
		return nil, Metadata{}, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}

	return b, Extract(b), nil
}

func isPNG(b []byte) bool {
	return len(b) >= 4 && b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47
}

func isJPEG(b []byte) bool {
	return len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF
}

// jpegDimensions scans from offset 2 for the first baseline (C0) or
// progressive (C2) start-of-frame marker.
func jpegDimensions(b []byte) (width, height uint) {
	for i := 2; i+sofMinLen <= len(b); i++ {
		if b[i] != 0xFF || (b[i+1] != 0xC0 && b[i+1] != 0xC2) {
			continue
		}
		height = uint(binary.BigEndian.Uint16(b[i+sofHeightOffset:]))
		width = uint(binary.BigEndian.Uint16(b[i+sofWidthOffset:]))
		return width, height
	}
	return 0, 0
}
