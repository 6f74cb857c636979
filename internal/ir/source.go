package ir

import (
	"fmt"
	"image"
	"strings"
)

// Format is one of the raster encodings the slicer can both read and write.
type Format string

const (
	JPEG Format = "JPEG"
	PNG  Format = "PNG"
	GIF  Format = "GIF"
	TIFF Format = "TIFF"
	BMP  Format = "BMP"
)

// Formats lists the supported formats in a stable order.
var Formats = []Format{JPEG, PNG, GIF, TIFF, BMP}

// ParseFormat matches a format name case-insensitively. It accepts the
// names registered with the image package ("jpeg", "png", ...) as well as
// the common "jpg" and "tif" spellings.
func ParseFormat(name string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "JPEG", "JPG":
		return JPEG, nil
	case "PNG":
		return PNG, nil
	case "GIF":
		return GIF, nil
	case "TIFF", "TIF":
		return TIFF, nil
	case "BMP":
		return BMP, nil
	default:
		return "", fmt.Errorf("unsupported image format: %q", name)
	}
}

// Ext returns the file extension used for slices, without the dot.
func (f Format) Ext() string {
	return strings.ToLower(string(f))
}

// SourceImage is the intermediate representation passed from the decoder to
// the slicer. Pixels is only ever read and cropped.
type SourceImage struct {
	Path   string
	Format Format
	Pixels image.Image
	ICC    []byte // embedded ICC profile, nil if absent
}

// Width returns the pixel width of the source.
func (s *SourceImage) Width() int {
	return s.Pixels.Bounds().Dx()
}

// Height returns the pixel height of the source.
func (s *SourceImage) Height() int {
	return s.Pixels.Bounds().Dy()
}
