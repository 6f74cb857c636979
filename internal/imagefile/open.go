// Package imagefile reads source images from disk and writes slices back
// with format-specific save parameters.
package imagefile

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/therealolds/Tai/internal/iccprofile"
	"github.com/therealolds/Tai/internal/ir"
	"github.com/therealolds/Tai/internal/jpeg"
)

// Sniff reports the registered format name of data ("jpeg", "png", "webp",
// ...) and its dimensions without decoding pixels.
func Sniff(data []byte) (string, image.Config, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", image.Config{}, fmt.Errorf("unrecognized image data: %w", err)
	}
	return name, cfg, nil
}

// Decode decodes data in any supported format. JPEG goes through libjpeg so
// that the embedded ICC profile and native colour model are kept.
func Decode(data []byte) (image.Image, ir.Format, []byte, error) {
	name, _, err := Sniff(data)
	if err != nil {
		return nil, "", nil, err
	}
	format, err := ir.ParseFormat(name)
	if err != nil {
		return nil, "", nil, err
	}

	if format == ir.JPEG {
		d, err := jpeg.Decode(data)
		if err != nil {
			return nil, "", nil, err
		}
		img, err := d.Image()
		if err != nil {
			return nil, "", nil, err
		}
		if d.ICCErr != nil {
			slog.Warn("dropping incomplete embedded ICC profile", "error", d.ICCErr)
		}
		icc := d.ICC
		if icc != nil {
			if _, err := iccprofile.Parse(icc); err != nil {
				slog.Warn("dropping invalid embedded ICC profile", "error", err)
				icc = nil
			}
		}
		return img, format, icc, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, format, nil, nil
}

// Open reads and decodes the image at path.
func Open(path string) (*ir.SourceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, format, icc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", b.Dx(), b.Dy())
	}
	slog.Debug("source decoded", "path", path, "format", format, "width", b.Dx(), "height", b.Dy(), "icc_bytes", len(icc))

	return &ir.SourceImage{
		Path:   path,
		Format: format,
		Pixels: img,
		ICC:    icc,
	}, nil
}
