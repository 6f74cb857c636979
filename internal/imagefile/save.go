package imagefile

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/therealolds/Tai/internal/ir"
	"github.com/therealolds/Tai/internal/jpeg"
)

// SaveParams are the encoder settings used for one output format. Only the
// field matching Format is set; a nil field means encoder defaults.
type SaveParams struct {
	Format ir.Format
	JPEG   *jpeg.EncoderOptions
	TIFF   *tiff.Options
}

// ParamsFor returns the save parameters for a format name, matched
// case-insensitively. JPEG is written at quality 100 without chroma
// subsampling, TIFF without compression, everything else with defaults.
func ParamsFor(format string) (SaveParams, error) {
	f, err := ir.ParseFormat(format)
	if err != nil {
		return SaveParams{}, err
	}
	p := SaveParams{Format: f}
	switch f {
	case ir.JPEG:
		p.JPEG = &jpeg.EncoderOptions{Quality: 100, Subsampling: jpeg.Subsampling444}
	case ir.TIFF:
		p.TIFF = &tiff.Options{Compression: tiff.Uncompressed}
	}
	return p, nil
}

// Encode writes img to w. icc is embedded when the format supports it
// (JPEG only).
func Encode(w io.Writer, img image.Image, p SaveParams, icc []byte) error {
	switch p.Format {
	case ir.JPEG:
		var opts jpeg.EncoderOptions
		if p.JPEG != nil {
			opts = *p.JPEG
		}
		opts.ICC = icc
		return jpeg.EncodeImage(w, img, opts)
	case ir.PNG:
		return png.Encode(w, img)
	case ir.GIF:
		return gif.Encode(w, img, nil)
	case ir.TIFF:
		return tiff.Encode(w, repack(img), p.TIFF)
	case ir.BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("no encoder for format %q", p.Format)
	}
}

// Save encodes img and writes it to path, replacing any existing file.
// Nothing is written if encoding fails.
func Save(path string, img image.Image, p SaveParams, icc []byte) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, p, icc); err != nil {
		return fmt.Errorf("encoding %s: %w", p.Format, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// repack copies img into a new image of the same type with its origin at
// (0,0) and rows packed at the minimum stride. The TIFF encoder walks Pix one
// full stride per row, which overruns the tail of a sub-image.
func repack(img image.Image) image.Image {
	r := image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	var dst draw.Image
	switch m := img.(type) {
	case *image.Gray:
		dst = image.NewGray(r)
	case *image.Gray16:
		dst = image.NewGray16(r)
	case *image.Paletted:
		dst = image.NewPaletted(r, m.Palette)
	case *image.RGBA:
		dst = image.NewRGBA(r)
	case *image.RGBA64:
		dst = image.NewRGBA64(r)
	case *image.NRGBA:
		dst = image.NewNRGBA(r)
	case *image.NRGBA64:
		dst = image.NewNRGBA64(r)
	case *image.CMYK:
		dst = image.NewCMYK(r)
	default:
		dst = image.NewRGBA64(r)
	}
	draw.Draw(dst, r, img, img.Bounds().Min, draw.Src)
	return dst
}
