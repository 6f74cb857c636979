// Package testutil builds image fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/therealolds/Tai/internal/ir"
	"github.com/therealolds/Tai/internal/jpeg"
)

// Gradient returns an opaque w x h image whose red channel follows x and
// green channel follows y, so every column is distinguishable.
func Gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / max(w-1, 1)), G: uint8(y * 255 / max(h-1, 1)), B: 64, A: 255})
		}
	}
	return img
}

// Encode encodes img as a source fixture. JPEG fixtures use 4:2:0 at
// quality 90 with the given ICC profile; TIFF fixtures are deflate
// compressed. icc is ignored for other formats.
func Encode(t testing.TB, img image.Image, format ir.Format, icc []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case ir.JPEG:
		err = jpeg.EncodeImage(&buf, img, jpeg.EncoderOptions{Quality: 90, Subsampling: jpeg.Subsampling420, ICC: icc})
	case ir.PNG:
		err = png.Encode(&buf, img)
	case ir.GIF:
		err = gif.Encode(&buf, img, nil)
	case ir.TIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	case ir.BMP:
		err = bmp.Encode(&buf, img)
	default:
		t.Fatalf("unsupported fixture format: %s", format)
	}
	if err != nil {
		t.Fatalf("encoding %s fixture: %v", format, err)
	}
	return buf.Bytes()
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// WriteImage encodes img and writes it to dir/name.
func WriteImage(t testing.TB, dir, name string, img image.Image, format ir.Format, icc []byte) string {
	t.Helper()
	return WriteFile(t, dir, name, Encode(t, img, format, icc))
}

// ICCProfile returns a minimal profile of size bytes with a valid sRGB
// display header.
func ICCProfile(size int) []byte {
	data := make([]byte, size)
	binary.BigEndian.PutUint32(data[0:4], uint32(size))
	data[8], data[9] = 4, 0x30
	copy(data[12:16], "mntr")
	copy(data[16:20], "RGB ")
	copy(data[20:24], "XYZ ")
	copy(data[36:40], "acsp")
	for i := 128; i < size; i++ {
		data[i] = byte(i)
	}
	return data
}

// ReadDir returns the sorted file names in dir.
func ReadDir(t testing.TB, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names
}

// TIFFCompression returns the Compression tag (259) of the first IFD of a
// TIFF file, or 0 if the tag is absent.
func TIFFCompression(t testing.TB, data []byte) uint16 {
	t.Helper()
	if len(data) < 8 {
		t.Fatalf("TIFF too short: %d bytes", len(data))
	}
	var order binary.ByteOrder
	switch string(data[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		t.Fatalf("bad TIFF byte order %q", data[:2])
	}
	ifd := int(order.Uint32(data[4:8]))
	if ifd+2 > len(data) {
		t.Fatalf("IFD offset %d out of range", ifd)
	}
	n := int(order.Uint16(data[ifd : ifd+2]))
	for i := range n {
		entry := data[ifd+2+12*i:]
		if order.Uint16(entry[0:2]) == 259 {
			return order.Uint16(entry[8:10])
		}
	}
	return 0
}

// InsertAPP2 returns a copy of jpegData with an APP2 segment carrying
// payload placed right after SOI.
func InsertAPP2(jpegData, payload []byte) []byte {
	n := len(payload) + 2
	out := append([]byte{}, jpegData[:2]...)
	out = append(out, 0xFF, 0xE2, byte(n>>8), byte(n))
	out = append(out, payload...)
	return append(out, jpegData[2:]...)
}
