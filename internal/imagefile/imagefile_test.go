package imagefile_test

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/tiff"

	"github.com/therealolds/Tai/internal/imagefile"
	"github.com/therealolds/Tai/internal/ir"
	"github.com/therealolds/Tai/internal/jpeg"
	"github.com/therealolds/Tai/internal/testutil"
)

func TestParamsFor(t *testing.T) {
	tests := []struct {
		name string
		want imagefile.SaveParams
	}{
		{"JPEG", imagefile.SaveParams{Format: ir.JPEG, JPEG: &jpeg.EncoderOptions{Quality: 100, Subsampling: jpeg.Subsampling444}}},
		{"jpeg", imagefile.SaveParams{Format: ir.JPEG, JPEG: &jpeg.EncoderOptions{Quality: 100, Subsampling: jpeg.Subsampling444}}},
		{"Tiff", imagefile.SaveParams{Format: ir.TIFF, TIFF: &tiff.Options{Compression: tiff.Uncompressed}}},
		{"png", imagefile.SaveParams{Format: ir.PNG}},
		{"GIF", imagefile.SaveParams{Format: ir.GIF}},
		{"bmp", imagefile.SaveParams{Format: ir.BMP}},
	}
	for _, tt := range tests {
		got, err := imagefile.ParamsFor(tt.name)
		if err != nil {
			t.Errorf("ParamsFor(%q): %v", tt.name, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParamsFor(%q) mismatch (-want +got):\n%s", tt.name, diff)
		}
	}

	if _, err := imagefile.ParamsFor("webp"); err == nil {
		t.Error("expected error for webp")
	}
}

func TestOpenEachFormat(t *testing.T) {
	dir := t.TempDir()
	for _, format := range ir.Formats {
		t.Run(string(format), func(t *testing.T) {
			path := testutil.WriteImage(t, dir, "in."+format.Ext(), testutil.Gradient(6, 5), format, nil)
			src, err := imagefile.Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if src.Format != format {
				t.Errorf("format = %s, want %s", src.Format, format)
			}
			if src.Width() != 6 || src.Height() != 5 {
				t.Errorf("size = %dx%d, want 6x5", src.Width(), src.Height())
			}
			if src.Path != path {
				t.Errorf("path = %q, want %q", src.Path, path)
			}
		})
	}
}

func TestOpenKeepsValidICCOnly(t *testing.T) {
	dir := t.TempDir()
	profile := testutil.ICCProfile(300)
	good := testutil.WriteImage(t, dir, "good.jpg", testutil.Gradient(4, 4), ir.JPEG, profile)
	bad := testutil.WriteImage(t, dir, "bad.jpg", testutil.Gradient(4, 4), ir.JPEG, []byte("definitely not an icc profile"))

	src, err := imagefile.Open(good)
	if err != nil {
		t.Fatalf("Open(good): %v", err)
	}
	if !bytes.Equal(src.ICC, profile) {
		t.Error("valid ICC profile was not kept")
	}

	src, err = imagefile.Open(bad)
	if err != nil {
		t.Fatalf("Open(bad): %v", err)
	}
	if src.ICC != nil {
		t.Errorf("invalid ICC profile kept (%d bytes)", len(src.ICC))
	}
}

func TestOpenDropsIncompleteICCChunks(t *testing.T) {
	jpg := testutil.Encode(t, testutil.Gradient(12, 4), ir.JPEG, nil)
	chunk := append([]byte("ICC_PROFILE\x00"), 1, 2)
	chunk = append(chunk, testutil.ICCProfile(200)[:100]...)
	path := testutil.WriteFile(t, t.TempDir(), "half.jpg", testutil.InsertAPP2(jpg, chunk))

	src, err := imagefile.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if src.ICC != nil {
		t.Errorf("kept %d bytes of a 1-of-2 profile", len(src.ICC))
	}
	if src.Width() != 12 || src.Height() != 4 {
		t.Errorf("size = %dx%d, want 12x4", src.Width(), src.Height())
	}
}

func TestOpenFailures(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"missing": filepath.Join(dir, "nope.png"),
		"garbage": testutil.WriteFile(t, dir, "garbage.png", []byte("this is not an image")),
		"truncated": testutil.WriteFile(t, dir, "cut.png",
			testutil.Encode(t, testutil.Gradient(8, 8), ir.PNG, nil)[:40]),
		"directory": dir,
	}
	for name, path := range tests {
		if _, err := imagefile.Open(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(40 * i)
	}

	for _, format := range []ir.Format{ir.PNG, ir.TIFF, ir.BMP} {
		p, err := imagefile.ParamsFor(string(format))
		if err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, "gray."+format.Ext())
		if err := imagefile.Save(path, img, p, nil); err != nil {
			t.Fatalf("Save(%s): %v", format, err)
		}
		back, err := imagefile.Open(path)
		if err != nil {
			t.Fatalf("Open(%s): %v", format, err)
		}
		for i := range img.Pix {
			x, y := i%3, i/3
			g := color.GrayModel.Convert(back.Pixels.At(x, y)).(color.Gray)
			if g.Y != img.Pix[i] {
				t.Errorf("%s pixel (%d,%d) = %d, want %d", format, x, y, g.Y, img.Pix[i])
			}
		}
	}
}

func TestSaveTIFFSubImages(t *testing.T) {
	dir := t.TempDir()
	p, err := imagefile.ParamsFor("tiff")
	if err != nil {
		t.Fatal(err)
	}
	gray := image.NewGray(image.Rect(0, 0, 9, 3))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i * 7)
	}
	crops := map[string]image.Image{
		"rgba": testutil.Gradient(9, 3).SubImage(image.Rect(6, 0, 9, 3)),
		"gray": gray.SubImage(image.Rect(3, 1, 9, 3)),
		"cmyk": image.NewCMYK(image.Rect(0, 0, 9, 3)).SubImage(image.Rect(4, 0, 9, 3)),
	}
	for name, crop := range crops {
		path := filepath.Join(dir, name+".tiff")
		if err := imagefile.Save(path, crop, p, nil); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		back, err := imagefile.Open(path)
		if err != nil {
			t.Fatalf("%s: Open: %v", name, err)
		}
		cb, bb := crop.Bounds(), back.Pixels.Bounds()
		if bb.Dx() != cb.Dx() || bb.Dy() != cb.Dy() {
			t.Fatalf("%s: size = %dx%d, want %dx%d", name, bb.Dx(), bb.Dy(), cb.Dx(), cb.Dy())
		}
		for y := range cb.Dy() {
			for x := range cb.Dx() {
				want := color.RGBAModel.Convert(crop.At(cb.Min.X+x, cb.Min.Y+y))
				got := color.RGBAModel.Convert(back.Pixels.At(bb.Min.X+x, bb.Min.Y+y))
				if got != want {
					t.Fatalf("%s: pixel (%d,%d) = %v, want %v", name, x, y, got, want)
				}
			}
		}
	}
}

func TestSaveEncodeFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.jpeg")
	p, _ := imagefile.ParamsFor("jpeg")

	empty := image.NewRGBA(image.Rect(0, 0, 0, 4))
	if err := imagefile.Save(path, empty, p, nil); err == nil {
		t.Fatal("expected error encoding an empty image")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file exists after failed encode: %v", err)
	}
}

func TestSniff(t *testing.T) {
	data := testutil.Encode(t, testutil.Gradient(5, 3), ir.PNG, nil)
	name, cfg, err := imagefile.Sniff(data)
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if name != "png" || cfg.Width != 5 || cfg.Height != 3 {
		t.Errorf("Sniff = %s %dx%d", name, cfg.Width, cfg.Height)
	}
}
