package jpeg

import (
	"bytes"
	"image"
	"testing"
)

func TestDecodeRoundTripWithICC(t *testing.T) {
	profile := bytes.Repeat([]byte("icc-profile-data"), 100)

	var buf bytes.Buffer
	err := EncodeImage(&buf, gradientRGBA(12, 7), EncoderOptions{Quality: 100, ICC: profile})
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}

	dec, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dec.Width != 12 || dec.Height != 7 {
		t.Errorf("unexpected dimensions: %dx%d", dec.Width, dec.Height)
	}
	if dec.Components != 3 {
		t.Errorf("components = %d, want 3", dec.Components)
	}
	if len(dec.Pixels) != 12*7*3 {
		t.Errorf("expected %d pixel bytes, got %d", 12*7*3, len(dec.Pixels))
	}
	if !bytes.Equal(dec.ICC, profile) {
		t.Errorf("ICC profile not preserved: got %d bytes, want %d", len(dec.ICC), len(profile))
	}
}

func TestDecodeImageTypes(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want string
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 4, 4)), "*image.Gray"},
		{"rgb", gradientRGBA(4, 4), "*image.RGBA"},
		{"cmyk", image.NewCMYK(image.Rect(0, 0, 4, 4)), "*image.CMYK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeImage(&buf, tt.img, EncoderOptions{Quality: 90}); err != nil {
				t.Fatalf("EncodeImage: %v", err)
			}
			dec, err := Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if dec.ICC != nil || dec.ICCErr != nil {
				t.Errorf("unexpected ICC profile of %d bytes (%v)", len(dec.ICC), dec.ICCErr)
			}
			img, err := dec.Image()
			if err != nil {
				t.Fatalf("Image: %v", err)
			}
			if got := typeName(img); got != tt.want {
				t.Errorf("decoded type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodeKeepsPixelsOnIncompleteICC(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, gradientRGBA(12, 4), EncoderOptions{Quality: 90}); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	payload := append([]byte(iccMarkerTag), 1, 2)
	payload = append(payload, bytes.Repeat([]byte{0xAB}, 64)...)
	data := withAPP2(buf.Bytes(), payload)

	dec, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dec.ICC != nil {
		t.Errorf("kept %d bytes of an incomplete profile", len(dec.ICC))
	}
	if dec.ICCErr == nil {
		t.Error("ICCErr not set for a 1-of-2 chunk set")
	}
	if dec.Width != 12 || dec.Height != 4 || len(dec.Pixels) != 12*4*3 {
		t.Errorf("pixels not decoded: %dx%d, %d bytes", dec.Width, dec.Height, len(dec.Pixels))
	}
}

// withAPP2 inserts an APP2 segment carrying payload right after SOI.
func withAPP2(jpegData, payload []byte) []byte {
	n := len(payload) + 2
	seg := append([]byte{0xFF, 0xE2, byte(n >> 8), byte(n)}, payload...)
	out := append([]byte{}, jpegData[:2]...)
	out = append(out, seg...)
	return append(out, jpegData[2:]...)
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("this is not a jpeg")); err == nil {
		t.Fatal("expected error decoding garbage")
	}
	if _, err := Decode(nil); err == nil {
		t.Fatal("expected error decoding empty input")
	}
}

func typeName(img image.Image) string {
	switch img.(type) {
	case *image.Gray:
		return "*image.Gray"
	case *image.RGBA:
		return "*image.RGBA"
	case *image.CMYK:
		return "*image.CMYK"
	default:
		return "other"
	}
}

func TestLibjpegLinkage(t *testing.T) {
	ver := LibjpegVersion()
	if ver == 0 {
		t.Fatal("libjpeg version returned 0")
	}
	t.Logf("libjpeg version: %d", ver)
}
