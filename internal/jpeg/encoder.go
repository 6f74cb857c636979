package jpeg

/*
#cgo pkg-config: libjpeg
#include <stdio.h>
#include <stdlib.h>
#include <string.h>
#include <jpeglib.h>
#include <setjmp.h>

typedef struct {
    struct jpeg_error_mgr pub;
    jmp_buf               jmpbuf;
    char                  msg[JMSG_LENGTH_MAX];
} encode_err_mgr;

static void encode_error_exit(j_common_ptr cinfo) {
    encode_err_mgr *e = (encode_err_mgr *)cinfo->err;
    (*(cinfo->err->format_message))(cinfo, e->msg);
    longjmp(e->jmpbuf, 1);
}

typedef struct {
    unsigned char *buf;
    unsigned long  size;
    int            has_error;
    char           error_msg[256];
} encode_result;

// encode_jpeg encodes interleaved gray (1), RGB (3) or CMYK (4) pixels.
// luma_h/luma_v are the sampling factors of the first component; every other
// component is sampled 1x1, so 1/1 means no chroma subsampling.
// icc_markers holds icc_count APP2 payloads back to back, icc_lens their sizes.
static encode_result encode_jpeg(
    const unsigned char *pixels, int width, int height, int components,
    const unsigned int *luma_qtable, const unsigned int *chroma_qtable,
    int luma_h, int luma_v,
    const unsigned char *icc_markers, const unsigned int *icc_lens, int icc_count
) {
    encode_result res;
    memset(&res, 0, sizeof(res));

    struct jpeg_compress_struct cinfo;
    encode_err_mgr jerr;

    cinfo.err = jpeg_std_error(&jerr.pub);
    jerr.pub.error_exit = encode_error_exit;

    if (setjmp(jerr.jmpbuf)) {
        strncpy(res.error_msg, jerr.msg, sizeof(res.error_msg)-1);
        res.has_error = 1;
        jpeg_destroy_compress(&cinfo);
        return res;
    }

    jpeg_create_compress(&cinfo);
    jpeg_mem_dest(&cinfo, &res.buf, &res.size);

    cinfo.image_width = width;
    cinfo.image_height = height;
    cinfo.input_components = components;
    switch (components) {
    case 1:
        cinfo.in_color_space = JCS_GRAYSCALE;
        break;
    case 4:
        cinfo.in_color_space = JCS_CMYK;
        break;
    default:
        cinfo.in_color_space = JCS_RGB;
    }

    jpeg_set_defaults(&cinfo);
    cinfo.optimize_coding = TRUE;

    for (int i = 0; i < cinfo.num_components; i++) {
        cinfo.comp_info[i].h_samp_factor = 1;
        cinfo.comp_info[i].v_samp_factor = 1;
        cinfo.comp_info[i].quant_tbl_no = 0;
    }
    if (cinfo.jpeg_color_space == JCS_YCbCr) {
        cinfo.comp_info[0].h_samp_factor = luma_h;
        cinfo.comp_info[0].v_samp_factor = luma_v;
        cinfo.comp_info[1].quant_tbl_no = 1;
        cinfo.comp_info[2].quant_tbl_no = 1;
    }

    // Pre-scaled tables; jpeg_set_defaults has already allocated both slots.
    for (int t = 0; t < 2; t++) {
        if (cinfo.quant_tbl_ptrs[t] == NULL)
            cinfo.quant_tbl_ptrs[t] = jpeg_alloc_quant_table((j_common_ptr)&cinfo);
        const unsigned int *src = t == 0 ? luma_qtable : chroma_qtable;
        for (int i = 0; i < DCTSIZE2; i++) {
            cinfo.quant_tbl_ptrs[t]->quantval[i] = (UINT16)src[i];
        }
        cinfo.quant_tbl_ptrs[t]->sent_table = FALSE;
    }

    jpeg_start_compress(&cinfo, TRUE);

    const unsigned char *marker = icc_markers;
    for (int i = 0; i < icc_count; i++) {
        jpeg_write_marker(&cinfo, JPEG_APP0 + 2, marker, icc_lens[i]);
        marker += icc_lens[i];
    }

    int row_stride = width * components;
    while (cinfo.next_scanline < cinfo.image_height) {
        const unsigned char *row = pixels + (unsigned long)cinfo.next_scanline * row_stride;
        jpeg_write_scanlines(&cinfo, (JSAMPARRAY)&row, 1);
    }

    jpeg_finish_compress(&cinfo);
    jpeg_destroy_compress(&cinfo);
    return res;
}

static void free_encode_buf(unsigned char *buf) {
    free(buf);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"image"
	"io"
	"unsafe"
)

// Subsampling selects the chroma subsampling of colour JPEGs. The zero value
// keeps full chroma resolution.
type Subsampling int

const (
	Subsampling444 Subsampling = iota
	Subsampling422
	Subsampling420
)

func (s Subsampling) String() string {
	switch s {
	case Subsampling444:
		return "4:4:4"
	case Subsampling422:
		return "4:2:2"
	case Subsampling420:
		return "4:2:0"
	default:
		return fmt.Sprintf("Subsampling(%d)", int(s))
	}
}

// lumaFactors returns the sampling factors of the Y component.
func (s Subsampling) lumaFactors() (h, v int, err error) {
	switch s {
	case Subsampling444:
		return 1, 1, nil
	case Subsampling422:
		return 2, 1, nil
	case Subsampling420:
		return 2, 2, nil
	default:
		return 0, 0, fmt.Errorf("unknown subsampling %d", int(s))
	}
}

// EncoderOptions controls JPEG encoding.
type EncoderOptions struct {
	Quality     int // 1-100, default 85
	Subsampling Subsampling
	ICC         []byte // profile to embed, nil for none
}

// Encode encodes interleaved pixel data with 1 (gray), 3 (RGB) or 4 (CMYK)
// components per pixel.
func Encode(pixels []byte, width, height, components int, opts EncoderOptions) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("cannot encode empty %dx%d image", width, height)
	}
	switch components {
	case 1, 3, 4:
	default:
		return nil, fmt.Errorf("unsupported component count %d", components)
	}
	expectedSize := width * height * components
	if len(pixels) != expectedSize {
		return nil, fmt.Errorf("expected %d pixel bytes, got %d", expectedSize, len(pixels))
	}

	if opts.Quality == 0 {
		opts.Quality = 85
	}
	lumaH, lumaV, err := opts.Subsampling.lumaFactors()
	if err != nil {
		return nil, err
	}

	lumaTable, chromaTable := GenerateQuantTables(opts.Quality)
	var lumaC, chromaC [64]C.uint
	for i := range 64 {
		lumaC[i] = C.uint(lumaTable[i])
		chromaC[i] = C.uint(chromaTable[i])
	}

	var (
		iccBuf   []byte
		iccLens  []C.uint
		iccPtr   *C.uchar
		iccLenPt *C.uint
	)
	if len(opts.ICC) > 0 {
		chunks, err := ChunkICC(opts.ICC)
		if err != nil {
			return nil, err
		}
		for _, c := range chunks {
			iccBuf = append(iccBuf, c...)
			iccLens = append(iccLens, C.uint(len(c)))
		}
		iccPtr = (*C.uchar)(unsafe.Pointer(&iccBuf[0]))
		iccLenPt = &iccLens[0]
	}

	res := C.encode_jpeg(
		(*C.uchar)(unsafe.Pointer(&pixels[0])),
		C.int(width), C.int(height), C.int(components),
		&lumaC[0], &chromaC[0],
		C.int(lumaH), C.int(lumaV),
		iccPtr, iccLenPt, C.int(len(iccLens)),
	)

	if res.has_error != 0 {
		return nil, fmt.Errorf("libjpeg encode: %s", C.GoString(&res.error_msg[0]))
	}

	defer C.free_encode_buf(res.buf)

	return C.GoBytes(unsafe.Pointer(res.buf), C.int(res.size)), nil
}

// EncodeImage encodes img to w. *image.Gray and *image.CMYK keep their
// colour model; anything else is encoded as RGB.
func EncodeImage(w io.Writer, img image.Image, opts EncoderOptions) error {
	if img == nil {
		return errors.New("nil image")
	}
	pixels, components := interleave(img)
	b := img.Bounds()
	data, err := Encode(pixels, b.Dx(), b.Dy(), components, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// interleave packs img into a tightly strided buffer, honouring non-zero
// bounds origins such as those of sub-images.
func interleave(img image.Image) ([]byte, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch m := img.(type) {
	case *image.Gray:
		return packRows(m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y), w, h, 1), 1
	case *image.CMYK:
		return packRows(m.Pix, m.Stride, m.PixOffset(b.Min.X, b.Min.Y), w, h, 4), 4
	case *image.RGBA:
		out := make([]byte, 0, w*h*3)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := m.Pix[m.PixOffset(b.Min.X, y):]
			for x := 0; x < w; x++ {
				out = append(out, row[4*x], row[4*x+1], row[4*x+2])
			}
		}
		return out, 3
	}

	out := make([]byte, 0, w*h*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out = append(out, uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return out, 3
}

func packRows(pix []byte, stride, offset, w, h, bpp int) []byte {
	out := make([]byte, w*h*bpp)
	rowLen := w * bpp
	for y := range h {
		start := offset + y*stride
		copy(out[y*rowLen:(y+1)*rowLen], pix[start:start+rowLen])
	}
	return out
}
