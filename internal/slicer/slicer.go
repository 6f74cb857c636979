// Package slicer cuts an image into k full-height vertical strips and writes
// each strip next to the others as {base}_part{N}.{ext}.
package slicer

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/therealolds/Tai/internal/imagefile"
	"github.com/therealolds/Tai/internal/ir"
)

var (
	// ErrInvalidCount is returned for a slice count below one.
	ErrInvalidCount = errors.New("slice count must be at least 1")
	// ErrTooManySlices is returned when k exceeds the image width, which
	// would leave every slice but the last zero pixels wide.
	ErrTooManySlices = errors.New("slice count exceeds image width")
)

// Extent is the half-open column range [Left, Right) of one slice.
type Extent struct {
	Left, Right int
}

// Width returns the number of columns in the extent.
func (e Extent) Width() int {
	return e.Right - e.Left
}

// Extents splits [0, width) into k ranges of floor(width/k) columns, with the
// last range running to width so it absorbs the remainder. For k > width
// all but the last range are empty. It returns nil for k < 1.
func Extents(width, k int) []Extent {
	if k < 1 {
		return nil
	}
	step := width / k
	out := make([]Extent, k)
	for i := range out {
		out[i] = Extent{Left: i * step, Right: (i + 1) * step}
	}
	out[k-1].Right = width
	return out
}

// PartName returns the output file name of the 1-based slice index for a
// source path: the base name without directory or extension, "_part", the
// index, and the lowercase format name.
func PartName(sourcePath string, index int, format ir.Format) string {
	base := filepath.Base(sourcePath)
	// A leading dot starts a hidden name, not an extension.
	if ext := filepath.Ext(base); ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return fmt.Sprintf("%s_part%d.%s", base, index, format.Ext())
}

// SaveError reports a slice that could not be encoded or written.
type SaveError struct {
	Index int
	Path  string
	Err   error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("saving part %d to %s: %v", e.Index, e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Slice returns a sequence that, when ranged over, writes the k slices of src
// into outputDir one at a time, yielding a Saved event after each write and a
// final Done event. Validation and write failures are yielded as the error of
// a single final pair; slices already written stay on disk. Ranging again
// repeats the whole operation.
func Slice(src *ir.SourceImage, outputDir string, k int) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		if k < 1 {
			yield(Event{}, fmt.Errorf("%w: got %d", ErrInvalidCount, k))
			return
		}
		width, height := src.Width(), src.Height()
		if k > width {
			yield(Event{}, fmt.Errorf("%w: %d slices for %d columns", ErrTooManySlices, k, width))
			return
		}
		params, err := imagefile.ParamsFor(string(src.Format))
		if err != nil {
			yield(Event{}, err)
			return
		}
		cropper, ok := src.Pixels.(subImager)
		if !ok {
			yield(Event{}, fmt.Errorf("image type %T cannot be cropped", src.Pixels))
			return
		}

		origin := src.Pixels.Bounds().Min
		for i, ext := range Extents(width, k) {
			index := i + 1
			rect := image.Rect(ext.Left, 0, ext.Right, height).Add(origin)
			path := filepath.Join(outputDir, PartName(src.Path, index, src.Format))

			if err := imagefile.Save(path, cropper.SubImage(rect), params, src.ICC); err != nil {
				yield(Event{}, &SaveError{Index: index, Path: path, Err: err})
				return
			}
			slog.Debug("slice saved", "index", index, "left", ext.Left, "right", ext.Right, "path", path)
			if !yield(Saved(index, path), nil) {
				return
			}
		}
		yield(Done(k), nil)
	}
}
