package pipeline

import (
	"fmt"
	"iter"

	"github.com/therealolds/Tai/internal/imagefile"
	"github.com/therealolds/Tai/internal/slicer"
)

// Request describes one slicing job. Parts must be at least 1.
type Request struct {
	SourcePath string
	OutputDir  string
	Parts      int
}

// DecodeError reports a source image that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Cannot open image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Run executes a slicing job: open → decode → slice → encode each part.
// Nothing happens until the returned sequence is ranged over. A source that
// cannot be decoded yields a single *DecodeError and writes no files.
func Run(req Request) iter.Seq2[slicer.Event, error] {
	return func(yield func(slicer.Event, error) bool) {
		src, err := imagefile.Open(req.SourcePath)
		if err != nil {
			yield(slicer.Event{}, &DecodeError{Path: req.SourcePath, Err: err})
			return
		}
		for ev, err := range slicer.Slice(src, req.OutputDir, req.Parts) {
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

// ErrorLine renders err as the single line reported for a failed run.
func ErrorLine(err error) string {
	return "Error: " + err.Error()
}
