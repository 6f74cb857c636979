package slicer

import "fmt"

// EventKind distinguishes the events of a slicing run.
type EventKind int

const (
	KindSaved EventKind = iota + 1
	KindDone
)

// Event is one step of a slicing run: either a slice written to disk
// (KindSaved, with Index and Path) or the end of the run (KindDone, with
// Count).
type Event struct {
	Kind  EventKind
	Index int
	Path  string
	Count int
}

// Saved returns the event for slice index written to path.
func Saved(index int, path string) Event {
	return Event{Kind: KindSaved, Index: index, Path: path}
}

// Done returns the summary event for count slices.
func Done(count int) Event {
	return Event{Kind: KindDone, Count: count}
}

// String renders the event as a log line.
func (e Event) String() string {
	switch e.Kind {
	case KindSaved:
		return "Saved: " + e.Path
	case KindDone:
		return fmt.Sprintf("Image split into %d parts.", e.Count)
	default:
		return ""
	}
}
