// Package viewer navigates a fixed catalog of topics: a catalog state
// listing every title and a detail state showing one topic's text.
package viewer

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownTopic is returned when a selection matches no topic.
var ErrUnknownTopic = errors.New("unknown topic")

// State is the current view of a Viewer.
type State int

const (
	StateCatalog State = iota
	StateDetail
)

func (s State) String() string {
	switch s {
	case StateCatalog:
		return "catalog"
	case StateDetail:
		return "detail"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// View is a snapshot of what should be displayed.
type View struct {
	State   State
	Heading string
	Titles  []string // catalog only
	Topic   Topic    // detail only
}

// Viewer holds the navigation state. The zero value is not usable; call New.
type Viewer struct {
	topics  []Topic
	keys    []string
	state   State
	current int
}

// New returns a viewer over topics, starting in the catalog state.
func New(topics []Topic) *Viewer {
	v := &Viewer{topics: slices.Clone(topics)}
	for _, t := range v.topics {
		v.keys = append(v.keys, foldKey(t.Title))
	}
	return v
}

// Topics returns the catalog in display order.
func (v *Viewer) Topics() []Topic {
	return slices.Clone(v.topics)
}

// Select switches to the detail state of the topic titled title. Matching
// ignores case, surrounding space, and Unicode normalisation form.
func (v *Viewer) Select(title string) error {
	i := slices.Index(v.keys, foldKey(title))
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTopic, title)
	}
	v.state, v.current = StateDetail, i
	return nil
}

// SelectIndex switches to the detail state of the i-th topic (0-based).
func (v *Viewer) SelectIndex(i int) error {
	if i < 0 || i >= len(v.topics) {
		return fmt.Errorf("%w: index %d of %d", ErrUnknownTopic, i, len(v.topics))
	}
	v.state, v.current = StateDetail, i
	return nil
}

// Back returns to the catalog. It is a no-op in the catalog state.
func (v *Viewer) Back() {
	v.state = StateCatalog
}

// Current returns the selected topic in the detail state.
func (v *Viewer) Current() (Topic, bool) {
	if v.state != StateDetail {
		return Topic{}, false
	}
	return v.topics[v.current], true
}

// View returns what the current state displays.
func (v *Viewer) View() View {
	if t, ok := v.Current(); ok {
		return View{State: StateDetail, Heading: Heading, Topic: t}
	}
	titles := make([]string, len(v.topics))
	for i, t := range v.topics {
		titles[i] = t.Title
	}
	return View{State: StateCatalog, Heading: Heading, Titles: titles}
}

// foldKey makes titles comparable regardless of case and of composed versus
// decomposed accents. Casers are stateful, so one is made per call.
func foldKey(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return norm.NFC.String(cases.Fold().String(s))
}
