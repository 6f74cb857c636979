package viewer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalogOrder(t *testing.T) {
	v := New(Modena)
	want := []string{"Mòdna", "Ghirlandèina", "Turtlein", "Ašê balsàmich", "San Zemiàn", "Sandrone"}
	got := v.View()
	if got.State != StateCatalog || got.Heading != "Fatto a Mòdna" {
		t.Fatalf("initial view = %v %q", got.State, got.Heading)
	}
	if diff := cmp.Diff(want, got.Titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectAndBack(t *testing.T) {
	v := New(Modena)
	if _, ok := v.Current(); ok {
		t.Fatal("Current reported a topic in the catalog state")
	}
	if err := v.Select("Turtlein"); err != nil {
		t.Fatal(err)
	}
	view := v.View()
	if view.State != StateDetail || view.Topic.Text != "I turtlein i en na fata ed pasta pina..." {
		t.Errorf("detail view = %+v", view)
	}
	if view.Titles != nil {
		t.Errorf("detail view lists titles: %v", view.Titles)
	}

	v.Back()
	if got := v.View().State; got != StateCatalog {
		t.Errorf("after Back state = %v", got)
	}
	v.Back()
	if got := v.View().State; got != StateCatalog {
		t.Errorf("second Back state = %v", got)
	}
}

func TestSelectFoldsCaseAndNormalisation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mòdna", "Mòdna"},
		{"mo\u0300dna", "Mòdna"}, // combining grave accent
		{"  GHIRLANDÈINA ", "Ghirlandèina"},
		{"ašê balsàmich", "Ašê balsàmich"},
		{"san zemiàn", "San Zemiàn"},
	}
	for _, tt := range tests {
		v := New(Modena)
		if err := v.Select(tt.in); err != nil {
			t.Errorf("Select(%q): %v", tt.in, err)
			continue
		}
		if cur, _ := v.Current(); cur.Title != tt.want {
			t.Errorf("Select(%q) = %q, want %q", tt.in, cur.Title, tt.want)
		}
	}
}

func TestSelectUnknown(t *testing.T) {
	v := New(Modena)
	if err := v.Select("Bologna"); !errors.Is(err, ErrUnknownTopic) {
		t.Errorf("Select(Bologna) = %v, want ErrUnknownTopic", err)
	}
	for _, i := range []int{-1, len(Modena)} {
		if err := v.SelectIndex(i); !errors.Is(err, ErrUnknownTopic) {
			t.Errorf("SelectIndex(%d) = %v, want ErrUnknownTopic", i, err)
		}
	}
	if v.View().State != StateCatalog {
		t.Error("failed selection left the catalog state")
	}
}

func TestEmptyTopic(t *testing.T) {
	v := New(Modena)
	if err := v.SelectIndex(3); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, v.View(), 40); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "Ašê balsàmich\n\n" {
		t.Errorf("rendered %q", got)
	}
}

func TestTopicsIsACopy(t *testing.T) {
	v := New(Modena)
	topics := v.Topics()
	topics[0].Title = "changed"
	if v.Topics()[0].Title != "Mòdna" {
		t.Error("Topics exposed internal state")
	}
}

func TestRenderWraps(t *testing.T) {
	long := strings.Repeat("parola ", 30)
	v := New([]Topic{{Title: "Lungo", Text: long}})
	if err := v.Select("lungo"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, v.View(), 20); err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if n := len([]rune(line)); n > 20 {
			t.Errorf("line %q is %d runes wide", line, n)
		}
	}
}

func TestRenderCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, New(Modena[:2]).View(), 0); err != nil {
		t.Fatal(err)
	}
	want := "Fatto a Mòdna\n\n 1. Mòdna\n 2. Ghirlandèina\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}
