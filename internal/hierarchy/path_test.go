package hierarchy

import (
	"errors"
	"slices"
	"testing"
)

func breadcrumbTitles(t *testing.T, pages []Page, id string) []string {
	t.Helper()
	chain, err := Breadcrumb(pages, id)
	if err != nil {
		t.Fatalf("Breadcrumb(%s): %v", id, err)
	}
	out := make([]string, len(chain))
	for i, p := range chain {
		out[i] = p.Title
	}
	return out
}

func TestBreadcrumb(t *testing.T) {
	tests := []struct {
		name  string
		pages []Page
		id    string
		want  []string
	}{
		{
			name: "root to leaf",
			pages: []Page{
				page("c", strPtr("b"), 0, "C"),
				page("a", nil, 0, "A"),
				page("b", strPtr("a"), 0, "B"),
			},
			id:   "c",
			want: []string{"A", "B", "C"},
		},
		{
			name:  "root alone",
			pages: []Page{page("a", nil, 0, "A")},
			id:    "a",
			want:  []string{"A"},
		},
		{
			name: "child among ordered siblings",
			pages: []Page{
				page("1", nil, 0, "Root"),
				page("2", strPtr("1"), 1, "Child B"),
				page("3", strPtr("1"), 0, "Child A"),
			},
			id:   "3",
			want: []string{"Root", "Child A"},
		},
		{
			name: "stops at dangling parent",
			pages: []Page{
				page("2", strPtr("deleted"), 0, "Orphan"),
				page("3", strPtr("2"), 0, "Leaf"),
			},
			id:   "3",
			want: []string{"Orphan", "Leaf"},
		},
		{
			name:  "unknown id",
			pages: []Page{page("1", nil, 0, "Root")},
			id:    "nope",
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := breadcrumbTitles(t, tt.pages, tt.id); !slices.Equal(got, tt.want) {
				t.Errorf("Breadcrumb(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestBreadcrumb_CycleIsMalformed(t *testing.T) {
	pages := []Page{
		page("x", strPtr("y"), 0, "X"),
		page("y", strPtr("x"), 0, "Y"),
	}
	_, err := Breadcrumb(pages, "x")
	if !errors.Is(err, ErrMalformedHierarchy) {
		t.Fatalf("got %v, want ErrMalformedHierarchy", err)
	}

	var mhe *MalformedHierarchyError
	if !errors.As(err, &mhe) {
		t.Fatalf("error %T is not a *MalformedHierarchyError", err)
	}
	if mhe.StartID != "x" || mhe.Bound != 2 {
		t.Errorf("start=%s bound=%d, want x 2", mhe.StartID, mhe.Bound)
	}
}

func TestBreadcrumb_SelfParentIsMalformed(t *testing.T) {
	pages := []Page{page("s", strPtr("s"), 0, "Self")}
	if _, err := Breadcrumb(pages, "s"); !errors.Is(err, ErrMalformedHierarchy) {
		t.Errorf("got %v, want ErrMalformedHierarchy", err)
	}
}

func TestAncestorIDs(t *testing.T) {
	pages := []Page{
		page("a", nil, 0, "A"),
		page("b", strPtr("a"), 0, "B"),
		page("c", strPtr("b"), 0, "C"),
		page("orphan", strPtr("gone"), 0, "Orphan"),
	}

	tests := []struct {
		id   string
		want []string
	}{
		{"c", []string{"b", "a"}},
		{"a", nil},
		{"missing", nil},
		{"orphan", []string{"gone"}},
	}
	for _, tt := range tests {
		got, err := AncestorIDs(pages, tt.id)
		if err != nil {
			t.Errorf("AncestorIDs(%s): %v", tt.id, err)
			continue
		}
		if len(got) != len(tt.want) || (len(got) > 0 && !slices.Equal(got, tt.want)) {
			t.Errorf("AncestorIDs(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestAncestorIDs_CycleTerminates(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"on the cycle", "x"},
		{"below the cycle", "leaf"},
	}
	pages := []Page{
		page("x", strPtr("y"), 0, "X"),
		page("y", strPtr("x"), 0, "Y"),
		page("leaf", strPtr("x"), 0, "Leaf"),
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AncestorIDs(pages, tt.id); !errors.Is(err, ErrMalformedHierarchy) {
				t.Errorf("got %v, want ErrMalformedHierarchy", err)
			}
		})
	}
}

func TestDepth(t *testing.T) {
	pages := []Page{
		page("a", nil, 0, "A"),
		page("b", strPtr("a"), 0, "B"),
	}
	d, err := Depth(pages, "b")
	if err != nil {
		t.Fatalf("Depth: %v", err)
	}
	if d != 1 {
		t.Errorf("depth = %d, want 1", d)
	}
}
