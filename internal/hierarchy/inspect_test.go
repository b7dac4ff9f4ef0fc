package hierarchy

import (
	"math"
	"reflect"
	"slices"
	"sort"
	"testing"
)

func TestInspect_Empty(t *testing.T) {
	r := Inspect(nil)
	if r.TotalPages != 0 || r.HealthScore != 1.0 || len(r.Cycles) != 0 {
		t.Errorf("empty report = %+v", r)
	}
}

func TestInspect_WellFormed(t *testing.T) {
	pages := []Page{
		page("a", nil, 0, "A"),
		page("b", strPtr("a"), 0, "B"),
		page("c", strPtr("b"), 0, "C"),
		{ID: "d", Title: "D", ScopeID: strPtr("team-1")},
	}

	r := Inspect(pages)
	counts := []struct {
		name      string
		got, want int
	}{
		{"total", r.TotalPages, 4},
		{"published", r.PublishedPages, 3},
		{"private", r.PrivatePages, 1},
		{"roots", r.Roots, 2},
		{"max depth", r.MaxDepth, 2},
		{"dangling", len(r.Dangling), 0},
		{"cycles", len(r.Cycles), 0},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if r.HealthScore != 1.0 {
		t.Errorf("health = %v, want 1.0", r.HealthScore)
	}
}

func TestInspect_DanglingAndCycles(t *testing.T) {
	pages := []Page{
		page("root", nil, 0, "Root"),
		page("orphan", strPtr("gone"), 0, "Orphan"),
		page("x", strPtr("y"), 0, "X"),
		page("y", strPtr("z"), 0, "Y"),
		page("z", strPtr("x"), 0, "Z"),
		page("self", strPtr("self"), 0, "Self"),
		page("below", strPtr("x"), 0, "Below"),
	}

	r := Inspect(pages)
	want := []DanglingParent{{PageID: "orphan", Title: "Orphan", ParentID: "gone"}}
	if !reflect.DeepEqual(r.Dangling, want) {
		t.Errorf("dangling = %+v, want %+v", r.Dangling, want)
	}

	cycles := slices.Clone(r.Cycles)
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	if wantCycles := [][]string{{"self"}, {"x", "y", "z"}}; !reflect.DeepEqual(cycles, wantCycles) {
		t.Errorf("cycles = %v, want %v", r.Cycles, wantCycles)
	}
	if r.Roots != 2 {
		t.Errorf("roots = %d, want 2", r.Roots)
	}
	if r.HealthScore >= 1.0 {
		t.Errorf("health = %v, want below 1.0", r.HealthScore)
	}
}

func TestInspect_DuplicateIDs(t *testing.T) {
	pages := []Page{
		page("a", nil, 0, "A"),
		page("a", nil, 0, "A again"),
	}
	r := Inspect(pages)
	if !slices.Equal(r.DuplicateIDs, []string{"a"}) {
		t.Errorf("duplicates = %v, want [a]", r.DuplicateIDs)
	}
	if r.TotalPages != 1 {
		t.Errorf("total = %d, want 1", r.TotalPages)
	}
	if math.Abs(r.HealthScore-0.8) > 1e-9 {
		t.Errorf("health = %v, want 0.8", r.HealthScore)
	}
}

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind([]string{"a", "b", "c", "d"})
	if !uf.Union("a", "b") || !uf.Union("c", "d") {
		t.Fatal("first unions should merge")
	}
	if uf.Union("b", "a") {
		t.Error("union within one set should report no merge")
	}
	if uf.Find("a") == uf.Find("c") {
		t.Error("a and c should still be apart")
	}
	if !uf.Union("b", "c") {
		t.Fatal("union of two sets should merge")
	}
	if uf.Find("a") != uf.Find("d") {
		t.Error("a and d should share a root")
	}
	if n := uf.Size("a"); n != 4 {
		t.Errorf("size = %d, want 4", n)
	}
}
