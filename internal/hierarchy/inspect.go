package hierarchy

import (
	"math"
	"sort"
)

// DanglingParent is a page whose parent id does not resolve within the set.
type DanglingParent struct {
	PageID   string `json:"page_id"`
	Title    string `json:"title"`
	ParentID string `json:"parent_id"`
}

// Report summarises the structural state of a page set.
type Report struct {
	TotalPages     int              `json:"total_pages"`
	PublishedPages int              `json:"published_pages"`
	PrivatePages   int              `json:"private_pages"`
	Roots          int              `json:"roots"`
	MaxDepth       int              `json:"max_depth"`
	Dangling       []DanglingParent `json:"dangling_parents"`
	Cycles         [][]string       `json:"cycles"`
	DuplicateIDs   []string         `json:"duplicate_ids"`
	HealthScore    float64          `json:"health_score"`
}

// Inspect checks a page set for the conditions the projector has to work
// around: dangling parents, parent cycles and duplicate ids.
func Inspect(pages []Page) *Report {
	r := &Report{
		Dangling:     []DanglingParent{},
		Cycles:       [][]string{},
		DuplicateIDs: []string{},
	}

	byID := make(map[string]Page, len(pages))
	var ids []string
	for _, p := range pages {
		if _, dup := byID[p.ID]; dup {
			r.DuplicateIDs = append(r.DuplicateIDs, p.ID)
			continue
		}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	r.TotalPages = len(ids)

	// Link each page to its parent. With at most one parent per page, a union
	// that finds both ends already joined closes a cycle.
	uf := NewUnionFind(ids)
	var closing []string
	for _, id := range ids {
		p := byID[id]
		if IsPrivate(p) {
			r.PrivatePages++
		} else {
			r.PublishedPages++
		}
		if p.ParentID == nil {
			r.Roots++
			continue
		}
		if _, ok := byID[*p.ParentID]; !ok {
			r.Roots++
			r.Dangling = append(r.Dangling, DanglingParent{PageID: p.ID, Title: p.Title, ParentID: *p.ParentID})
			continue
		}
		if !uf.Union(p.ID, *p.ParentID) {
			closing = append(closing, p.ID)
		}
	}

	for _, start := range closing {
		r.Cycles = append(r.Cycles, cycleFrom(byID, start))
	}

	for _, id := range ids {
		if d, err := Depth(pages, id); err == nil && d > r.MaxDepth {
			r.MaxDepth = d
		}
	}

	r.HealthScore = health(r)
	return r
}

// cycleFrom follows parents from start until it returns to start and
// returns the members sorted.
func cycleFrom(byID map[string]Page, start string) []string {
	members := []string{start}
	cur := byID[start]
	for cur.ParentID != nil && *cur.ParentID != start {
		members = append(members, *cur.ParentID)
		cur = byID[*cur.ParentID]
	}
	sort.Strings(members)
	return members
}

func health(r *Report) float64 {
	if r.TotalPages == 0 {
		return 1
	}
	total := float64(r.TotalPages)

	var inCycles int
	for _, c := range r.Cycles {
		inCycles += len(c)
	}

	dangling := clamp(1.0-math.Min(float64(len(r.Dangling))/total, 0.2)*5.0, 0, 1)
	cycles := clamp(1.0-float64(inCycles)/total, 0, 1)
	if inCycles > 0 {
		cycles = math.Min(cycles, 0.5)
	}
	dups := 1.0
	if len(r.DuplicateIDs) > 0 {
		dups = 0
	}
	return 0.4*cycles + 0.4*dangling + 0.2*dups
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
