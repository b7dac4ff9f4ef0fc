package hierarchy

import "sort"

// TreeNode wraps a page with its ordered children. Nodes are rebuilt on every
// projection and never mutated afterwards.
type TreeNode struct {
	Page     Page       `json:"page"`
	Children []TreeNode `json:"children"`
	Expanded bool       `json:"expanded"`
}

// HasChildren reports whether the node has at least one child.
func (n TreeNode) HasChildren() bool { return len(n.Children) > 0 }

// Project builds the page forest from a flat page list.
//
// Roots are pages without a parent and pages whose parent is not part of the
// input. Siblings are ordered by SortOrder; equal values keep input order.
// Every page id is emitted at most once. Pages that sit on a parent cycle are
// unreachable from any root and are left out; Unreachable reports them.
func Project(pages []Page, expanded ExpansionSet) []TreeNode {
	idx := index(pages)

	var roots []Page
	groups := make(map[string][]Page)
	for i, p := range pages {
		if idx[p.ID] != i {
			continue // duplicate id, first occurrence wins
		}
		key := p.parentKey()
		if _, ok := idx[key]; p.ParentID == nil || !ok {
			roots = append(roots, p)
			continue
		}
		groups[key] = append(groups[key], p)
	}

	visited := make(map[string]bool, len(idx))
	var build func(group []Page) []TreeNode
	build = func(group []Page) []TreeNode {
		sortSiblings(group)
		nodes := make([]TreeNode, 0, len(group))
		for _, p := range group {
			if visited[p.ID] {
				continue
			}
			visited[p.ID] = true
			nodes = append(nodes, TreeNode{
				Page:     p,
				Children: build(groups[p.ID]),
				Expanded: expanded.Has(p.ID),
			})
		}
		return nodes
	}

	return build(roots)
}

// Unreachable returns the ids of pages that Project cannot place under any
// root, in input order. For well-formed input the result is empty.
func Unreachable(pages []Page) []string {
	placed := make(map[string]bool, len(pages))
	var walk func(nodes []TreeNode)
	walk = func(nodes []TreeNode) {
		for _, n := range nodes {
			placed[n.Page.ID] = true
			walk(n.Children)
		}
	}
	walk(Project(pages, nil))

	var out []string
	seen := make(map[string]bool)
	for _, p := range pages {
		if placed[p.ID] || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p.ID)
	}
	return out
}

// Children returns the direct children of id, ordered like siblings in the tree.
func Children(pages []Page, id string) []Page {
	var out []Page
	for _, p := range pages {
		if p.ParentID != nil && *p.ParentID == id && p.ID != id {
			out = append(out, p)
		}
	}
	sortSiblings(out)
	return out
}

// Find returns the first page with the given id.
func Find(pages []Page, id string) (Page, bool) {
	for _, p := range pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

// Row is one visible line of the rendered tree.
type Row struct {
	Node  TreeNode
	Depth int
}

// Visible flattens the forest into the rows a tree view shows: every root,
// and the children of expanded nodes only.
func Visible(forest []TreeNode) []Row {
	var rows []Row
	var walk func(nodes []TreeNode, depth int)
	walk = func(nodes []TreeNode, depth int) {
		for _, n := range nodes {
			rows = append(rows, Row{Node: n, Depth: depth})
			if n.Expanded {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(forest, 0)
	return rows
}

// MoveTargets lists the pages that id may be moved under: every page except
// itself and its descendants. Moving to the root is always allowed and is not
// part of the list.
func MoveTargets(pages []Page, id string) []Page {
	excluded := descendants(pages, id)
	excluded[id] = true

	var out []Page
	for _, p := range pages {
		if !excluded[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// descendants collects every id below id by parent reference.
func descendants(pages []Page, id string) map[string]bool {
	children := make(map[string][]string)
	for _, p := range pages {
		if p.ParentID != nil {
			children[*p.ParentID] = append(children[*p.ParentID], p.ID)
		}
	}

	out := make(map[string]bool)
	queue := append([]string(nil), children[id]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if out[cur] || cur == id {
			continue
		}
		out[cur] = true
		queue = append(queue, children[cur]...)
	}
	return out
}

func sortSiblings(group []Page) {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].SortOrder < group[j].SortOrder
	})
}
