package hierarchy

// UnionFind implements union-find with path compression and union by rank
type UnionFind struct {
	parent map[string]string
	rank   map[string]int
	size   map[string]int
}

// NewUnionFind creates a new UnionFind where each element is its own component
func NewUnionFind(ids []string) *UnionFind {
	uf := &UnionFind{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
		size:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
		uf.size[id] = 1
	}
	return uf
}

// Find returns the root of the component containing id, with path compression
func (uf *UnionFind) Find(id string) string {
	parent, ok := uf.parent[id]
	if !ok {
		return id
	}
	if parent != id {
		root := uf.Find(parent)
		uf.parent[id] = root
		return root
	}
	return id
}

// Union merges the components containing a and b. Returns false when they
// were already joined, which for parent links means a cycle was closed.
func (uf *UnionFind) Union(a, b string) bool {
	rootA := uf.Find(a)
	rootB := uf.Find(b)
	if rootA == rootB {
		return false
	}

	if uf.rank[rootA] < uf.rank[rootB] {
		rootA, rootB = rootB, rootA
	}
	uf.parent[rootB] = rootA
	uf.size[rootA] += uf.size[rootB]
	if uf.rank[rootA] == uf.rank[rootB] {
		uf.rank[rootA]++
	}
	return true
}

// Size returns the number of elements in id's component.
func (uf *UnionFind) Size(id string) int {
	return uf.size[uf.Find(id)]
}
