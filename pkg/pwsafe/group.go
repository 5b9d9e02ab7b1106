package pwsafe

import "strings"

// GroupNode is one node of the derived group tree, identified by its
// full dot-delimited path. Parent links are navigational only (no
// ownership cycles) — child nodes do not hold a parent pointer; the
// parent path is always derivable as the prefix up to the last dot.
type GroupNode struct {
	Path     string
	children []string // full paths of direct subgroups, first-appearance order
	records  []*Record
}

// Tree is the derived group hierarchy: a path -> node mapping plus the
// top-level (root) paths in first-appearance order.
type Tree struct {
	nodes map[string]*GroupNode
	roots []string // full paths of groups with no dot (top-level)
}

// DeriveTree is a pure function from the current set of records plus a
// set of synthetic (not-yet-populated) group paths to a Tree. It does
// not mutate records. Empty GROUP places a record at the tree root.
// Empty dot segments (e.g. "A..B") are kept as literal empty-string
// path components rather than collapsed (see DESIGN.md).
func DeriveTree(records []*Record, synthetic []string) *Tree {
	t := &Tree{nodes: make(map[string]*GroupNode)}

	ensure := func(path string) *GroupNode {
		if n, ok := t.nodes[path]; ok {
			return n
		}
		n := &GroupNode{Path: path}
		t.nodes[path] = n
		if !strings.Contains(path, ".") {
			t.roots = append(t.roots, path)
		}
		return n
	}

	linkPrefixes := func(path string) {
		if path == "" {
			return
		}
		segs := strings.Split(path, ".")
		for i := range segs {
			full := strings.Join(segs[:i+1], ".")
			ensure(full)
			if i > 0 {
				parent := strings.Join(segs[:i], ".")
				parentNode := t.nodes[parent]
				if !containsStr(parentNode.children, full) {
					parentNode.children = append(parentNode.children, full)
				}
			}
		}
	}

	for _, path := range synthetic {
		linkPrefixes(path)
	}

	for _, r := range records {
		g := r.Group()
		if g == "" {
			continue
		}
		linkPrefixes(g)
	}
	for _, r := range records {
		g := r.Group()
		if node, ok := t.nodes[g]; ok {
			node.records = append(node.records, r)
		}
	}

	return t
}

func containsStr(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Roots returns the top-level group paths, in first-appearance order.
func (t *Tree) Roots() []string {
	return append([]string(nil), t.roots...)
}

// Node returns the node at path, or nil if no such group exists.
func (t *Tree) Node(path string) *GroupNode {
	return t.nodes[path]
}

// Subgroups returns the direct child paths of path.
func (t *Tree) Subgroups(path string) []string {
	n := t.nodes[path]
	if n == nil {
		return nil
	}
	return append([]string(nil), n.children...)
}

// Records returns the records filed directly under path (not recursive).
func (t *Tree) Records(path string) []*Record {
	n := t.nodes[path]
	if n == nil {
		return nil
	}
	return append([]*Record(nil), n.records...)
}

// DeepRecords returns every record under path, recursively.
func (t *Tree) DeepRecords(path string) []*Record {
	n := t.nodes[path]
	if n == nil {
		return nil
	}
	out := append([]*Record(nil), n.records...)
	for _, c := range n.children {
		out = append(out, t.DeepRecords(c)...)
	}
	return out
}
