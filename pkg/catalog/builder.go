package catalog

import (
	"sort"

	"github.com/meaigood001/panda-quantflow/pkg/domain"
)

// Build assembles a flat descriptor set into the nested group tree shown in
// the editor palette.
//
// Descriptors are inserted into a trie keyed by group-path segments, then
// every level is rendered with groups first (sorted by name) followed by
// leaves (sorted by display name, identity as tiebreak). Sorting at every
// level makes the result deterministic regardless of input order.
func Build(descriptors []domain.Descriptor) []Node {
	root := newTrie()
	for _, d := range descriptors {
		root.insert(d.GroupPath, d)
	}
	return root.render()
}

type trieNode struct {
	groups map[string]*trieNode
	leaves []domain.Descriptor
}

func newTrie() *trieNode {
	return &trieNode{groups: make(map[string]*trieNode)}
}

func (t *trieNode) insert(path []string, d domain.Descriptor) {
	if len(path) == 0 {
		t.leaves = append(t.leaves, d)
		return
	}
	child, ok := t.groups[path[0]]
	if !ok {
		child = newTrie()
		t.groups[path[0]] = child
	}
	child.insert(path[1:], d)
}

func (t *trieNode) render() []Node {
	names := make([]string, 0, len(t.groups))
	for name := range t.groups {
		names = append(names, name)
	}
	sort.Strings(names)

	children := make([]Node, 0, len(names)+len(t.leaves))
	for _, name := range names {
		children = append(children, Group{
			Name:     name,
			Children: t.groups[name].render(),
		})
	}

	leaves := make([]domain.Descriptor, len(t.leaves))
	copy(leaves, t.leaves)
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].DisplayName != leaves[j].DisplayName {
			return leaves[i].DisplayName < leaves[j].DisplayName
		}
		return leaves[i].Identity < leaves[j].Identity
	})
	for _, d := range leaves {
		children = append(children, Leaf{d})
	}

	return children
}
