package catalog

import "github.com/meaigood001/panda-quantflow/pkg/domain"

// Node is one entry of the rendered catalog tree: either a Group or a Leaf.
type Node interface {
	node()
}

// Group is an interior tree node. All descriptors sharing a group path
// prefix are merged under a single Group per path segment.
type Group struct {
	Name     string `json:"name"`
	Children []Node `json:"children"`
}

func (Group) node() {}

// Leaf wraps a descriptor at its position in the tree. It serializes flat,
// exposing the descriptor fields directly.
type Leaf struct {
	domain.Descriptor
}

func (Leaf) node() {}
