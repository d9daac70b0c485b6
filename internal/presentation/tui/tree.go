package tui

import (
	"fmt"
	"strings"

	"github.com/meaigood001/panda-quantflow/pkg/catalog"
)

// TreeMarkdown renders the catalog tree as nested markdown bullet lists.
func TreeMarkdown(nodes []catalog.Node) string {
	var sb strings.Builder
	writeNodes(&sb, nodes, 0)
	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []catalog.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		switch v := n.(type) {
		case catalog.Group:
			fmt.Fprintf(sb, "%s- **%s**\n", indent, v.Name)
			writeNodes(sb, v.Children, depth+1)
		case catalog.Leaf:
			fmt.Fprintf(sb, "%s- %s (`%s`)\n", indent, v.DisplayName, v.Identity)
		}
	}
}
