package domain

import (
	"strings"

	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

// Descriptor is the registered metadata record for one work node.
// It is created exactly once per successful registration and never mutated;
// consumers must treat it as read-only.
//
// InputSchema and OutputSchema are nil when the node declares no contract
// for that direction, and the corresponding JSON field is omitted.
type Descriptor struct {
	Identity     string           `json:"identity"`
	DisplayName  string           `json:"display_name"`
	GroupPath    []string         `json:"group"`
	Category     string           `json:"category"`
	Color        string           `json:"color"`
	InputSchema  *schema.Document `json:"input_schema,omitempty"`
	OutputSchema *schema.Document `json:"output_schema,omitempty"`
}

// Group returns the group path joined into its display form, e.g. "Data/Sources".
func (d Descriptor) Group() string {
	return strings.Join(d.GroupPath, "/")
}
