package plugin

import (
	"context"
	"fmt"

	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

// Declared is a Node assembled from explicit parts rather than a dedicated
// type. The loader builds one per manifest unit; tests use it to construct
// candidates inline.
type Declared struct {
	NodeSpec Spec
	Input    *schema.Contract
	Output   *schema.Contract
	Handler  HandlerFunc
}

// Spec implements SpecProvider.
func (d *Declared) Spec() Spec { return d.NodeSpec }

// InputContract implements InputProvider.
func (d *Declared) InputContract() *schema.Contract { return d.Input }

// OutputContract implements OutputProvider.
func (d *Declared) OutputContract() *schema.Contract { return d.Output }

// Execute dispatches to the bound handler.
func (d *Declared) Execute(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	if d.Handler == nil {
		return nil, fmt.Errorf("node %q has no execution binding", d.NodeSpec.Name)
	}
	return d.Handler(ctx, inputs)
}
