// Package signal contains the built-in trade signal nodes.
package signal

import (
	"context"
	"fmt"

	"github.com/meaigood001/panda-quantflow/pkg/nodes/indicator"
	"github.com/meaigood001/panda-quantflow/pkg/plugin"
	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

var crossoverInput = schema.Must(func() (*schema.Contract, error) {
	b := schema.NewBuilder("crossover_input")
	b.Array("fast", schema.KindNumber).Describe("Fast series")
	b.Array("slow", schema.KindNumber).Describe("Slow series")
	return b.Build()
}())

var crossoverOutput = schema.Must(func() (*schema.Contract, error) {
	b := schema.NewBuilder("crossover_output")
	b.Array("signals", schema.KindInteger).Describe("+1 cross above, -1 cross below, 0 otherwise")
	return b.Build()
}())

// Crossover emits entry/exit signals where a fast series crosses a slow one.
type Crossover struct{}

// NewCrossover creates the node.
func NewCrossover() *Crossover { return &Crossover{} }

// Spec implements plugin.SpecProvider.
func (*Crossover) Spec() plugin.Spec {
	return plugin.Spec{
		Name:        "crossover",
		DisplayName: "Crossover",
		Group:       "Signals",
		Category:    "signal",
		Color:       "#fac858",
	}
}

// InputContract implements plugin.InputProvider.
func (*Crossover) InputContract() *schema.Contract { return crossoverInput }

// OutputContract implements plugin.OutputProvider.
func (*Crossover) OutputContract() *schema.Contract { return crossoverOutput }

// Execute compares the series pairwise up to the shorter length. The first
// element is always 0 since a cross needs a previous bar.
func (*Crossover) Execute(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	fast, err := indicator.Floats(inputs["fast"])
	if err != nil {
		return nil, fmt.Errorf("crossover: fast: %w", err)
	}
	slow, err := indicator.Floats(inputs["slow"])
	if err != nil {
		return nil, fmt.Errorf("crossover: slow: %w", err)
	}

	n := len(fast)
	if len(slow) < n {
		n = len(slow)
	}

	signals := make([]int, n)
	for i := 1; i < n; i++ {
		switch {
		case fast[i-1] <= slow[i-1] && fast[i] > slow[i]:
			signals[i] = 1
		case fast[i-1] >= slow[i-1] && fast[i] < slow[i]:
			signals[i] = -1
		}
	}
	return map[string]any{"signals": signals}, nil
}
