// Package nodes carries the work nodes compiled into the default catalog,
// plus the handler table manifest units may bind against.
package nodes

import (
	"context"

	"github.com/meaigood001/panda-quantflow/pkg/nodes/data"
	"github.com/meaigood001/panda-quantflow/pkg/nodes/indicator"
	"github.com/meaigood001/panda-quantflow/pkg/nodes/signal"
	"github.com/meaigood001/panda-quantflow/pkg/plugin"
)

// Builtins returns the compiled-in node table. Go has no dynamic source
// loading, so built-in nodes register through this static table while
// user-supplied nodes arrive as manifest units; both go through the same
// registration path.
func Builtins() []plugin.Node {
	return []plugin.Node{
		data.NewCSVSource(),
		indicator.NewSMA(),
		indicator.NewEMA(),
		signal.NewCrossover(),
	}
}

// Handlers returns the execution bindings available to manifest units.
func Handlers() *plugin.Handlers {
	h := plugin.NewHandlers()

	// passthrough hands inputs through unchanged. Useful for nodes whose
	// behavior lives entirely in the editor (annotations, markers) and as
	// a placeholder while a real handler is developed.
	h.Register("passthrough", func(ctx context.Context, inputs map[string]any) (map[string]any, error) {
		return inputs, nil
	})

	h.Register("sma", indicator.NewSMA().Execute)
	h.Register("ema", indicator.NewEMA().Execute)
	h.Register("crossover", signal.NewCrossover().Execute)
	h.Register("csv_source", data.NewCSVSource().Execute)

	return h
}
