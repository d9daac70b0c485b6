package indicator

import (
	"context"
	"fmt"

	"github.com/meaigood001/panda-quantflow/pkg/plugin"
	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

var emaInput = schema.Must(func() (*schema.Contract, error) {
	b := schema.NewBuilder("ema_input")
	b.Array("series", schema.KindNumber).Describe("Input price series")
	b.Integer("period").Default(12).Describe("Smoothing period")
	return b.Build()
}())

var emaOutput = schema.Must(func() (*schema.Contract, error) {
	b := schema.NewBuilder("ema_output")
	b.Array("values", schema.KindNumber)
	return b.Build()
}())

// EMA computes an exponential moving average, seeded with the simple
// average of the first period.
type EMA struct{}

// NewEMA creates the node.
func NewEMA() *EMA { return &EMA{} }

// Spec implements plugin.SpecProvider.
func (*EMA) Spec() plugin.Spec {
	return plugin.Spec{
		Name:        "ema",
		DisplayName: "EMA",
		Group:       "Indicators/Trend",
		Category:    "indicator",
		Color:       "#91cc75",
	}
}

// InputContract implements plugin.InputProvider.
func (*EMA) InputContract() *schema.Contract { return emaInput }

// OutputContract implements plugin.OutputProvider.
func (*EMA) OutputContract() *schema.Contract { return emaOutput }

// Execute emits one value per bar from the first full period onward.
func (*EMA) Execute(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	series, err := Floats(inputs["series"])
	if err != nil {
		return nil, fmt.Errorf("ema: series: %w", err)
	}
	period, err := Window(inputs["period"], 12)
	if err != nil {
		return nil, fmt.Errorf("ema: %w", err)
	}

	if len(series) < period {
		return map[string]any{"values": []float64{}}, nil
	}

	var seed float64
	for _, v := range series[:period] {
		seed += v
	}
	seed /= float64(period)

	multiplier := 2.0 / (float64(period) + 1.0)
	values := make([]float64, 0, len(series)-period+1)
	values = append(values, seed)

	prev := seed
	for _, v := range series[period:] {
		prev = (v-prev)*multiplier + prev
		values = append(values, prev)
	}
	return map[string]any{"values": values}, nil
}
