package indicator

import (
	"context"
	"fmt"

	"github.com/meaigood001/panda-quantflow/pkg/plugin"
	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

var smaInput = schema.Must(func() (*schema.Contract, error) {
	b := schema.NewBuilder("sma_input")
	b.Array("series", schema.KindNumber).Describe("Input price series")
	b.Integer("window").Default(20).Describe("Averaging window length")
	return b.Build()
}())

var smaOutput = schema.Must(func() (*schema.Contract, error) {
	b := schema.NewBuilder("sma_output")
	b.Array("values", schema.KindNumber).Describe("Moving average, one value per full window")
	return b.Build()
}())

// SMA computes a simple moving average over a price series.
type SMA struct{}

// NewSMA creates the node.
func NewSMA() *SMA { return &SMA{} }

// Spec implements plugin.SpecProvider.
func (*SMA) Spec() plugin.Spec {
	return plugin.Spec{
		Name:        "sma",
		DisplayName: "SMA",
		Group:       "Indicators/Trend",
		Category:    "indicator",
		Color:       "#91cc75",
	}
}

// InputContract implements plugin.InputProvider.
func (*SMA) InputContract() *schema.Contract { return smaInput }

// OutputContract implements plugin.OutputProvider.
func (*SMA) OutputContract() *schema.Contract { return smaOutput }

// Execute emits one average per full window: output[i] covers
// series[i : i+window]. A series shorter than the window yields no values.
func (*SMA) Execute(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	series, err := Floats(inputs["series"])
	if err != nil {
		return nil, fmt.Errorf("sma: series: %w", err)
	}
	window, err := Window(inputs["window"], 20)
	if err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}

	if len(series) < window {
		return map[string]any{"values": []float64{}}, nil
	}

	values := make([]float64, 0, len(series)-window+1)
	var sum float64
	for i, v := range series {
		sum += v
		if i >= window {
			sum -= series[i-window]
		}
		if i >= window-1 {
			values = append(values, sum/float64(window))
		}
	}
	return map[string]any{"values": values}, nil
}
