// Package data contains the built-in data source nodes.
package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/meaigood001/panda-quantflow/pkg/plugin"
	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

var csvInput = schema.Must(func() (*schema.Contract, error) {
	b := schema.NewBuilder("csv_source_input")
	b.String("path").Describe("Path to the CSV file")
	b.String("time_column").Default("timestamp").Describe("Column holding the bar timestamp")
	b.Integer("limit").Default(0).Describe("Maximum bars to load (0 = all)")
	return b.Build()
}())

var csvOutput = schema.Must(func() (*schema.Contract, error) {
	bar := schema.NewBuilder("bar")
	bar.String("time")
	bar.Number("open")
	bar.Number("high")
	bar.Number("low")
	bar.Number("close")
	bar.Number("volume").Default(0.0)
	barContract, err := bar.Build()
	if err != nil {
		return nil, err
	}

	b := schema.NewBuilder("csv_source_output")
	b.ArrayOf("bars", barContract)
	b.Integer("count")
	return b.Build()
}())

// CSVSource loads OHLCV bars from a headered CSV file.
type CSVSource struct{}

// NewCSVSource creates the node.
func NewCSVSource() *CSVSource { return &CSVSource{} }

// Spec implements plugin.SpecProvider.
func (*CSVSource) Spec() plugin.Spec {
	return plugin.Spec{
		Name:        "csv_source",
		DisplayName: "CSV Bars",
		Group:       "Data/Sources",
		Category:    "data",
		Color:       "#2f81f7",
	}
}

// InputContract implements plugin.InputProvider.
func (*CSVSource) InputContract() *schema.Contract { return csvInput }

// OutputContract implements plugin.OutputProvider.
func (*CSVSource) OutputContract() *schema.Contract { return csvOutput }

// Execute reads the file and maps the OHLCV columns into bar records.
// Columns beyond the contract are ignored.
func (*CSVSource) Execute(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	path, _ := inputs["path"].(string)
	if path == "" {
		return nil, fmt.Errorf("csv_source: path is required")
	}
	timeColumn, _ := inputs["time_column"].(string)
	if timeColumn == "" {
		timeColumn = "timestamp"
	}
	limit := intValue(inputs["limit"])

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv_source: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv_source: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv_source: %s is empty", path)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[name] = i
	}
	if _, ok := columns[timeColumn]; !ok {
		return nil, fmt.Errorf("csv_source: missing column %q", timeColumn)
	}
	for _, name := range []string{"open", "high", "low", "close"} {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("csv_source: missing column %q", name)
		}
	}

	bars := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if limit > 0 && len(bars) >= limit {
			break
		}
		bar := map[string]any{"time": row[columns[timeColumn]]}
		for _, name := range []string{"open", "high", "low", "close"} {
			v, err := strconv.ParseFloat(row[columns[name]], 64)
			if err != nil {
				return nil, fmt.Errorf("csv_source: column %q: %w", name, err)
			}
			bar[name] = v
		}
		bar["volume"] = 0.0
		if i, ok := columns["volume"]; ok {
			if v, err := strconv.ParseFloat(row[i], 64); err == nil {
				bar["volume"] = v
			}
		}
		bars = append(bars, bar)
	}

	return map[string]any{"bars": bars, "count": len(bars)}, nil
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
