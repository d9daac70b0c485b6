package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVSourceLoadsBars(t *testing.T) {
	path := writeCSV(t, `timestamp,open,high,low,close,volume
2026-01-02,100,101,99,100.5,1200
2026-01-05,100.5,103,100,102,900
`)

	out, err := NewCSVSource().Execute(context.Background(), map[string]any{"path": path})
	require.NoError(t, err)

	assert.Equal(t, 2, out["count"])
	bars := out["bars"].([]map[string]any)
	require.Len(t, bars, 2)
	assert.Equal(t, "2026-01-02", bars[0]["time"])
	assert.Equal(t, 100.0, bars[0]["open"])
	assert.Equal(t, 100.5, bars[0]["close"])
	assert.Equal(t, 1200.0, bars[0]["volume"])
}

func TestCSVSourceCustomTimeColumnAndLimit(t *testing.T) {
	path := writeCSV(t, `date,open,high,low,close
d1,1,2,0.5,1.5
d2,1.5,2.5,1,2
d3,2,3,1.5,2.5
`)

	out, err := NewCSVSource().Execute(context.Background(), map[string]any{
		"path":        path,
		"time_column": "date",
		"limit":       2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out["count"])
	bars := out["bars"].([]map[string]any)
	assert.Equal(t, "d1", bars[0]["time"])
	// Missing volume column defaults to zero.
	assert.Equal(t, 0.0, bars[0]["volume"])
}

func TestCSVSourceErrors(t *testing.T) {
	src := NewCSVSource()
	ctx := context.Background()

	_, err := src.Execute(ctx, map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")

	_, err = src.Execute(ctx, map[string]any{"path": filepath.Join(t.TempDir(), "missing.csv")})
	require.Error(t, err)

	noTime := writeCSV(t, "open,high,low,close\n1,2,0.5,1.5\n")
	_, err = src.Execute(ctx, map[string]any{"path": noTime})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing column "timestamp"`)

	badValue := writeCSV(t, "timestamp,open,high,low,close\nd1,abc,2,0.5,1.5\n")
	_, err = src.Execute(ctx, map[string]any{"path": badValue})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "open"`)
}
