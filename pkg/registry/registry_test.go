package registry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meaigood001/panda-quantflow/pkg/domain"
	"github.com/meaigood001/panda-quantflow/pkg/plugin"
	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

func passthrough(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	return inputs, nil
}

func testNode(name, group string) *plugin.Declared {
	in := schema.NewBuilder(name + "_input")
	in.Number("value")
	out := schema.NewBuilder(name + "_output")
	out.Number("value")

	return &plugin.Declared{
		NodeSpec: plugin.Spec{Name: name, DisplayName: name, Group: group},
		Input:    schema.Must(in.Build()),
		Output:   schema.Must(out.Build()),
		Handler:  passthrough,
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := New()

	require.NoError(t, r.Register("sma", testNode("sma", "Indicators/Trend")))
	require.Equal(t, 1, r.Len())

	desc, err := r.Get("sma")
	require.NoError(t, err)
	assert.Equal(t, "sma", desc.Identity)
	assert.Equal(t, []string{"Indicators", "Trend"}, desc.GroupPath)
	assert.Equal(t, plugin.DefaultCategory, desc.Category)
	assert.Equal(t, plugin.DefaultColor, desc.Color)
	require.NotNil(t, desc.InputSchema)
	assert.Equal(t, "sma_input", desc.InputSchema.Title)
}

func TestRegisterEmptyIdentity(t *testing.T) {
	r := New()
	err := r.Register("", testNode("x", ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidPlugin))
}

func TestRegisterRejectsMissingCapabilities(t *testing.T) {
	r := New()

	cases := []struct {
		name      string
		candidate any
	}{
		{"plain value", struct{}{}},
		{"spec only", specOnly{}},
		{"no output", noOutput{}},
		{"no executor", noExecutor{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.Register("bad", tc.candidate)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidPlugin))
		})
	}
	assert.Equal(t, 0, r.Len())
}

type specOnly struct{}

func (specOnly) Spec() plugin.Spec { return plugin.Spec{Name: "bad"} }

type noOutput struct{ specOnly }

func (noOutput) InputContract() *schema.Contract { return nil }

type noExecutor struct{ noOutput }

func (noExecutor) OutputContract() *schema.Contract { return nil }

func TestRegisterNilContracts(t *testing.T) {
	r := New()
	node := &plugin.Declared{
		NodeSpec: plugin.Spec{Name: "bare"},
		Handler:  passthrough,
	}
	require.NoError(t, r.Register("bare", node))

	desc, err := r.Get("bare")
	require.NoError(t, err)
	assert.Nil(t, desc.InputSchema)
	assert.Nil(t, desc.OutputSchema)
	assert.Equal(t, []string{plugin.DefaultGroup}, desc.GroupPath)
}

func TestRegisterDuplicateReplacesAndWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := New(WithLogger(logger))

	require.NoError(t, r.Register("sma", testNode("sma", "Indicators")))
	require.NoError(t, r.Register("sma", testNode("sma", "Overlap")))

	// Last write wins; size unchanged.
	assert.Equal(t, 1, r.Len())
	desc, err := r.Get("sma")
	require.NoError(t, err)
	assert.Equal(t, []string{"Overlap"}, desc.GroupPath)

	assert.Contains(t, buf.String(), "replacing registered node")
	assert.Contains(t, buf.String(), "sma")
}

func TestGetMissing(t *testing.T) {
	r := New()
	_, err := r.Get("ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAllReturnsSnapshot(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("a", testNode("a", "")))

	snapshot := r.All()
	require.Len(t, snapshot, 1)

	// Later writes do not leak into the snapshot.
	require.NoError(t, r.Register("b", testNode("b", "")))
	assert.Len(t, snapshot, 1)

	// Mutating the snapshot does not touch the registry.
	delete(snapshot, "a")
	assert.Equal(t, 2, r.Len())
}

func TestResetEmptiesRegistry(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("a", testNode("a", "")))
	require.NoError(t, r.Register("b", testNode("b", "")))

	r.Reset()

	assert.Equal(t, 0, r.Len())
	_, err := r.Get("a")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// The registry stays usable after a reset.
	require.NoError(t, r.Register("a", testNode("a", "")))
	assert.Equal(t, 1, r.Len())
}

func TestRegisterDisplayNameFallback(t *testing.T) {
	r := New()
	node := &plugin.Declared{
		NodeSpec: plugin.Spec{Name: "ema"},
		Handler:  passthrough,
	}
	require.NoError(t, r.Register("ema", node))

	desc, _ := r.Get("ema")
	assert.Equal(t, "ema", desc.DisplayName)
}
