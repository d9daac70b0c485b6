package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderPreservesDeclarationOrder(t *testing.T) {
	b := NewBuilder("order_input")
	b.String("symbol")
	b.Integer("quantity")
	b.Number("limit_price")
	b.Boolean("dry_run")

	c, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "order_input", c.Name())
	require.Equal(t, 4, c.Len())

	fields := c.Fields()
	assert.Equal(t, "symbol", fields[0].Name)
	assert.Equal(t, "quantity", fields[1].Name)
	assert.Equal(t, "limit_price", fields[2].Name)
	assert.Equal(t, "dry_run", fields[3].Name)
}

func TestBuilderRejectsDuplicateFieldNames(t *testing.T) {
	b := NewBuilder("bad")
	b.String("symbol")
	b.Integer("symbol")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field")
}

func TestBuilderRejectsUnnamedField(t *testing.T) {
	b := NewBuilder("bad")
	b.String("")

	_, err := b.Build()
	require.Error(t, err)
}

func TestFieldRequired(t *testing.T) {
	b := NewBuilder("c")
	b.String("plain")
	b.String("defaulted").Default("x")
	b.String("optional").Optional()
	b.String("nil_default").Default(nil)

	c, err := b.Build()
	require.NoError(t, err)

	plain, _ := c.Field("plain")
	assert.True(t, plain.Required())

	defaulted, _ := c.Field("defaulted")
	assert.False(t, defaulted.Required())

	optional, _ := c.Field("optional")
	assert.False(t, optional.Required())

	// An explicit nil default still counts as a default.
	nilDefault, _ := c.Field("nil_default")
	assert.False(t, nilDefault.Required())
	assert.True(t, nilDefault.HasDefault)
	assert.Nil(t, nilDefault.Default)
}

func TestFieldLookup(t *testing.T) {
	c := Must(func() (*Contract, error) {
		b := NewBuilder("c")
		b.Integer("window").Default(20).Describe("Lookback window")
		return b.Build()
	}())

	f, ok := c.Field("window")
	require.True(t, ok)
	assert.Equal(t, KindInteger, f.Kind)
	assert.Equal(t, "Lookback window", f.Description)
	assert.Equal(t, 20, f.Default)

	_, ok = c.Field("missing")
	assert.False(t, ok)
}

func TestFieldsReturnsCopy(t *testing.T) {
	b := NewBuilder("c")
	b.String("a")
	c, err := b.Build()
	require.NoError(t, err)

	fields := c.Fields()
	fields[0].Name = "mutated"

	again, _ := c.Field("a")
	assert.Equal(t, "a", again.Name)
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"string":  KindString,
		"integer": KindInteger,
		"number":  KindNumber,
		"boolean": KindBoolean,
		"object":  KindObject,
		"array":   KindArray,
		"any":     KindAny,
		"":        KindAny,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("float")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestMustPanicsOnError(t *testing.T) {
	b := NewBuilder("bad")
	b.String("x")
	b.String("x")

	assert.Panics(t, func() {
		Must(b.Build())
	})
}
