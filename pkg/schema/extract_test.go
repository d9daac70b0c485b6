package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildContract(t *testing.T, b *Builder) *Contract {
	t.Helper()
	c, err := b.Build()
	require.NoError(t, err)
	return c
}

func TestExtractNilContract(t *testing.T) {
	doc, err := Extract(nil)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestExtractFlatContract(t *testing.T) {
	b := NewBuilder("bar_input")
	b.String("symbol").Describe("Instrument symbol")
	b.Integer("window").Default(20)
	b.Number("threshold").Optional()

	doc, err := Extract(buildContract(t, b))
	require.NoError(t, err)

	assert.Equal(t, KindObject, doc.Type)
	assert.Equal(t, "bar_input", doc.Title)
	require.Len(t, doc.Properties, 3)

	// Property order matches declaration order.
	assert.Equal(t, "symbol", doc.Properties[0].Name)
	assert.Equal(t, "window", doc.Properties[1].Name)
	assert.Equal(t, "threshold", doc.Properties[2].Name)

	symbol, ok := doc.Property("symbol")
	require.True(t, ok)
	assert.Equal(t, KindString, symbol.Type)
	assert.Equal(t, "Instrument symbol", symbol.Description)

	window, ok := doc.Property("window")
	require.True(t, ok)
	assert.True(t, window.HasDefault)
	assert.Equal(t, 20, window.Default)

	// Only the field without default and not optional is required.
	assert.Equal(t, []string{"symbol"}, doc.Required)
	assert.True(t, doc.IsRequired("symbol"))
	assert.False(t, doc.IsRequired("window"))
	assert.False(t, doc.IsRequired("threshold"))
}

func TestExtractNestedObject(t *testing.T) {
	inner := NewBuilder("position")
	inner.String("symbol")
	inner.Number("size").Default(0.0)

	outer := NewBuilder("portfolio")
	outer.Object("position", buildContract(t, inner))
	outer.ArrayOf("history", buildContract(t, inner))
	outer.Array("weights", KindNumber)

	doc, err := Extract(buildContract(t, outer))
	require.NoError(t, err)

	position, ok := doc.Property("position")
	require.True(t, ok)
	assert.Equal(t, KindObject, position.Type)
	assert.Equal(t, "position", position.Title)
	assert.Equal(t, []string{"symbol"}, position.Required)

	history, ok := doc.Property("history")
	require.True(t, ok)
	assert.Equal(t, KindArray, history.Type)
	require.NotNil(t, history.Items)
	assert.Equal(t, KindObject, history.Items.Type)

	weights, ok := doc.Property("weights")
	require.True(t, ok)
	assert.Equal(t, KindArray, weights.Type)
	require.NotNil(t, weights.Items)
	assert.Equal(t, KindNumber, weights.Items.Type)
}

func TestExtractOpenObjectAndUntypedArray(t *testing.T) {
	b := NewBuilder("loose")
	b.Object("meta", nil)
	b.Array("values", "")

	doc, err := Extract(buildContract(t, b))
	require.NoError(t, err)

	meta, _ := doc.Property("meta")
	assert.Equal(t, KindObject, meta.Type)
	assert.Nil(t, meta.Properties)

	values, _ := doc.Property("values")
	require.NotNil(t, values.Items)
	assert.Equal(t, KindAny, values.Items.Type)
}

func TestExtractRejectsCyclicContract(t *testing.T) {
	// The builder copies fields on Build, so a cycle can only arise from a
	// hand-wired contract. Construct one directly.
	c := &Contract{name: "self"}
	c.fields = []Field{{Name: "me", Kind: KindObject, Nested: c}}
	c.index = map[string]int{"me": 0}

	_, err := Extract(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCyclicSchema))
	assert.Contains(t, err.Error(), `"self"`)
}

func TestExtractAllowsSiblingReuse(t *testing.T) {
	b := NewBuilder("point")
	b.Number("x")
	point := buildContract(t, b)

	// Sibling reuse of the same contract is fine; only an ancestor repeat
	// on the same path is a cycle.
	siblings := NewBuilder("segment")
	siblings.Object("from", point)
	siblings.Object("to", point)

	doc, err := Extract(buildContract(t, siblings))
	require.NoError(t, err)
	require.Len(t, doc.Properties, 2)
}

func TestExtractDepthBound(t *testing.T) {
	leaf := NewBuilder("leaf")
	leaf.String("v")
	current := buildContract(t, leaf)

	for i := 0; i < 40; i++ {
		b := NewBuilder("wrap")
		b.Object("child", current)
		current = buildContract(t, b)
	}

	_, err := Extract(current)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaTooDeep))
}

func TestDocumentMarshalPreservesPropertyOrder(t *testing.T) {
	b := NewBuilder("ordered")
	b.String("zulu")
	b.String("alpha")
	b.String("mike").Default("m")

	doc, err := Extract(buildContract(t, b))
	require.NoError(t, err)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	s := string(raw)
	zulu := strings.Index(s, `"zulu"`)
	alpha := strings.Index(s, `"alpha"`)
	mike := strings.Index(s, `"mike"`)
	require.NotEqual(t, -1, zulu)
	require.NotEqual(t, -1, alpha)
	require.NotEqual(t, -1, mike)
	assert.Less(t, zulu, alpha)
	assert.Less(t, alpha, mike)

	// Round-trips as valid JSON with the expected shape.
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "object", decoded["type"])
	assert.Equal(t, "ordered", decoded["title"])
	assert.Equal(t, []any{"zulu", "alpha"}, decoded["required"])
}

func TestDocumentMarshalEmptyProperties(t *testing.T) {
	b := NewBuilder("empty")
	doc, err := Extract(buildContract(t, b))
	require.NoError(t, err)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"properties":{}`)
	assert.NotContains(t, string(raw), `"required"`)
}

func TestDocumentMarshalNilDefault(t *testing.T) {
	b := NewBuilder("c")
	b.String("v").Default(nil)

	doc, err := Extract(buildContract(t, b))
	require.NoError(t, err)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"default":null`)
}
