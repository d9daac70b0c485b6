package schema

import "fmt"

// Builder assembles a Contract field by field, preserving declaration order.
// Each declaration method returns a FieldBuilder for chained refinement:
//
//	b := schema.NewBuilder("order_input")
//	b.String("symbol").Describe("Instrument symbol")
//	b.Integer("quantity").Default(100)
//	contract, err := b.Build()
type Builder struct {
	name   string
	fields []Field
}

// NewBuilder starts a new contract with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// String declares a string field.
func (b *Builder) String(name string) *FieldBuilder {
	return b.add(Field{Name: name, Kind: KindString})
}

// Integer declares an integer field.
func (b *Builder) Integer(name string) *FieldBuilder {
	return b.add(Field{Name: name, Kind: KindInteger})
}

// Number declares a floating-point field.
func (b *Builder) Number(name string) *FieldBuilder {
	return b.add(Field{Name: name, Kind: KindNumber})
}

// Boolean declares a boolean field.
func (b *Builder) Boolean(name string) *FieldBuilder {
	return b.add(Field{Name: name, Kind: KindBoolean})
}

// Any declares a field without a concrete type tag.
func (b *Builder) Any(name string) *FieldBuilder {
	return b.add(Field{Name: name, Kind: KindAny})
}

// Object declares a field whose value conforms to a nested contract.
func (b *Builder) Object(name string, nested *Contract) *FieldBuilder {
	return b.add(Field{Name: name, Kind: KindObject, Nested: nested})
}

// Array declares an array field of primitive elements.
func (b *Builder) Array(name string, elem Kind) *FieldBuilder {
	return b.add(Field{Name: name, Kind: KindArray, Elem: elem})
}

// ArrayOf declares an array field whose elements conform to a nested contract.
func (b *Builder) ArrayOf(name string, nested *Contract) *FieldBuilder {
	return b.add(Field{Name: name, Kind: KindArray, Nested: nested})
}

func (b *Builder) add(f Field) *FieldBuilder {
	b.fields = append(b.fields, f)
	return &FieldBuilder{builder: b, index: len(b.fields) - 1}
}

// Build finalizes the contract. It fails if a field name is declared twice,
// since field names must be unique within one contract.
func (b *Builder) Build() (*Contract, error) {
	index := make(map[string]int, len(b.fields))
	for i, f := range b.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("contract %q: field %d has no name", b.name, i)
		}
		if _, dup := index[f.Name]; dup {
			return nil, fmt.Errorf("contract %q: duplicate field %q", b.name, f.Name)
		}
		index[f.Name] = i
	}

	fields := make([]Field, len(b.fields))
	copy(fields, b.fields)

	return &Contract{name: b.name, fields: fields, index: index}, nil
}

// Must is a Build helper for static contract declarations; it panics on error.
func Must(c *Contract, err error) *Contract {
	if err != nil {
		panic(err)
	}
	return c
}

// FieldBuilder refines the most recently declared field.
type FieldBuilder struct {
	builder *Builder
	index   int
}

// Default attaches a default value, making the field optional.
func (fb *FieldBuilder) Default(v any) *FieldBuilder {
	fb.builder.fields[fb.index].Default = v
	fb.builder.fields[fb.index].HasDefault = true
	return fb
}

// Optional marks the field as not required even without a default.
func (fb *FieldBuilder) Optional() *FieldBuilder {
	fb.builder.fields[fb.index].Optional = true
	return fb
}

// Describe attaches a human-readable description shown in the editor.
func (fb *FieldBuilder) Describe(text string) *FieldBuilder {
	fb.builder.fields[fb.index].Description = text
	return fb
}
