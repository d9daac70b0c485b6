package schema

import "fmt"

// Kind is the wire-level type tag of a contract field.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindAny     Kind = "any"
)

// ParseKind converts a type name (as written in manifest files) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindString, KindInteger, KindNumber, KindBoolean, KindObject, KindArray, KindAny:
		return Kind(s), nil
	case "":
		return KindAny, nil
	default:
		return "", fmt.Errorf("unsupported type: %s", s)
	}
}

// Field is one declared entry of a Contract.
type Field struct {
	Name        string
	Kind        Kind
	Description string

	// Default, when declared, makes the field optional. HasDefault
	// distinguishes an explicit nil default from no default at all.
	Default    any
	HasDefault bool

	// Optional marks a field as not required even without a default.
	Optional bool

	// Elem carries the element kind for array fields of primitives.
	Elem Kind

	// Nested carries the sub-contract for object fields and for
	// array-of-object fields.
	Nested *Contract
}

// Required reports whether a value must be supplied for this field.
func (f Field) Required() bool {
	return !f.HasDefault && !f.Optional
}

// Contract is an ordered, named description of a work node's input or
// output shape. Contracts are immutable once built; construct them with
// a Builder.
type Contract struct {
	name   string
	fields []Field
	index  map[string]int
}

// Name returns the contract's declared name.
func (c *Contract) Name() string { return c.name }

// Len returns the number of declared fields.
func (c *Contract) Len() int { return len(c.fields) }

// Fields returns the declarations in authoring order.
// The returned slice is a copy and safe to modify.
func (c *Contract) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Field looks up a declaration by name.
func (c *Contract) Field(name string) (Field, bool) {
	i, ok := c.index[name]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}
