package schema

import (
	"bytes"
	"encoding/json"
)

// Document is the portable projection of a Contract: a JSON-Schema-like
// tree of type tags, ordered properties, required-field lists, and default
// values. It is what the catalog serializes for the editor.
type Document struct {
	Type        Kind
	Title       string
	Description string

	// Properties holds the child schemas of an object document in
	// declaration order.
	Properties []Property

	// Items holds the element schema of an array document.
	Items *Document

	// Required lists the property names that must be supplied.
	Required []string

	Default    any
	HasDefault bool
}

// Property is one named entry of an object document.
type Property struct {
	Name   string
	Schema *Document
}

// MarshalJSON renders the document with properties in declaration order.
// encoding/json sorts map keys, so the object body is written by hand.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeKey := func(key string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteByte('"')
		buf.WriteString(key)
		buf.WriteString(`":`)
	}
	writeField := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		writeKey(key)
		buf.Write(raw)
		return nil
	}

	if err := writeField("type", d.Type); err != nil {
		return nil, err
	}
	if d.Title != "" {
		if err := writeField("title", d.Title); err != nil {
			return nil, err
		}
	}
	if d.Description != "" {
		if err := writeField("description", d.Description); err != nil {
			return nil, err
		}
	}

	if d.Properties != nil {
		writeKey("properties")
		buf.WriteByte('{')
		for i, p := range d.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(p.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			nested, err := json.Marshal(p.Schema)
			if err != nil {
				return nil, err
			}
			buf.Write(nested)
		}
		buf.WriteByte('}')
	}

	if d.Items != nil {
		if err := writeField("items", d.Items); err != nil {
			return nil, err
		}
	}
	if len(d.Required) > 0 {
		if err := writeField("required", d.Required); err != nil {
			return nil, err
		}
	}
	if d.HasDefault {
		if err := writeField("default", d.Default); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Property looks up a child schema of an object document by name.
func (d *Document) Property(name string) (*Document, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// IsRequired reports whether the named property is in the required list.
func (d *Document) IsRequired(name string) bool {
	for _, r := range d.Required {
		if r == name {
			return true
		}
	}
	return false
}
