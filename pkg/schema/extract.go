package schema

import "fmt"

// maxDepth bounds contract nesting during extraction. Authored contracts
// are shallow; anything deeper is malformed.
const maxDepth = 32

// Extract projects a Contract into its portable Document.
//
// A nil contract extracts to a nil document (the node declares no contract
// for that direction). Self-referential contracts fail with ErrCyclicSchema;
// nesting beyond maxDepth fails with ErrSchemaTooDeep. Property order in
// the document matches declaration order in the contract.
func Extract(c *Contract) (*Document, error) {
	if c == nil {
		return nil, nil
	}
	return extractContract(c, make(map[*Contract]bool), 0)
}

func extractContract(c *Contract, path map[*Contract]bool, depth int) (*Document, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("contract %q: %w", c.name, ErrSchemaTooDeep)
	}
	if path[c] {
		return nil, fmt.Errorf("contract %q: %w", c.name, ErrCyclicSchema)
	}
	path[c] = true
	defer delete(path, c)

	doc := &Document{
		Type:       KindObject,
		Title:      c.name,
		Properties: []Property{},
	}

	for _, f := range c.fields {
		child, err := extractField(f, path, depth+1)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		doc.Properties = append(doc.Properties, Property{Name: f.Name, Schema: child})
		if f.Required() {
			doc.Required = append(doc.Required, f.Name)
		}
	}

	return doc, nil
}

func extractField(f Field, path map[*Contract]bool, depth int) (*Document, error) {
	var doc *Document

	switch f.Kind {
	case KindObject:
		if f.Nested != nil {
			nested, err := extractContract(f.Nested, path, depth)
			if err != nil {
				return nil, err
			}
			doc = nested
		} else {
			// Open object: shape not declared.
			doc = &Document{Type: KindObject}
		}

	case KindArray:
		doc = &Document{Type: KindArray}
		if f.Nested != nil {
			items, err := extractContract(f.Nested, path, depth)
			if err != nil {
				return nil, err
			}
			doc.Items = items
		} else {
			elem := f.Elem
			if elem == "" {
				elem = KindAny
			}
			doc.Items = &Document{Type: elem}
		}

	default:
		doc = &Document{Type: f.Kind}
	}

	if f.Description != "" {
		doc.Description = f.Description
	}
	if f.HasDefault {
		doc.Default = f.Default
		doc.HasDefault = true
	}

	return doc, nil
}
