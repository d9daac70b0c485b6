package loader

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/meaigood001/panda-quantflow/internal/dto"
	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

// maxFieldDepth bounds nested field declarations in a manifest. Authored
// contracts are shallow; deeper nesting is malformed input.
const maxFieldDepth = 32

// parseManifest decodes one YAML unit into its manifest DTO. The document
// is unmarshalled generically first, then bound with mapstructure, so type
// mismatches surface as decode errors instead of panics.
func parseManifest(data []byte) (*dto.Manifest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("empty manifest")
	}

	var m dto.Manifest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &m,
		ErrorUnused: false,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("manifest missing name")
	}
	return &m, nil
}

// buildContract converts a hand-authored contract declaration into a
// schema.Contract. A nil declaration means the node declares no contract
// for that direction.
func buildContract(fallbackName string, doc *dto.ContractDoc) (*schema.Contract, error) {
	if doc == nil {
		return nil, nil
	}
	name := doc.Name
	if name == "" {
		name = fallbackName
	}
	b := schema.NewBuilder(name)
	for _, f := range doc.Fields {
		if err := declareField(b, f, 0); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func declareField(b *schema.Builder, f dto.FieldDoc, depth int) error {
	if depth > maxFieldDepth {
		return fmt.Errorf("field %q: nesting too deep", f.Name)
	}

	kind, err := schema.ParseKind(f.Type)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}

	var fb *schema.FieldBuilder
	switch kind {
	case schema.KindObject:
		nested, err := nestedContract(f.Name, f.Fields, depth)
		if err != nil {
			return err
		}
		fb = b.Object(f.Name, nested)

	case schema.KindArray:
		if len(f.Fields) > 0 {
			nested, err := nestedContract(f.Name, f.Fields, depth)
			if err != nil {
				return err
			}
			fb = b.ArrayOf(f.Name, nested)
		} else {
			elem, err := schema.ParseKind(f.Items)
			if err != nil {
				return fmt.Errorf("field %q: items: %w", f.Name, err)
			}
			fb = b.Array(f.Name, elem)
		}

	case schema.KindString:
		fb = b.String(f.Name)
	case schema.KindInteger:
		fb = b.Integer(f.Name)
	case schema.KindNumber:
		fb = b.Number(f.Name)
	case schema.KindBoolean:
		fb = b.Boolean(f.Name)
	default:
		fb = b.Any(f.Name)
	}

	if f.Description != "" {
		fb.Describe(f.Description)
	}
	// An explicit `default: null` decodes to nil and is treated as no
	// default at all; a field that should be optional without a default
	// value must say `optional: true`.
	if f.Default != nil {
		fb.Default(f.Default)
	}
	if f.Optional {
		fb.Optional()
	}
	return nil
}

func nestedContract(name string, fields []dto.FieldDoc, depth int) (*schema.Contract, error) {
	nb := schema.NewBuilder(name)
	for _, nf := range fields {
		if err := declareField(nb, nf, depth+1); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
	}
	return nb.Build()
}
