package dto

// Manifest mirrors the YAML layout of a declarative node unit.
// It uses "mapstructure" tags so the decoded YAML document (a generic map)
// can be bound without caring about the YAML library's type quirks.
type Manifest struct {
	Name        string `json:"name" mapstructure:"name"`
	DisplayName string `json:"display_name" mapstructure:"display_name"`
	Group       string `json:"group" mapstructure:"group"`
	Category    string `json:"category" mapstructure:"category"`
	Color       string `json:"color" mapstructure:"color"`

	// Handler names the execution binding resolved from the handler table.
	Handler string `json:"handler" mapstructure:"handler"`

	Input  *ContractDoc `json:"input" mapstructure:"input"`
	Output *ContractDoc `json:"output" mapstructure:"output"`
}

// ContractDoc is a hand-authored contract declaration.
type ContractDoc struct {
	Name   string     `json:"name" mapstructure:"name"`
	Fields []FieldDoc `json:"fields" mapstructure:"fields"`
}

// FieldDoc is one field declaration inside a ContractDoc.
type FieldDoc struct {
	Name        string `json:"name" mapstructure:"name"`
	Type        string `json:"type" mapstructure:"type"`
	Description string `json:"description" mapstructure:"description"`

	// Default, when present, makes the field optional. A field without a
	// default and without the optional marker is required. An explicit
	// `default: null` is indistinguishable from an absent default once
	// decoded and counts as no default; use `optional: true` for an
	// optional field with no default value.
	Default  any  `json:"default" mapstructure:"default"`
	Optional bool `json:"optional" mapstructure:"optional"`

	// Items names the element type of an array field.
	Items string `json:"items" mapstructure:"items"`

	// Fields declares the nested shape of an object field, or of an array
	// field with object elements.
	Fields []FieldDoc `json:"fields" mapstructure:"fields"`
}
