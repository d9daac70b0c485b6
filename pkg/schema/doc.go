/*
Package schema describes the typed input/output contracts of work nodes and
projects them into portable, JSON-Schema-like documents for the editor.

A Contract is an ordered set of field declarations built with a fluent
Builder. Declaration order is significant: the projected Document preserves
it so the editor renders parameters the way the author wrote them.

	b := schema.NewBuilder("sma_input")
	b.Array("series", schema.KindNumber).Describe("Input price series")
	b.Integer("window").Default(20)
	in, err := b.Build()

A field with no default and no explicit Optional marker is required.
Extract converts a Contract into a Document; cyclic contract definitions
are rejected with ErrCyclicSchema.
*/
package schema
