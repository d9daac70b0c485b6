/*
Package plugin defines the authoring contract for QuantFlow work nodes.

A work node declares its palette metadata through an explicit Spec, its
typed input/output shapes through schema contracts, and an execution entry
point invoked by the workflow engine. The registry validates candidates
against the capability interfaces in this package; anything that satisfies
Node can register, whether compiled in or assembled from a manifest.
*/
package plugin
