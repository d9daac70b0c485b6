/*
Package domain contains the core entities of the QuantFlow node catalog.

The central type is the Descriptor: the immutable metadata record created
for every work node that successfully registers, and the only thing the
rest of the system (tree builder, HTTP API, MCP adapter) ever reads.
Descriptors are owned by the registry; everything derived from them is a
disposable projection.
*/
package domain
