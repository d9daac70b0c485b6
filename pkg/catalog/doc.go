/*
Package catalog turns the flat registry into the nested, sorted group tree
the visual editor renders as its node palette.

The tree is a derived, disposable projection: it is rebuilt on demand from
a registry snapshot and never mutated in place. Two builds over the same
descriptor set produce identical trees regardless of registration order.
*/
package catalog
