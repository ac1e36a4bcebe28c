// internal/nodeid/doc.go

/*
Package nodeid provides a structured representation for the qualified names
of model elements, based on the canonical format `path`.

The format is a dot-separated sequence of identifier segments, e.g.,
`crossroad.prior.control.toggle`. Addresses name instance paths in the
unflattened component hierarchy (`y.p`) and binding endpoints
(`instance.port.signal`).

This package centralizes all formatting and parsing of these names so that
the unfolder, validator and trace record agree on a single spelling.
*/
package nodeid
