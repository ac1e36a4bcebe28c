// Package hcl provides the concrete HCL implementation of the config.Store
// interface. It is responsible for all model file parsing, HCL-to-model
// translation, and for writing the flattened model, the automata network and
// the trace record back out as HCL.
package hcl
