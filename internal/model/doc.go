// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of a statechart
// composition package. Its core purpose is to hold a strongly-typed,
// in-memory graph of the user's components, independent of the file format
// they were loaded from.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Package: The root container. It aggregates the interfaces and
//     components declared in one model file.
//
//   - Interface: A named group of signals with a declared direction. Ports
//     realize interfaces, either as provider (directions as declared) or as
//     requirer (directions flipped).
//
//   - Component: A tagged union. An atomic component carries a Statechart
//     (regions, states, transitions, variables); a composite component
//     carries instances of other components and the connections that wire
//     their signals together.
//
//   - FSInfo: Metadata that links a Package back to its source file, used
//     for error messages and for deriving the names of output artifacts.
//
// Why a separate model package?
//
// Every stage of the pipeline (unfolding, validation, transformation) reads
// the same graph. Keeping it free of HCL types means those stages can be
// tested with hand-built models, and a model can be written back to disk and
// reloaded without the stages noticing the difference.
//
// The graph is treated as read-only once loaded. Stages that rewrite it,
// such as the unfolder, build a new graph instead of mutating their input.
package model
