// Package app contains the core application logic. It defines the App
// struct, its configuration, and the transformation pipeline that turns a
// statechart model file into timed-automata artifacts, decoupled from any
// specific entrypoint like a CLI.
package app
