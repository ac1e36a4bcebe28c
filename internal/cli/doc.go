// Package cli turns command-line arguments into an app.Config and maps
// pipeline errors to process exit codes. Flag parsing uses cobra.
package cli
