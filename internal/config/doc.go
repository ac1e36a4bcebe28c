// Package config defines the format-agnostic boundary between the pipeline
// and the files it reads and writes. The pipeline only ever talks to these
// interfaces; concrete implementations, such as for HCL, are provided in
// separate packages.
package config
