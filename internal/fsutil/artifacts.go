package fsutil

import "path/filepath"

// Artifacts holds the output paths derived from a model's base name.
type Artifacts struct {
	// Flattened is the persisted flattened model.
	Flattened string
	// Network is the persisted automata network object graph.
	Network string
	// Trace is the persisted trace record.
	Trace string
	// XML is the network in the model checker's interchange format.
	XML string
	// Queries holds the generated reachability queries.
	Queries string
}

// ArtifactPaths derives every output path for a model named name in dir.
// Intermediate artifacts are hidden (dot-prefixed).
func ArtifactPaths(dir, name string) Artifacts {
	return Artifacts{
		Flattened: filepath.Join(dir, "."+name+".gsm"),
		Network:   filepath.Join(dir, "."+name+".uppaal"),
		Trace:     filepath.Join(dir, "."+name+".g2u"),
		XML:       filepath.Join(dir, name+".xml"),
		Queries:   filepath.Join(dir, name+".q"),
	}
}

// All returns every artifact path, intermediate ones first.
func (a Artifacts) All() []string {
	return []string{a.Flattened, a.Network, a.Trace, a.XML, a.Queries}
}
