package scheduler

import "github.com/vk/sc2ta/internal/uppaal"

// Scheduler encodes one scheduling policy into a network.
//
// # Usage Pattern
//
//	s := scheduler.New(policy)
//	if err := s.Bind(net, names, order); err != nil { ... }
//	for _, t := range order {
//	    sync := s.StepSync(t) // label for t's step edges, may be ""
//	    ...
//	}
//	if err := s.Encode(net, names); err != nil { ... }
type Scheduler interface {
	// Policy returns the policy this scheduler implements.
	Policy() Policy

	// Bind declares the scheduler's global channels for the component
	// templates, given in step order. It must be called once, before any
	// component template is built.
	Bind(net *uppaal.Network, names *uppaal.Namer, order []string) error

	// StepSync returns the synchronisation label the step edges of the
	// named template must carry, or "" when steps are unsynchronized.
	StepSync(template string) string

	// SelfStabilizing reports whether component templates maintain the
	// global stability flag themselves.
	SelfStabilizing() bool

	// Encode adds the coordinator templates, if the policy has any. It is
	// called after every component template has been added.
	Encode(net *uppaal.Network, names *uppaal.Namer) error
}
