package scheduler

import (
	"fmt"
	"strings"
)

// Policy is the inter-component scheduling discipline of a run.
type Policy int

const (
	// Fixed steps components in a fixed round-robin order.
	Fixed Policy = iota
	// Random leaves the order to the model checker's interleaving.
	Random
)

func (p Policy) String() string {
	switch p {
	case Fixed:
		return "fixed"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name, ignoring case.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return Fixed, nil
	case "random":
		return Random, nil
	default:
		return 0, fmt.Errorf("unknown scheduler policy %q (want fixed or random)", s)
	}
}

// New returns the scheduler implementing p.
func New(p Policy) Scheduler {
	if p == Random {
		return &RandomScheduler{}
	}
	return &FixedScheduler{}
}
