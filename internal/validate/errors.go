package validate

import (
	"fmt"
	"strings"
)

// Violation is one unsupported construct or structural anomaly.
type Violation struct {
	// Component is the name of the component the problem was found in.
	Component string
	// Element names the offending element inside the component, e.g.
	// `transition "go"`. It may be empty.
	Element string
	Message string
}

func (v Violation) String() string {
	if v.Element == "" {
		return fmt.Sprintf("component %q: %s", v.Component, v.Message)
	}
	return fmt.Sprintf("component %q: %s: %s", v.Component, v.Element, v.Message)
}

// ValidationError holds every violation found in one check.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, v.String())
	}
	return fmt.Sprintf("model validation failed:\n- %s", strings.Join(lines, "\n- "))
}
