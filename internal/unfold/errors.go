package unfold

import "fmt"

// IdentityError reports that a reloaded package holds no component
// structurally equal to the one that was saved. It always points at a bug
// in the unfolder or the persistence format, never at user input.
type IdentityError struct {
	Component string
	Diff      string
}

func (e *IdentityError) Error() string {
	if e.Diff == "" {
		return fmt.Sprintf("internal consistency fault: reloaded model has no component %q", e.Component)
	}
	return fmt.Sprintf("internal consistency fault: reloaded component %q differs from the unfolded one (-want +got):\n%s", e.Component, e.Diff)
}
