package cli

import (
	"errors"

	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/unfold"
	"github.com/vk/sc2ta/internal/validate"
)

// ExitFor maps a pipeline error to the exit code reported to the shell.
// An ExitError is returned unchanged; nil maps to nil.
func ExitFor(err error) *ExitError {
	if err == nil {
		return nil
	}

	var (
		exitErr      *ExitError
		selectionErr *model.SelectionError
		validErr     *validate.ValidationError
		identityErr  *unfold.IdentityError
	)
	code := ExitFailure
	switch {
	case errors.As(err, &exitErr):
		return exitErr
	case errors.As(err, &selectionErr):
		code = ExitSelection
	case errors.As(err, &validErr):
		code = ExitValidation
	case errors.As(err, &identityErr):
		code = ExitIdentity
	}
	return &ExitError{Code: code, Message: err.Error()}
}
