package expr

import "fmt"

// FormError reports an expression whose syntax form is not supported.
type FormError struct {
	Construct string
	Detail    string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("unsupported %s: %s", e.Construct, e.Detail)
}
