package vault

import "fmt"

// LifecycleError reports an invalid vault state transition.
type LifecycleError struct {
	Code    string
	Message string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewLifecycleError(msg string) error {
	return &LifecycleError{
		Code:    "lifecycleError",
		Message: msg,
	}
}
