package ai

import "fmt"

// ModelCallError reports a failed call to the embedding or completion provider.
type ModelCallError struct {
	Op  string
	Err error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Op, e.Err)
}

func (e *ModelCallError) Unwrap() error {
	return e.Err
}

func modelCallError(op string, err error) error {
	return &ModelCallError{Op: op, Err: err}
}
