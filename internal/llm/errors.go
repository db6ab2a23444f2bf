package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse means the vendor answered without any text.
var ErrEmptyResponse = errors.New("model returned no text")

// ErrStatus is a non-success reply from a vendor API.
type ErrStatus struct {
	Provider string
	Code     int
	Err      error
}

func (e *ErrStatus) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ErrStatus) Unwrap() error { return e.Err }
