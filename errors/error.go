package errors

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrHandlerPanic   = errors.New("argtree: panic during handler call")
	ErrInvalidHandler = errors.New("argtree: invalid handler")
)

// Errors collects registration failures so that a dispatcher can refuse to run
// once any of them occurred.
type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.errors)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}

func newMessage(format string, args ...any) string {
	return "argtree: " + fmt.Sprintf(format, args...)
}
