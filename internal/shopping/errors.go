package shopping

import (
	"errors"
	"fmt"
)

// Problem names a single invalid input field.
type Problem int

const (
	EmptyName Problem = iota + 1
	EmptyAmount
)

const (
	msgEmptyName   = "Please enter a valid name"
	msgEmptyAmount = "Please enter a valid amount"
	msgEmptyBoth   = "Please enter valid data"
)

func (p Problem) String() string {
	switch p {
	case EmptyName:
		return "empty name"
	case EmptyAmount:
		return "empty amount"
	default:
		return "unknown"
	}
}

// ValidationError carries every problem found in the add-item inputs.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid item: " + e.Problems[0].String()
	}
	return fmt.Sprintf("invalid item: %d problems", len(e.Problems))
}

func (e *ValidationError) Has(p Problem) bool {
	for _, got := range e.Problems {
		if got == p {
			return true
		}
	}
	return false
}

// Messages returns the user-facing lines for the problems, in display order.
func (e *ValidationError) Messages() []string {
	var msgs []string
	if e.Has(EmptyName) && e.Has(EmptyAmount) {
		msgs = append(msgs, msgEmptyBoth)
	}
	if e.Has(EmptyName) {
		msgs = append(msgs, msgEmptyName)
	}
	if e.Has(EmptyAmount) {
		msgs = append(msgs, msgEmptyAmount)
	}
	return msgs
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// PersistenceError wraps a failed store read or write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func IsPersistence(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}
