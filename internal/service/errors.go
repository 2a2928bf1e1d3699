package service

import (
	"errors"
	"fmt"

	"journeo/internal/modules/trip"
)

var (
	ErrValidation  = errors.New("invalid trip request")
	ErrPersistence = errors.New("trip plan not saved")
)

// ValidationError names the offending request field. No dependency has been called.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PersistenceError carries a fully computed plan that the store failed to save.
type PersistenceError struct {
	Plan trip.Record
	Err  error
}

func (e *PersistenceError) Error() string {
	return "save trip plan: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
