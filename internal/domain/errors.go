package domain

import (
	"errors"
	"fmt"
)

// DataLoadError reports missing or malformed reference data. It is fatal at startup.
type DataLoadError struct {
	Source string // file or table the problem was found in
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reference data %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("reference data %s: %s", e.Source, e.Reason)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError creates a DataLoadError
func NewDataLoadError(source, reason string, err error) error {
	return &DataLoadError{Source: source, Reason: reason, Err: err}
}

// ValidationError reports bad end-user input. Field names the offending input so the
// presentation layer can point the user at it.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// LookupError reports a reference table miss. With validated input it is unreachable,
// so it always signals an internal contract violation.
type LookupError struct {
	Table string
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s entry for %s", e.Table, e.Key)
}

// PredictionError wraps a LookupError that escaped the predictor
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Field names used in ValidationError
const (
	FieldAge           = "age"
	FieldRegion        = "region"
	FieldConditions    = "chronic_conditions"
	FieldFamilyHistory = "family_history"
	FieldLifestyle     = "lifestyle_score"
	FieldInsurance     = "has_insurance"
)
