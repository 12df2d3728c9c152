package transform

import (
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// ProfileTransform defines the interface for all what-if profile changes.
// Transforms are composable operations that derive an alternative profile from a
// base one, enabling cost comparison and interactive exploration.
type ProfileTransform interface {
	// Apply returns a modified copy of base. The base profile is never changed.
	Apply(base domain.Profile) (domain.Profile, error)

	// Name returns a short identifier for this transform (e.g., "set_lifestyle").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base domain.Profile) error
}

// ApplyTransforms applies a sequence of transforms to a base profile.
// Each transform receives the output of the previous one.
func ApplyTransforms(base domain.Profile, transforms []ProfileTransform) (domain.Profile, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.Profile{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.Profile{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
