package website

import "fmt"

// NotFoundError is returned for unknown or malformed website ids.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("website not found: %s", e.ID)
}

// GenerateError represents a failure to build site assets.
type GenerateError struct {
	Message string
	Cause   error
}

func (e *GenerateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("website generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("website generation failed: %s", e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// EditError represents a failed component rewrite.
type EditError struct {
	Message string
	Cause   error
}

func (e *EditError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("component edit failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("component edit failed: %s", e.Message)
}

func (e *EditError) Unwrap() error {
	return e.Cause
}
