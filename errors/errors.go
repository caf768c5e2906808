/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrClassMissing is returned when a command is issued without a class name
	ErrClassMissing = errors.New("class name missing")

	// ErrClassNotFound is returned when a class name does not resolve to a known variant
	ErrClassNotFound = errors.New("class doesn't exist")

	// ErrIdMissing is returned when a command requiring an id is issued without one
	ErrIdMissing = errors.New("instance id missing")

	// ErrInstanceNotFound is returned when no entity is stored under a composite key
	ErrInstanceNotFound = errors.New("no instance found")

	// ErrAttributeMissing is returned when update is issued without an attribute name
	ErrAttributeMissing = errors.New("attribute name missing")

	// ErrValueMissing is returned when update is issued without a value
	ErrValueMissing = errors.New("value missing")

	// ErrUnknownAttribute is returned when an attribute is not part of the variant schema
	ErrUnknownAttribute = errors.New("attribute doesn't exist")

	// ErrProtectedAttribute is returned by setters for id and timestamp fields
	ErrProtectedAttribute = errors.New("attribute is read-only")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrLoadCorrupt is returned when the durable mirror exists but cannot be decoded
	ErrLoadCorrupt = errors.New("backing store is corrupt")
)

// ClassNotFoundError carries the class name that failed to resolve
type ClassNotFoundError struct {
	Class string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class %q doesn't exist", e.Class)
}

func (e *ClassNotFoundError) Is(target error) bool {
	return target == ErrClassNotFound
}

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrInstanceNotFound
}

// UnknownAttributeError names the attribute a variant does not define
type UnknownAttributeError struct {
	Class     string
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("%s has no attribute %q", e.Class, e.Attribute)
}

func (e *UnknownAttributeError) Is(target error) bool {
	return target == ErrUnknownAttribute
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// CorruptError describes why a durable mirror could not be loaded.
// Key is empty when the document as a whole is unreadable.
type CorruptError struct {
	Source string
	Key    string
	Reason string
	Err    error
}

func (e *CorruptError) Error() string {
	msg := fmt.Sprintf("corrupt store %s", e.Source)
	if e.Key != "" {
		msg += fmt.Sprintf(" at %q", e.Key)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptError) Is(target error) bool {
	return target == ErrLoadCorrupt
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewClassNotFoundError creates a new ClassNotFoundError
func NewClassNotFoundError(class string) error {
	return &ClassNotFoundError{Class: class}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewUnknownAttributeError creates a new UnknownAttributeError
func NewUnknownAttributeError(class, attribute string) error {
	return &UnknownAttributeError{Class: class, Attribute: attribute}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewCorruptError creates a new CorruptError
func NewCorruptError(source, key, reason string, cause error) error {
	return &CorruptError{Source: source, Key: key, Reason: reason, Err: cause}
}

// IsNotFound checks if an error is an instance not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrInstanceNotFound)
}

// IsClassNotFound checks if an error is a class not found error
func IsClassNotFound(err error) bool {
	return errors.Is(err, ErrClassNotFound)
}

// IsUnknownAttribute checks if an error is an unknown attribute error
func IsUnknownAttribute(err error) bool {
	return errors.Is(err, ErrUnknownAttribute)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsLoadCorrupt checks if an error is a corrupt store error
func IsLoadCorrupt(err error) bool {
	return errors.Is(err, ErrLoadCorrupt)
}
