// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import "fmt"

var _ error = (*ErrPropertyMustNotBeNil)(nil)
var _ error = (*ErrPropertyMustNotBeEmpty)(nil)

// ErrPropertyMustNotBeNil is an error type that indicates a required property is nil.
type ErrPropertyMustNotBeNil struct {
	PropertyName string
}

// Error implements the error interface for type ErrPropertyMustNotBeNil.
func (e *ErrPropertyMustNotBeNil) Error() string {
	return fmt.Sprintf("property '%s' must not be nil", e.PropertyName)
}

// NewErrPropertyMustNotBeNil creates a new ErrPropertyMustNotBeNil error.
func NewErrPropertyMustNotBeNil(propertyName string) error {
	return &ErrPropertyMustNotBeNil{PropertyName: propertyName}
}

// ErrPropertyMustNotBeEmpty is an error type that indicates a required property is empty.
type ErrPropertyMustNotBeEmpty struct {
	PropertyName string
}

// Error implements the error interface for type ErrPropertyMustNotBeEmpty.
func (e *ErrPropertyMustNotBeEmpty) Error() string {
	return fmt.Sprintf("property '%s' must not be empty", e.PropertyName)
}

// NewErrPropertyMustNotBeEmpty creates a new ErrPropertyMustNotBeEmpty error.
func NewErrPropertyMustNotBeEmpty(propertyName string) error {
	return &ErrPropertyMustNotBeEmpty{PropertyName: propertyName}
}
