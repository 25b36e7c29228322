// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package checker runs named validation checks against a mapping library and
// collects their failures into a single error.
package checker

import (
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
)

// Validator holds a list of checks to be performed.
type Validator struct {
	checks []ValidatorCheck
	quiet  bool // whether to suppress check start/finish messages
}

// ValidatorCheck is a named check to be performed.
// The function should return an error if the check fails.
// Use closures to capture the context of the check, such as the library path or
// the processed result.
type ValidatorCheck struct {
	name string
	f    ValidateFunc
}

// NewValidatorCheck creates a new ValidatorCheck with the given name and function.
func NewValidatorCheck(name string, f ValidateFunc) ValidatorCheck {
	return ValidatorCheck{
		name: name,
		f:    f,
	}
}

// ValidateFunc is a function that returns an error if the validation fails.
type ValidateFunc func() error

// NewValidator creates a new Validator with the given checks.
func NewValidator(c ...ValidatorCheck) Validator {
	return Validator{
		checks: c,
	}
}

// NewValidatorQuiet creates a new Validator with the given checks, which
// suppresses the check start/finish messages.
func NewValidatorQuiet(c ...ValidatorCheck) Validator {
	return Validator{
		checks: c,
		quiet:  true,
	}
}

// AddChecks adds additional checks to the Validator.
func (v Validator) AddChecks(c ...ValidatorCheck) Validator {
	v.checks = append(v.checks, c...)
	return v
}

// Validate runs all the checks in the Validator.
// Every check is run, the failures are combined into the returned error.
func (v Validator) Validate() error {
	var errs error

	for _, c := range v.checks {
		if !v.quiet {
			io.WriteString(os.Stdout, "==> Starting check: "+c.name+"\n") // nolint: errcheck
		}

		if err := c.f(); err != nil {
			errs = multierror.Append(errs, err)
		}

		if !v.quiet {
			io.WriteString(os.Stdout, "==> Finished check: "+c.name+"\n") // nolint: errcheck
		}
	}

	return errs
}
