// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeID returns the canonical lookup form of a sensitive information
// type identifier. GUIDs are accepted in any of the forms understood by
// uuid.Parse (plain, braced, urn prefixed, any case) and are canonicalized
// to the lowercase hyphenated form. Anything else is trimmed and lowercased.
//
// All map keys and all lookups in this module go through this function so
// that identifier comparison is case-insensitive.
func NormalizeID(id string) string {
	trimmed := strings.TrimSpace(id)

	if u, err := uuid.Parse(trimmed); err == nil {
		return u.String()
	}

	return strings.ToLower(trimmed)
}

// IsGUID reports whether the supplied identifier parses as a GUID.
// Tenant published sensitive information types always use GUID identifiers,
// lab fixtures sometimes use shorter tokens.
func IsGUID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}
