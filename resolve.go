// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sitlib

import (
	"regexp"

	"github.com/marcusjacobson/sitlib/assets"
)

// wrappedSitPattern matches the placeholder form that audit exports emit for a
// custom sensitive information type, e.g. "Custom SIT (8d5a7c3e-9f41-4b6a-a7e2-1c9d23b0f5a4)".
// The single capture group is the raw identifier between the parentheses.
var wrappedSitPattern = regexp.MustCompile(`^Custom SIT \(([0-9A-Fa-f-]+)\)$`)

// Resolution is the outcome of resolving a single value against the mapping table.
type Resolution struct {
	Input    string `json:"input"`        // Input is the value as supplied
	Value    string `json:"value"`        // Value is the resolved display name, or the input unchanged
	ID       string `json:"id,omitempty"` // ID is the normalized identifier extracted from a wrapped value, empty otherwise
	Wrapped  bool   `json:"wrapped"`      // Wrapped reports whether the input matched the wrapped identifier pattern
	Resolved bool   `json:"resolved"`     // Resolved reports whether a display name was found in the mapping table
}

// Resolve resolves a single value against the mapping table.
// A value that matches the wrapped identifier pattern is replaced with the display
// name of the matching entry. Values that do not match the pattern, and wrapped
// identifiers with no entry in the table, are returned unchanged.
func (sl *SitLib) Resolve(value string) Resolution {
	res := Resolution{
		Input: value,
		Value: value,
	}
	m := wrappedSitPattern.FindStringSubmatch(value)
	if m == nil {
		return res
	}
	res.Wrapped = true
	res.ID = assets.NormalizeID(m[1])
	if ent := sl.Entry(res.ID); ent != nil {
		res.Value = ent.DisplayName
		res.Resolved = true
	}
	return res
}

// ResolveAll resolves each value in order and returns one resolution per value.
func (sl *SitLib) ResolveAll(values []string) []Resolution {
	results := make([]Resolution, 0, len(values))
	for _, v := range values {
		results = append(results, sl.Resolve(v))
	}
	return results
}

// NormalizeID returns the canonical form of a sensitive information type identifier.
// GUIDs are canonicalized to lowercase hyphenated form, with braces, URN prefixes
// and surrounding whitespace removed. Other values are trimmed and lowercased.
func NormalizeID(id string) string {
	return assets.NormalizeID(id)
}
