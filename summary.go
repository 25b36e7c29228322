// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sitlib

import (
	"slices"

	sets "github.com/deckarep/golang-set/v2"
)

// Summary describes how effectively a set of values resolves against the mapping table.
type Summary struct {
	TotalDistinct      int      `json:"totalDistinct"`      // TotalDistinct is the number of distinct values seen
	Labels             int      `json:"labels"`             // Labels is the number of distinct values that are already display names
	WrappedIdentifiers int      `json:"wrappedIdentifiers"` // WrappedIdentifiers is the number of distinct values in the wrapped identifier form
	Resolvable         int      `json:"resolvable"`         // Resolvable is the number of wrapped identifiers with an entry in the mapping table
	UnresolvedIDs      []string `json:"unresolvedIds"`      // UnresolvedIDs is the sorted, deduplicated normalized identifiers with no entry
}

// Summarize resolves every distinct value in the supplied slice and partitions the
// results into labels, resolvable wrapped identifiers and unresolved wrapped identifiers.
// Duplicate values are counted once.
func (sl *SitLib) Summarize(values []string) Summary {
	distinct := sets.NewSet[string]()
	for _, v := range values {
		distinct.Add(v)
	}

	summary := Summary{
		TotalDistinct: distinct.Cardinality(),
		UnresolvedIDs: make([]string, 0),
	}
	unresolved := sets.NewSet[string]()
	for v := range distinct.Iter() {
		res := sl.Resolve(v)
		if !res.Wrapped {
			summary.Labels++
			continue
		}
		summary.WrappedIdentifiers++
		if res.Resolved {
			summary.Resolvable++
			continue
		}
		unresolved.Add(res.ID)
	}
	summary.UnresolvedIDs = unresolved.ToSlice()
	slices.Sort(summary.UnresolvedIDs)
	return summary
}

// ResolutionRate returns the percentage of distinct wrapped identifiers that resolve
// to a display name. It returns 0 when no wrapped identifiers were seen, use
// RateApplicable to tell that apart from a genuine zero rate.
func (s Summary) ResolutionRate() float64 {
	if s.WrappedIdentifiers == 0 {
		return 0
	}
	return float64(s.Resolvable) / float64(s.WrappedIdentifiers) * 100
}

// RateApplicable reports whether the resolution rate is meaningful, i.e. at least
// one wrapped identifier was seen.
func (s Summary) RateApplicable() bool {
	return s.WrappedIdentifiers > 0
}
