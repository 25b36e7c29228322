// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package sitlib builds a mapping table of sensitive information type identifiers
// to display names, and resolves the wrapped identifier placeholders found in
// audit and DLP exports back to human readable labels.
// The table is assembled from local cache files and mapping libraries, optionally
// enriched with live definitions from a tenant.
//
// Earlier sources win: an entry loaded from a cache file is never replaced by a
// stale tenant definition unless AllowOverwrite is set.
// It is up to the caller to decide which sources to supply, a table built from
// no sources simply resolves nothing.
package sitlib
