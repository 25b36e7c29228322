// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sitlib

import (
	"context"
	"io/fs"
)

// BuildRequest describes the sources to assemble a mapping table from.
type BuildRequest struct {
	CacheFiles []string     // CacheFiles are paths to mapping cache files, processed first
	Libraries  []fs.FS      // Libraries are mapping libraries, processed after the cache files
	Source     TenantSource // Source is an optional live tenant source, consulted last
	SkipTenant bool         // SkipTenant disables the tenant source even when one is supplied
}

// Build assembles a mapping table from the supplied sources in precedence order:
// cache files first, then libraries, then the live tenant source.
// It never fails. Each source that cannot be used is logged as a warning and
// skipped, and the table built from the remaining sources is returned, even if
// that table is empty.
func Build(ctx context.Context, opts *SitLibOptions, req BuildRequest) *SitLib {
	sl := NewSitLib(opts)

	if len(req.CacheFiles) > 0 {
		if err := sl.InitFromFiles(ctx, req.CacheFiles...); err != nil {
			sl.Options.Logger.Warnw("Build: skipping cache files",
				"error", err,
			)
		}
	}

	// Process libraries one at a time so a broken library does not
	// prevent the remaining ones from contributing entries.
	for i, lib := range req.Libraries {
		if err := sl.Init(ctx, lib); err != nil {
			sl.Options.Logger.Warnw("Build: skipping library",
				"index", i,
				"error", err,
			)
		}
	}

	if req.Source != nil && !req.SkipTenant {
		sl.AddTenantSource(req.Source)
		if err := sl.FetchTenantDefinitions(ctx); err != nil {
			sl.Options.Logger.Warnw("Build: skipping tenant definitions",
				"error", err,
			)
		}
	}

	return sl
}
