// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/marcusjacobson/sitlib"
	"github.com/marcusjacobson/sitlib/internal/auth"
	"github.com/marcusjacobson/sitlib/logger"
	"github.com/marcusjacobson/sitlib/msgraph"
	"github.com/marcusjacobson/sitlib/pssource"
	"github.com/spf13/viper"
)

// buildTable assembles the mapping table from the configured sources, in
// precedence order: cache files, then libraries, then the live tenant.
// Extra cache files are read before the configured ones.
// Source failures degrade the table with a warning, only configuration and
// fetch errors are returned.
func buildTable(ctx context.Context, extraCacheFiles ...string) (*sitlib.SitLib, error) {
	opts := &sitlib.SitLibOptions{
		AllowOverwrite: viper.GetBool("allow-overwrite"),
		Parallelism:    viper.GetInt("parallelism"),
		Logger:         logger.Logger,
	}

	req := sitlib.BuildRequest{
		CacheFiles: append(extraCacheFiles, viper.GetStringSlice("cache")...),
	}

	libs := viper.GetStringSlice("library")
	if len(libs) > 0 {
		refs := make(sitlib.BundleReferences, len(libs))
		for i, lib := range libs {
			refs[i] = sitlib.NewCustomBundleReference(lib)
		}

		fetched, err := refs.FetchWithDependencies(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "could not fetch all libraries with dependencies")
		}

		req.Libraries = fetched.FSs()
	}

	source, err := tenantSource()
	if err != nil {
		return nil, err
	}
	req.Source = source

	return sitlib.Build(ctx, opts, req), nil
}

// tenantSource creates the configured live tenant source, or nil when no
// tenant is configured.
func tenantSource() (sitlib.TenantSource, error) {
	switch name := viper.GetString("tenant"); name {
	case "", "none":
		return nil, nil
	case "graph":
		cred, err := auth.NewToken()
		if err != nil {
			return nil, errors.Wrap(err, "could not get a credential for the graph tenant source")
		}
		return msgraph.NewClient(cred, nil)
	case "powershell":
		return pssource.NewSource(nil)
	default:
		return nil, errors.Newf("unknown tenant source %q, expected \"graph\" or \"powershell\"", name)
	}
}
