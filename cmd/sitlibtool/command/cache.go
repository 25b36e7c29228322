// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/marcusjacobson/sitlib/assets"
	"github.com/marcusjacobson/sitlib/to"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheFilePermissions is the permission to use when writing the cache file.
const cacheFilePermissions = 0644

// cacheBaseCmd is the base command for cache file operations.
var cacheBaseCmd = cobra.Command{
	Use:   "cache",
	Short: "Manage mapping cache files.",
	Long:  `Operations on the local mapping cache file.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.PrintErrf("%s cache command: missing required child command\n", cmd.ErrPrefix())
		cmd.Usage() // nolint: errcheck
		os.Exit(1)
	},
}

// cacheUpdateCmd represents the cache update command.
var cacheUpdateCmd = cobra.Command{
	Use:   "update [flags] [file]",
	Short: "Rebuild the mapping cache file from the configured sources.",
	Long: `Builds the mapping table from the configured sources and writes it back to the
cache file in the canonical shape, sorted by identifier.

Entries from the existing cache keep precedence over library and tenant entries,
so local display name overrides survive the refresh while newly published
sensitive information types are appended. The file argument defaults to the
first configured cache file.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cacheFiles := viper.GetStringSlice("cache")

		target := ""
		switch {
		case len(args) == 1:
			target = args[0]
		case len(cacheFiles) > 0:
			target = cacheFiles[0]
		default:
			cmd.PrintErrf("%s cache update: no cache file supplied or configured\n", cmd.ErrPrefix())
			os.Exit(1)
		}

		// The target keeps top precedence even when it is not a configured source.
		var extra []string
		if _, err := os.Stat(target); err == nil && !slices.Contains(cacheFiles, target) {
			extra = append(extra, target)
		}

		lib, err := buildTable(cmd.Context(), extra...)
		if err != nil {
			cmd.PrintErrf("%s cache update error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		defs := make(map[string]*assets.SitDefinition, lib.Len())
		for id, ent := range lib.Entries() {
			def := assets.NewSitDefinition(ent.ID, ent.DisplayName)
			if ent.Publisher != "" {
				def.Publisher = to.Ptr(ent.Publisher)
			}
			if ent.Type != "" {
				def.Type = to.Ptr(ent.Type)
			}
			defs[id] = def
		}

		out, err := json.MarshalIndent(assets.NewSitDefinitionDocument(defs), "", "  ")
		if err != nil {
			cmd.PrintErrf("%s could not marshal cache file: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		if err := os.WriteFile(target, append(out, '\n'), cacheFilePermissions); err != nil {
			cmd.PrintErrf("%s could not write cache file: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		pterm.Success.Printf("Wrote %d mapping entries to %s\n", lib.Len(), target)
	},
}

func init() {
	cacheBaseCmd.AddCommand(&cacheUpdateCmd)
}
