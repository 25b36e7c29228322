// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package library

import (
	"os"

	"github.com/marcusjacobson/sitlib"
	"github.com/marcusjacobson/sitlib/internal/doc"
	"github.com/spf13/cobra"
)

// documentCmd represents the library document command.
var documentCmd = cobra.Command{
	Use:   "document [flags] dir",
	Short: "Generate Markdown documentation for a mapping library member.",
	Long: `Fetches the mapping library at the supplied path, together with its declared
dependencies, and writes a Markdown README for it to stdout.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		thisRef := sitlib.NewCustomBundleReference(args[0])
		bundles, err := sitlib.BundleReferences{thisRef}.FetchWithDependencies(cmd.Context())
		if err != nil {
			cmd.PrintErrf(
				"%s could not fetch the library with dependencies: %v\n",
				cmd.ErrPrefix(),
				err,
			)
			os.Exit(1)
		}

		if err := doc.SitLibReadmeMd(cmd.Context(), os.Stdout, bundles...); err != nil {
			cmd.PrintErrf("%s library document error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
	},
}
