// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package library

import (
	"os"

	"github.com/marcusjacobson/sitlib/internal/processor"
	"github.com/marcusjacobson/sitlib/internal/tools/checker"
	"github.com/marcusjacobson/sitlib/internal/tools/checks"
	"github.com/spf13/cobra"
)

// checkCmd represents the library check command.
var checkCmd = cobra.Command{
	Use:   "check [flags] dir",
	Short: "Check the validity of a mapping library member.",
	Long: `Processes the mapping library at the supplied path and validates it.

The checks ensure that every identifier is a GUID, that the metadata declares a
name and display name, that every mapping file follows the naming convention and
that processing produced no warnings (no duplicates, no incomplete entries).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res := processor.NewResult()
		if err := processor.NewClient(os.DirFS(args[0])).Process(res); err != nil {
			cmd.PrintErrf("%s library process error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		chk := checker.NewValidator(
			checks.CheckMappingFileNames(args[0]),
			checks.CheckIdentifiersAreGuids(res),
			checks.CheckProcessesCleanly(res),
			checks.CheckMetadataIsValid(res),
		)
		if err := chk.Validate(); err != nil {
			cmd.PrintErrf("%s library check error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
	},
}
