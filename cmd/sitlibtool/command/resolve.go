// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolveCmd represents the resolve command.
var resolveCmd = cobra.Command{
	Use:   "resolve [flags] value...",
	Short: "Resolve wrapped sensitive information type identifiers to display names.",
	Long: `Builds the mapping table from the configured sources and resolves each supplied value.

Values in the form "Custom SIT (<id>)" are replaced with the display name of the
matching mapping entry. Other values, and wrapped identifiers with no entry in the
table, are returned unchanged.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := buildTable(cmd.Context())
		if err != nil {
			cmd.PrintErrf("%s resolve error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		resolutions := lib.ResolveAll(args)

		if viper.GetBool("json") {
			printJSON(cmd, resolutions)
			return
		}

		for _, res := range resolutions {
			switch {
			case res.Resolved:
				pterm.Printf("%s %s %s %s\n",
					pterm.LightGreen("✓"), res.Input, pterm.Gray("=>"), pterm.White(res.Value))
			case res.Wrapped:
				pterm.Printf("%s %s %s\n",
					pterm.Yellow("?"), res.Input, pterm.Gray("no mapping entry for "+res.ID))
			default:
				pterm.Printf("%s %s\n", pterm.Gray("-"), res.Input)
			}
		}
	},
}
