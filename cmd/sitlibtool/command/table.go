// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tableCmd represents the table command.
var tableCmd = cobra.Command{
	Use:   "table [flags]",
	Short: "Build and print the merged mapping table.",
	Long: `Builds the mapping table from the configured sources and prints one line per entry,
sorted by identifier.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		lib, err := buildTable(cmd.Context())
		if err != nil {
			cmd.PrintErrf("%s table error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		if viper.GetBool("json") {
			printJSON(cmd, lib.Entries())
			return
		}

		for _, id := range lib.IDs() {
			ent := lib.Entry(id)
			pterm.Printf("%s  %s %s\n",
				pterm.LightCyan(ent.ID), ent.DisplayName, pterm.Gray("("+string(ent.Source)+")"))
		}
		pterm.Printf("%s mapping entries\n", pterm.Green(fmt.Sprintf("%d", lib.Len())))
	},
}
