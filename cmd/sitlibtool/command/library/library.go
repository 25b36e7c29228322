// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package library

import (
	"github.com/spf13/cobra"
)

// LibraryCmd represents the library command.
var LibraryCmd = cobra.Command{
	Use:   "library [flags]",
	Short: "Perform operations on a mapping library member.",
	Long:  `Primarily used as a tool to check the validity of a library member and generate its documentation.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.PrintErrf("%s library command: missing required child command\n", cmd.ErrPrefix())
		cmd.Usage() // nolint: errcheck
	},
}

func init() {
	LibraryCmd.AddCommand(&checkCmd)
	LibraryCmd.AddCommand(&documentCmd)
}
