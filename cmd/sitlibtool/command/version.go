// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = cobra.Command{
	Use:   "version",
	Short: "Show sitlibtool version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("sitlibtool " + version)
	},
}
