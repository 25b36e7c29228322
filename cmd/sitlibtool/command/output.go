// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// printJSON writes the value to stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		cmd.PrintErrf("%s could not marshal output: %v\n", cmd.ErrPrefix(), err)
		os.Exit(1)
	}
	cmd.SetOut(os.Stdout)
	cmd.Println(string(out))
}
