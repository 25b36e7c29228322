// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// reportCmd represents the report command.
var reportCmd = cobra.Command{
	Use:   "report [flags] file...",
	Short: "Report how effectively exported scan values resolve against the mapping table.",
	Long: `Builds the mapping table from the configured sources, collects the observed values
from the supplied files and summarizes how they resolve.

Files are read according to their extension: .csv files use the column named by
--column, .json files must contain an array of strings, and any other file is
read as plain text with one value per line.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := buildTable(cmd.Context())
		if err != nil {
			cmd.PrintErrf("%s report error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		column, err := cmd.Flags().GetString("column")
		if err != nil {
			cmd.PrintErrf("%s could not get column flag: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		values, err := collectValues(cmd.Context(), args, column, viper.GetInt("parallelism"))
		if err != nil {
			cmd.PrintErrf("%s report error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		summary := lib.Summarize(values)

		if viper.GetBool("json") {
			printJSON(cmd, summary)
			return
		}

		pterm.Printf("Scanned %s values from %d files, %s distinct\n",
			pterm.Green(fmt.Sprintf("%d", len(values))),
			len(args),
			pterm.Green(fmt.Sprintf("%d", summary.TotalDistinct)))
		pterm.Printf("Labels:              %d\n", summary.Labels)
		pterm.Printf("Wrapped identifiers: %d\n", summary.WrappedIdentifiers)
		pterm.Printf("Resolvable:          %d\n", summary.Resolvable)

		if summary.RateApplicable() {
			pterm.Printf("Resolution rate:     %s\n",
				pterm.Green(fmt.Sprintf("%.1f%%", summary.ResolutionRate())))
		} else {
			pterm.Printf("Resolution rate:     %s\n", pterm.Gray("n/a"))
		}

		switch {
		case len(summary.UnresolvedIDs) > 0:
			pterm.Warning.Printf("%d identifiers have no mapping entry:\n", len(summary.UnresolvedIDs))
			for _, id := range summary.UnresolvedIDs {
				pterm.Printf("  %s %s\n", pterm.Yellow("?"), id)
			}
		case summary.WrappedIdentifiers > 0:
			pterm.Success.Println("All wrapped identifiers resolve")
		}
	},
}

func init() {
	reportCmd.Flags().
		StringP("column", "c", "Classification", "CSV column containing the observed values")
}

// collectValues reads the observed values from each file, scanning files in parallel.
func collectValues(ctx context.Context, paths []string, column string, parallelism int) ([]string, error) {
	if parallelism < 1 {
		parallelism = 4 // same default as the library build
	}

	var (
		mu     sync.Mutex
		values []string
	)

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(parallelism)
	for _, path := range paths {
		path := path
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}
			vals, err := valuesFromFile(path, column)
			if err != nil {
				return errors.Wrapf(err, "could not read values from %s", path)
			}
			mu.Lock()
			defer mu.Unlock()
			values = append(values, vals...)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return values, nil
}

// valuesFromFile extracts the observed values from a single file based on its extension.
func valuesFromFile(path, column string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return valuesFromCSV(data, column)
	case ".json":
		return valuesFromJSON(data)
	default:
		return valuesFromLines(data), nil
	}
}

func valuesFromCSV(data []byte, column string) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	// Export-Csv prepends a `#TYPE ...` line unless -NoTypeInformation is passed.
	r.Comment = '#'

	records, err := r.ReadAll()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if len(records) == 0 {
		return nil, nil
	}

	idx := -1
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, errors.Newf("column %q not found in CSV header", column)
	}

	values := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if v := strings.TrimSpace(rec[idx]); v != "" {
			values = append(values, v)
		}
	}

	return values, nil
}

func valuesFromJSON(data []byte) ([]string, error) {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "expected a JSON array of strings")
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	return values, nil
}

func valuesFromLines(data []byte) []string {
	var values []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if v := strings.TrimSpace(sc.Text()); v != "" {
			values = append(values, v)
		}
	}

	return values
}
