// Copyright (c) Microsoft Corporation 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package convert

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/marcusjacobson/sitlib/assets"
	"github.com/marcusjacobson/sitlib/internal/processor"
	"github.com/marcusjacobson/sitlib/internal/tools/filename"
	"github.com/marcusjacobson/sitlib/to"
	"github.com/spf13/cobra"
)

const (
	// directoryPermissions is the permission to use when creating directories.
	directoryPermissions = 0755
	// filePermissions is the permission to use when writing files.
	filePermissions = 0644
)

var convertCmdOverwrite bool

// ConvertBaseCmd represents the base convert command.
var ConvertBaseCmd = cobra.Command{
	Use: "convert [flags] sourceDir destDir",
	Short: "Converts legacy mapping cache files from the source directory " +
		"and writes canonical library files to the destination directory.",
	Long: `Reads mapping cache files in any of the accepted shapes (identifier hashtables,
entry arrays or sensitiveInformationTypes documents, JSON or YAML) from the source
directory and writes them to the destination directory as canonical
<name>.sit_mapping.json library files, sorted by identifier.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := convertFiles(args[0], args[1], cmd)
		if err != nil {
			cmd.PrintErrf("%s cache file conversion error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
	},
}

func init() {
	ConvertBaseCmd.PersistentFlags().
		BoolVarP(&convertCmdOverwrite, "overwrite", "o", false, "Overwrite existing files in the destination directory")
}

func convertFiles(src, dst string, cmd *cobra.Command) error {
	if _, err := os.ReadDir(dst); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(dst, directoryPermissions); err != nil {
				return errors.Wrap(err, "convert: error creating destination directory")
			}
		} else {
			return errors.Wrap(err, "convert: error reading destination directory")
		}
	}

	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error { //nolint:wrapcheck
		if err != nil {
			return err //nolint:wrapcheck
		}

		if d.IsDir() {
			return nil
		}

		if !slices.Contains(processor.SupportedFileExtensions, strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		if d.Name() == processor.SitLibraryMetadataFile {
			return nil
		}

		bytes, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "readFile error: '%s'", path)
		}

		processedBytes, err := convertData(bytes, d.Name())
		if err != nil {
			return errors.Wrapf(err, "conversion error: '%s'", path)
		}

		destination := filepath.Join(dst, filename.Generate(d.Name())+".json")
		cmd.Printf("Processing %s => %s\n", path, destination)

		if _, err := os.Stat(destination); err == nil && !convertCmdOverwrite {
			return errors.Newf("destination file already exists and overwrite not set: '%s'", destination)
		}

		if err := os.WriteFile(destination, processedBytes, filePermissions); err != nil {
			return errors.Wrapf(err, "error writing %s", destination)
		}

		return nil
	})
}

// convertData decodes a cache file in any of the accepted shapes and re-encodes
// it in the canonical shape with normalized identifiers. Entries that cannot be
// used are conversion errors, not warnings, the source file should be fixed
// instead.
func convertData(data []byte, name string) ([]byte, error) {
	res := processor.NewResult()
	if err := processor.ProcessDataFile(res, data, name); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if len(res.Warnings) > 0 {
		return nil, errors.Join(res.Warnings...)
	}

	defs := make(map[string]*assets.SitDefinition, len(res.Definitions))
	for id, def := range res.Definitions {
		nd := *def
		nd.ID = to.Ptr(id)
		defs[id] = &nd
	}

	jsonBytes, err := json.MarshalIndent(assets.NewSitDefinitionDocument(defs), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "error marshaling canonical document")
	}

	return append(jsonBytes, '\n'), nil
}
