// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package processor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/marcusjacobson/sitlib/assets"
	"github.com/marcusjacobson/sitlib/internal/environment"
	"github.com/marcusjacobson/sitlib/to"
)

// These are the file name components for the mapping file types.
const (
	MappingFileType     = "sit_mapping"
	mappingFileSuffix   = ".+\\." + MappingFileType + "\\.(?:json|yaml|yml)$"
	canonicalEntriesKey = "sensitiveInformationTypes"
)

const (
	// SitLibraryMetadataFile is the name of the metadata file that describes a mapping library.
	SitLibraryMetadataFile = "sit_library_metadata.json"
)

// SupportedFileExtensions are the file extensions the processor will read.
var SupportedFileExtensions = []string{".json", ".yaml", ".yml"}

var MappingFileRegex = regexp.MustCompile(mappingFileSuffix)

var (
	// ErrEntryAlreadyExists is returned when a mapping entry already exists in the result.
	ErrEntryAlreadyExists = errors.New("mapping entry already exists in the result")

	// ErrEntryIncomplete is returned when a mapping entry is missing an identifier or a display name.
	ErrEntryIncomplete = errors.New("mapping entry is missing an identifier or a display name")

	// ErrUnmarshaling is returned when unmarshaling fails.
	ErrUnmarshaling = errors.New("error converting data from YAML/JSON, please check the file format and content")

	// ErrUnknownShape is returned when a mapping file is well formed YAML/JSON but not one of the accepted shapes.
	ErrUnknownShape = errors.New("mapping file shape not recognized, expected an object of identifier/display name pairs, an array of entries, or a sensitiveInformationTypes document")

	// ErrProcessingFile is returned when there is an error processing the file.
	ErrProcessingFile = errors.New("error processing file, please check the file format and content")
)

// NewErrEntryAlreadyExists creates a new error indicating that a mapping entry already exists in the result.
func NewErrEntryAlreadyExists(file, id string) error {
	return fmt.Errorf("%w: identifier `%s` in file %s", ErrEntryAlreadyExists, id, file)
}

// NewErrEntryIncomplete creates a new error indicating that a mapping entry could not be used.
func NewErrEntryIncomplete(file, detail string) error {
	return fmt.Errorf("%w: file %s: %s", ErrEntryIncomplete, file, detail)
}

// NewErrorUnmarshaling creates a new error indicating that unmarshaling failed.
func NewErrorUnmarshaling(detail string) error {
	return fmt.Errorf("%w: %s", ErrUnmarshaling, detail)
}

// Result is the structure that gets built by scanning the library files.
// Definitions are keyed by normalized identifier.
// Warnings collects the recoverable problems encountered while scanning,
// the caller decides how to surface them.
type Result struct {
	Definitions map[string]*assets.SitDefinition
	Metadata    *LibMetadata
	Warnings    []error
}

// NewResult creates a new Result struct with an initialized definitions map.
func NewResult() *Result {
	return &Result{
		Definitions: make(map[string]*assets.SitDefinition),
		Metadata:    nil,
		Warnings:    make([]error, 0),
	}
}

func (res *Result) warn(err error) {
	res.Warnings = append(res.Warnings, err)
}

// addDefinition adds a definition to the result, keyed by its normalized identifier.
// Incomplete entries and duplicates within the result are recorded as warnings,
// the first occurrence of an identifier wins.
func (res *Result) addDefinition(file string, sd *assets.SitDefinition) {
	if err := assets.ValidateSitDefinition(sd); err != nil {
		res.warn(NewErrEntryIncomplete(file, err.Error()))
		return
	}

	id := sd.NormalizedID()
	if _, exists := res.Definitions[id]; exists {
		res.warn(NewErrEntryAlreadyExists(file, id))
		return
	}

	res.Definitions[id] = sd
}

// processFunc is the function signature that is used to process different types of lib file.
type processFunc func(result *Result, data Unmarshaler, name string) error

// Client is the client that is used to process the library files.
type Client struct {
	fs fs.FS
}

// NewClient creates a new Client with the provided filesystem.
func NewClient(fs fs.FS) *Client {
	return &Client{
		fs: fs,
	}
}

// Metadata returns the metadata of the library.
// A missing metadata file is not an error, an empty metadata is returned instead.
func (client *Client) Metadata() (*LibMetadata, error) {
	metadataFile, err := client.fs.Open(SitLibraryMetadataFile)

	var pe *fs.PathError

	if errors.As(err, &pe) {
		return &LibMetadata{
			Name:         "",
			DisplayName:  "",
			Description:  "",
			Dependencies: make([]LibMetadataDependency, 0),
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("ProcessorClient.Metadata: error opening metadata file: %w", err)
	}

	defer metadataFile.Close() // nolint: errcheck

	data, err := io.ReadAll(metadataFile)
	if err != nil {
		return nil, fmt.Errorf("ProcessorClient.Metadata: error reading metadata file: %w", err)
	}

	unmar := NewUnmarshaler(data, ".json")
	metadata := new(LibMetadata)

	err = unmar.Unmarshal(metadata)
	if err != nil {
		return nil, errors.Join(NewErrorUnmarshaling(SitLibraryMetadataFile), err)
	}

	for _, dep := range metadata.Dependencies {
		if dep.CustomURL == "" {
			return nil, fmt.Errorf(
				"ProcessorClient.Metadata: invalid dependency, custom_url must be set: %v",
				dep,
			)
		}
	}

	return metadata, nil
}

// Process reads the library files and processes them into a Result.
// Pass in a pointer to a Result struct to store the processed data,
// create a new *Result with NewResult().
// Recoverable problems (unreadable or malformed files, incomplete entries,
// duplicate identifiers) are appended to Result.Warnings and do not stop the scan.
func (client *Client) Process(res *Result) error {
	// Open the metadata file and store contents in the result
	metad, err := client.Metadata()
	if err != nil {
		return fmt.Errorf("ProcessorClient.Process: error getting metadata: %w", err)
	}

	res.Metadata = metad

	// Walk the lib FS and process files
	if err := fs.WalkDir(client.fs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("ProcessorClient.Process: error walking directory %s: %w", path, err)
		}
		// Skip directories
		if d.IsDir() {
			return nil
		}
		// Skip files where path contains base of the `SITLIB_DIR`.
		sitLibDirBase := filepath.Base(environment.SitLibDir())
		if strings.Contains(path, sitLibDirBase) {
			return nil
		}
		// Skip files that are not json or yaml
		if !slices.Contains(SupportedFileExtensions, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		file, err := client.fs.Open(path)
		if err != nil {
			res.warn(fmt.Errorf("ProcessorClient.Process: error opening file %s: %w", path, err))
			return nil
		}
		if err := classifyLibFile(res, file, path); err != nil {
			res.warn(err)
		}
		return nil
	}); err != nil {
		return err //nolint:wrapcheck
	}

	return nil
}

// ProcessDataFile processes a single mapping file that has already been read into
// memory, outside of a library walk. This is how explicit cache files are loaded,
// their names do not need to follow the library file naming convention.
// Files without a recognized extension are treated as JSON.
func ProcessDataFile(res *Result, data []byte, name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(SupportedFileExtensions, ext) {
		ext = ".json"
	}

	unmar := NewUnmarshaler(data, ext)

	if err := processMappingFile(res, unmar, name); err != nil {
		return errors.Join(ErrProcessingFile, err)
	}

	return nil
}

// classifyLibFile identifies the supplied file and calls the appropriate processFunc.
func classifyLibFile(res *Result, file fs.File, path string) error {
	err := error(nil)

	// process by file type
	switch n := strings.ToLower(filepath.Base(path)); {
	// if the file is a mapping file
	case MappingFileRegex.MatchString(n):
		err = readAndProcessFile(res, file, path, processMappingFile)
	}

	if err != nil {
		err = errors.Join(
			ErrProcessingFile, err,
		)
	}

	return err
}

// processMappingFile is a processFunc that decodes the mapping file bytes in any of
// the accepted shapes and adds the entries to the result.
func processMappingFile(res *Result, unmar Unmarshaler, name string) error {
	var doc any
	if err := unmar.Unmarshal(&doc); err != nil {
		return errors.Join(NewErrorUnmarshaling("mapping file "+name), err)
	}

	switch v := doc.(type) {
	case []any:
		processEntryList(res, name, v)
	case map[string]any:
		if entries, ok := v[canonicalEntriesKey]; ok {
			list, ok := entries.([]any)
			if !ok {
				return fmt.Errorf("%w: %s value in file %s is not an array", ErrUnknownShape, canonicalEntriesKey, name)
			}

			processCanonicalEntries(res, name, list)

			return nil
		}

		processIdentifierMap(res, name, v)
	default:
		return fmt.Errorf("%w: file %s", ErrUnknownShape, name)
	}

	return nil
}

// processIdentifierMap handles the legacy hashtable shape,
// where each key is an identifier and each value is its display name.
func processIdentifierMap(res *Result, file string, m map[string]any) {
	for id, v := range m {
		label, ok := v.(string)
		if !ok || strings.TrimSpace(label) == "" || strings.TrimSpace(id) == "" {
			res.warn(NewErrEntryIncomplete(file, fmt.Sprintf("identifier `%s`", id)))
			continue
		}

		res.addDefinition(file, assets.NewSitDefinition(id, label))
	}
}

// Field name aliases accepted in the entry list shape. PowerShell exports use
// title case property names, hand written files tend to use camel case.
var (
	identifierAliases = []string{"id", "guid"}
	labelAliases      = []string{"name", "displayName", "display_name"}
)

// processEntryList handles the legacy export shape, an array of entries each
// carrying an identifier and a display name under one of the accepted aliases.
func processEntryList(res *Result, file string, list []any) {
	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			res.warn(NewErrEntryIncomplete(file, fmt.Sprintf("entry %d is not an object", i)))
			continue
		}

		id := stringField(entry, identifierAliases...)
		label := stringField(entry, labelAliases...)

		if id == "" || label == "" {
			res.warn(NewErrEntryIncomplete(file, fmt.Sprintf("entry %d", i)))
			continue
		}

		sd := assets.NewSitDefinition(id, label)
		if p := stringField(entry, "publisher", "publisherName"); p != "" {
			sd.Publisher = to.Ptr(p)
		}

		if typ := stringField(entry, "type"); typ != "" {
			sd.Type = to.Ptr(typ)
		}

		res.addDefinition(file, sd)
	}
}

// processCanonicalEntries handles the canonical document shape. Each decoded
// entry is marshalled back to JSON and unmarshalled into the wire type so that
// a single code path owns the field mapping.
func processCanonicalEntries(res *Result, file string, list []any) {
	for i, item := range list {
		j, err := json.Marshal(item)
		if err != nil {
			res.warn(NewErrEntryIncomplete(file, fmt.Sprintf("entry %d: %v", i, err)))
			continue
		}

		sd := new(assets.SitDefinition)
		if err := json.Unmarshal(j, sd); err != nil {
			res.warn(NewErrEntryIncomplete(file, fmt.Sprintf("entry %d: %v", i, err)))
			continue
		}

		res.addDefinition(file, sd)
	}
}

// stringField returns the first non-empty string value whose key matches one of
// the supplied names. Keys are compared case-insensitively, earlier names take
// priority over later ones.
func stringField(m map[string]any, names ...string) string {
	for _, n := range names {
		for k, v := range m {
			if !strings.EqualFold(k, n) {
				continue
			}

			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}

	return ""
}

// readAndProcessFile reads the file bytes at the supplied path and processes it using the supplied
// processFunc.
func readAndProcessFile(res *Result, file fs.File, path string, processFn processFunc) error {
	s, err := file.Stat()
	if err != nil {
		return err //nolint:wrapcheck
	}

	data := make([]byte, s.Size())

	defer file.Close() // nolint:errcheck

	if _, err := file.Read(data); err != nil {
		return err //nolint:wrapcheck
	}

	ext := filepath.Ext(s.Name())
	// create a new unmarshaler
	unmar := NewUnmarshaler(data, ext)

	// pass the data to the supplied process function
	if err := processFn(res, unmar, path); err != nil {
		return err //nolint:wrapcheck
	}

	return nil
}
