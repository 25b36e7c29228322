// Copyright (c) Microsoft Corporation 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package processor

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullLibrary processes the testdata library, which covers all three
// accepted mapping file shapes plus files that must be ignored.
func TestFullLibrary(t *testing.T) {
	t.Parallel()

	fs := os.DirFS("./testdata")
	pc := NewClient(fs)
	res := NewResult()

	require.NoError(t, pc.Process(res))
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Definitions, 7)

	assert.Equal(t, "lab-core", res.Metadata.Name)
	assert.Equal(t, "Lab core SIT mappings", res.Metadata.DisplayName)
	assert.Empty(t, res.Metadata.Dependencies)

	// canonical document shape
	cc := res.Definitions["50842eb7-edc8-4019-85dd-5a5c1f2bb085"]
	require.NotNil(t, cc)
	assert.Equal(t, "Credit Card Number", *cc.Name)
	assert.Equal(t, "Microsoft Corporation", *cc.Publisher)
	assert.Equal(t, "Enabled", *cc.State)

	// entry list shape with PowerShell property casing
	aba := res.Definitions["cb353f78-2b72-4c3c-8827-92ebe4f69fdf"]
	require.NotNil(t, aba)
	assert.Equal(t, "ABA Routing Number", *aba.Name)
	assert.Equal(t, "Entity", *aba.Type)

	// identifier to display name object shape
	emp := res.Definitions["8d5a7c3e-9f41-4b6a-a7e2-1c9d23b0f5a4"]
	require.NotNil(t, emp)
	assert.Equal(t, "Employee ID", *emp.Name)
}

// TestProcessMappingObjectValid tests the identifier/display name object shape.
func TestProcessMappingObjectValid(t *testing.T) {
	t.Parallel()

	res := NewResult()

	require.NoError(t, processMappingFile(res, getSampleMappingObject_valid(), "cache.json"))
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Definitions, 2)
	assert.Equal(t, "Credit Card Number", *res.Definitions["50842eb7-edc8-4019-85dd-5a5c1f2bb085"].Name)
}

// TestProcessMappingObjectSkipsBadEntries tests that entries with missing or
// non-string display names are skipped with a warning, keeping the rest.
func TestProcessMappingObjectSkipsBadEntries(t *testing.T) {
	t.Parallel()

	res := NewResult()

	require.NoError(t, processMappingFile(res, getSampleMappingObject_badEntries(), "cache.json"))
	assert.Len(t, res.Definitions, 1)
	assert.Len(t, res.Warnings, 2)

	for _, w := range res.Warnings {
		assert.ErrorIs(t, w, ErrEntryIncomplete)
	}
}

// TestProcessEntryListAliases tests the entry list shape with PowerShell
// property casing and the accepted identifier/display name aliases.
func TestProcessEntryListAliases(t *testing.T) {
	t.Parallel()

	res := NewResult()

	require.NoError(t, processMappingFile(res, getSampleEntryList_aliases(), "export.json"))
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Definitions, 2)

	ssn := res.Definitions["a44669fe-0d48-453d-a9b1-2cc83f2cba77"]
	require.NotNil(t, ssn)
	assert.Equal(t, "U.S. Social Security Number (SSN)", *ssn.Name)
	assert.Equal(t, "Microsoft Corporation", *ssn.Publisher)

	guid := res.Definitions["0e9b3178-9678-47dd-a509-37222ca96b42"]
	require.NotNil(t, guid)
	assert.Equal(t, "EU Debit Card Number", *guid.Name)
}

// TestProcessEntryListIncompleteEntry tests that an entry without a display
// name is skipped with a warning.
func TestProcessEntryListIncompleteEntry(t *testing.T) {
	t.Parallel()

	res := NewResult()

	require.NoError(t, processMappingFile(res, getSampleEntryList_incomplete(), "export.json"))
	assert.Len(t, res.Definitions, 1)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], ErrEntryIncomplete)
}

// TestProcessCanonicalDocument tests the canonical sensitiveInformationTypes shape.
func TestProcessCanonicalDocument(t *testing.T) {
	t.Parallel()

	res := NewResult()

	require.NoError(t, processMappingFile(res, getSampleCanonical_valid(), "lib.json"))
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Definitions, 1)

	sd := res.Definitions["50842eb7-edc8-4019-85dd-5a5c1f2bb085"]
	require.NotNil(t, sd)
	assert.Equal(t, "Credit Card Number", *sd.Name)
	assert.Equal(t, "15e75ee5-f38e-4f75-b3db-773a6c233ab6", *sd.RulePackageID)
}

// TestProcessCanonicalDocumentNotArray tests that a sensitiveInformationTypes
// value that is not an array is rejected.
func TestProcessCanonicalDocumentNotArray(t *testing.T) {
	t.Parallel()

	res := NewResult()

	err := processMappingFile(res, getSampleCanonical_notArray(), "lib.json")
	assert.ErrorIs(t, err, ErrUnknownShape)
}

// TestProcessMappingFileInvalidJson tests that the correct error is generated
// when the mapping file is not well formed.
func TestProcessMappingFileInvalidJson(t *testing.T) {
	t.Parallel()

	res := NewResult()

	err := processMappingFile(res, getSampleMapping_invalidJson(), "cache.json")
	assert.ErrorIs(t, err, ErrUnmarshaling)
	assert.ErrorContains(t, err, "invalid character")
}

// TestProcessMappingFileUnknownShape tests that well formed but unusable
// documents are rejected with ErrUnknownShape.
func TestProcessMappingFileUnknownShape(t *testing.T) {
	t.Parallel()

	res := NewResult()

	err := processMappingFile(res, NewUnmarshaler([]byte(`"just a string"`), ".json"), "cache.json")
	assert.ErrorIs(t, err, ErrUnknownShape)

	err = processMappingFile(res, NewUnmarshaler([]byte(`42`), ".json"), "cache.json")
	assert.ErrorIs(t, err, ErrUnknownShape)
}

// TestDuplicateIdentifierFirstWins tests that a duplicate identifier within a
// file keeps the first entry and records a warning, including when the
// duplicate differs only in case.
func TestDuplicateIdentifierFirstWins(t *testing.T) {
	t.Parallel()

	res := NewResult()

	require.NoError(t, processMappingFile(res, getSampleEntryList_duplicate(), "export.json"))
	assert.Len(t, res.Definitions, 1)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], ErrEntryAlreadyExists)
	assert.Equal(t, "Credit Card Number", *res.Definitions["50842eb7-edc8-4019-85dd-5a5c1f2bb085"].Name)
}

// TestProcessDataFile tests the single file entry point used for explicit
// cache files, including the JSON fallback for unrecognized extensions.
func TestProcessDataFile(t *testing.T) {
	t.Parallel()

	res := NewResult()

	data := []byte(`{"50842eb7-edc8-4019-85dd-5a5c1f2bb085": "Credit Card Number"}`)
	require.NoError(t, ProcessDataFile(res, data, "SITMappings.cache"))
	assert.Len(t, res.Definitions, 1)

	err := ProcessDataFile(res, []byte(`{not json`), "broken.json")
	assert.ErrorIs(t, err, ErrProcessingFile)
}

// TestMappingFileRegex tests the file name convention for mapping files.
func TestMappingFileRegex(t *testing.T) {
	t.Parallel()

	assert.True(t, MappingFileRegex.MatchString("financial.sit_mapping.json"))
	assert.True(t, MappingFileRegex.MatchString("custom.sit_mapping.yaml"))
	assert.True(t, MappingFileRegex.MatchString("custom.sit_mapping.yml"))
	assert.False(t, MappingFileRegex.MatchString("sit_mapping.json"))
	assert.False(t, MappingFileRegex.MatchString("financial.sit_mapping.csv"))
	assert.False(t, MappingFileRegex.MatchString("financial.json"))
}

// TestMetadataInvalidDependency tests that a metadata dependency without a
// custom_url fails the scan.
func TestMetadataInvalidDependency(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		SitLibraryMetadataFile: &fstest.MapFile{
			Data: []byte(`{"name": "broken", "dependencies": [{}]}`),
		},
	}

	pc := NewClient(fs)
	res := NewResult()

	assert.ErrorContains(t, pc.Process(res), "custom_url must be set")
}

// TestMetadataMissingFile tests that a library without a metadata file yields
// empty metadata rather than an error.
func TestMetadataMissingFile(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"plain.sit_mapping.json": &fstest.MapFile{
			Data: []byte(`{"50842eb7-edc8-4019-85dd-5a5c1f2bb085": "Credit Card Number"}`),
		},
	}

	pc := NewClient(fs)
	res := NewResult()

	require.NoError(t, pc.Process(res))
	assert.Equal(t, "", res.Metadata.Name)
	assert.Len(t, res.Definitions, 1)
}

// TestMalformedFileIsWarningNotError tests that a malformed mapping file inside
// a library walk is recorded as a warning and does not abort the scan.
func TestMalformedFileIsWarningNotError(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"bad.sit_mapping.json": &fstest.MapFile{
			Data: []byte(`{not json`),
		},
		"good.sit_mapping.json": &fstest.MapFile{
			Data: []byte(`{"a44669fe-0d48-453d-a9b1-2cc83f2cba77": "U.S. Social Security Number (SSN)"}`),
		},
	}

	pc := NewClient(fs)
	res := NewResult()

	require.NoError(t, pc.Process(res))
	assert.Len(t, res.Definitions, 1)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], ErrProcessingFile)
}

func getSampleMappingObject_valid() Unmarshaler {
	return NewUnmarshaler([]byte(`{
  "50842eb7-edc8-4019-85dd-5a5c1f2bb085": "Credit Card Number",
  "a44669fe-0d48-453d-a9b1-2cc83f2cba77": "U.S. Social Security Number (SSN)"
}`), ".json")
}

func getSampleMappingObject_badEntries() Unmarshaler {
	return NewUnmarshaler([]byte(`{
  "50842eb7-edc8-4019-85dd-5a5c1f2bb085": "Credit Card Number",
  "a44669fe-0d48-453d-a9b1-2cc83f2cba77": 42,
  "0e9b3178-9678-47dd-a509-37222ca96b42": "   "
}`), ".json")
}

func getSampleEntryList_aliases() Unmarshaler {
	return NewUnmarshaler([]byte(`[
  {
    "Id": "a44669fe-0d48-453d-a9b1-2cc83f2cba77",
    "Name": "U.S. Social Security Number (SSN)",
    "Publisher": "Microsoft Corporation",
    "Type": "Entity"
  },
  {
    "guid": "0e9b3178-9678-47dd-a509-37222ca96b42",
    "displayName": "EU Debit Card Number"
  }
]`), ".json")
}

func getSampleEntryList_incomplete() Unmarshaler {
	return NewUnmarshaler([]byte(`[
  {
    "Id": "a44669fe-0d48-453d-a9b1-2cc83f2cba77",
    "Name": "U.S. Social Security Number (SSN)"
  },
  {
    "Id": "0e9b3178-9678-47dd-a509-37222ca96b42"
  }
]`), ".json")
}

func getSampleEntryList_duplicate() Unmarshaler {
	return NewUnmarshaler([]byte(`[
  {
    "Id": "50842eb7-edc8-4019-85dd-5a5c1f2bb085",
    "Name": "Credit Card Number"
  },
  {
    "Id": "50842EB7-EDC8-4019-85DD-5A5C1F2BB085",
    "Name": "Renamed Credit Card"
  }
]`), ".json")
}

func getSampleCanonical_valid() Unmarshaler {
	return NewUnmarshaler([]byte(`{
  "sensitiveInformationTypes": [
    {
      "id": "50842eb7-edc8-4019-85dd-5a5c1f2bb085",
      "name": "Credit Card Number",
      "publisherName": "Microsoft Corporation",
      "rulePackageId": "15e75ee5-f38e-4f75-b3db-773a6c233ab6",
      "type": "Entity",
      "state": "Enabled"
    }
  ]
}`), ".json")
}

func getSampleCanonical_notArray() Unmarshaler {
	return NewUnmarshaler([]byte(`{"sensitiveInformationTypes": "nope"}`), ".json")
}

func getSampleMapping_invalidJson() Unmarshaler {
	return NewUnmarshaler([]byte(`{"50842eb7-edc8-4019-85dd-5a5c1f2bb085" "Credit Card Number"}`), ".json")
}
