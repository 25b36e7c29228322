// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package checks

import "errors"

// ErrBadFileName is returned when a file does not follow the mapping library naming convention.
var ErrBadFileName = errors.New("file name does not follow the mapping library convention")

// ErrNotAGuid is returned when a mapping identifier is not a GUID.
var ErrNotAGuid = errors.New("identifier is not a GUID")

// ErrMetadataIncomplete is returned when the library metadata is missing required fields.
var ErrMetadataIncomplete = errors.New("library metadata is incomplete")
