// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package processor

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unmarshaler decodes raw file bytes using the codec implied by the file extension.
type Unmarshaler struct {
	d   []byte
	ext string
}

// NewUnmarshaler creates an Unmarshaler for the supplied data.
// The extension is normalized so both "json" and ".json" are accepted.
func NewUnmarshaler(data []byte, ext string) Unmarshaler {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return Unmarshaler{
		d:   data,
		ext: ext,
	}
}

// Unmarshal decodes the data into dst.
// Supported extensions are .json, .yaml and .yml.
func (u Unmarshaler) Unmarshal(dst any) error {
	switch strings.ToLower(u.ext) {
	case ".json":
		return json.Unmarshal(u.d, dst) //nolint:wrapcheck
	case ".yaml", ".yml":
		return yaml.Unmarshal(u.d, dst) //nolint:wrapcheck
	}

	return fmt.Errorf("unmarshaler.Unmarshal: unsupported extension: %s", u.ext)
}
