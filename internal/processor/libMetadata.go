// Copyright (c) Microsoft Corporation 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package processor

// LibMetadata represents the metadata of a mapping library bundle.
type LibMetadata struct {
	Name        string `json:"name"         yaml:"name"`         // The name of the bundle
	DisplayName string `json:"display_name" yaml:"display_name"` // The display name of the bundle
	Description string `json:"description"  yaml:"description"`  // The description of the bundle
	// The dependencies of the bundle, each a go-getter URL to another bundle
	Dependencies []LibMetadataDependency `json:"dependencies" yaml:"dependencies"`
}

// LibMetadataDependency represents a dependency of a mapping library bundle.
type LibMetadataDependency struct {
	// The custom URL (go-getter path) of the bundle to fetch before this one
	CustomURL string `json:"custom_url" yaml:"custom_url"`
}
