// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package assets provides the types used by the SitLib library.
// It models sensitive information type definitions as they appear on the
// wire and provides validation and identifier normalization helpers.
//
// Use the constructor functions to create instances of the types
// defined in this package, such as NewSitDefinition and
// NewSitDefinitionValidate.
package assets
