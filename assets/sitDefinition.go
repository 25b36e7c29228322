// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"slices"
	"strings"

	"github.com/marcusjacobson/sitlib/to"
)

// SitDefinition is the wire representation of a sensitive information type.
// The field names match the Microsoft Graph data classification resource,
// which is also the shape emitted by the Security & Compliance PowerShell
// cmdlets after property selection.
type SitDefinition struct {
	ID            *string `json:"id,omitempty"            yaml:"id,omitempty"`
	Name          *string `json:"name,omitempty"          yaml:"name,omitempty"`
	Description   *string `json:"description,omitempty"   yaml:"description,omitempty"`
	Publisher     *string `json:"publisherName,omitempty" yaml:"publisherName,omitempty"`
	RulePackageID *string `json:"rulePackageId,omitempty" yaml:"rulePackageId,omitempty"`
	Type          *string `json:"type,omitempty"          yaml:"type,omitempty"`
	State         *string `json:"state,omitempty"         yaml:"state,omitempty"`
}

// NewSitDefinition creates a new SitDefinition from an identifier and a display name.
// The caller is responsible for ensuring that the definition is valid,
// use either NewSitDefinitionValidate or the ValidateSitDefinition function.
func NewSitDefinition(id, name string) *SitDefinition {
	return &SitDefinition{
		ID:   to.Ptr(id),
		Name: to.Ptr(name),
	}
}

// NewSitDefinitionValidate creates a new SitDefinition instance and validates it.
func NewSitDefinitionValidate(id, name string) (*SitDefinition, error) {
	sd := NewSitDefinition(id, name)

	if err := ValidateSitDefinition(sd); err != nil {
		return nil, err
	}

	return sd, nil
}

// ValidateSitDefinition checks if the SitDefinition is valid.
func ValidateSitDefinition(sd *SitDefinition) error {
	if sd == nil {
		return NewErrPropertyMustNotBeNil("SitDefinition")
	}

	if sd.ID == nil {
		return NewErrPropertyMustNotBeNil("id")
	}

	if strings.TrimSpace(*sd.ID) == "" {
		return NewErrPropertyMustNotBeEmpty("id")
	}

	if sd.Name == nil {
		return NewErrPropertyMustNotBeNil("name")
	}

	if strings.TrimSpace(*sd.Name) == "" {
		return NewErrPropertyMustNotBeEmpty("name")
	}

	return nil
}

// SitDefinitionDocument is the canonical mapping file shape: a single object
// carrying a sensitiveInformationTypes array.
type SitDefinitionDocument struct {
	SensitiveInformationTypes []*SitDefinition `json:"sensitiveInformationTypes" yaml:"sensitiveInformationTypes"`
}

// NewSitDefinitionDocument creates a canonical document from definitions keyed
// by identifier, sorted by normalized identifier for stable output.
func NewSitDefinitionDocument(defs map[string]*SitDefinition) *SitDefinitionDocument {
	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	doc := &SitDefinitionDocument{
		SensitiveInformationTypes: make([]*SitDefinition, 0, len(defs)),
	}
	for _, id := range ids {
		doc.SensitiveInformationTypes = append(doc.SensitiveInformationTypes, defs[id])
	}

	return doc
}

// NormalizedID returns the canonical lookup form of the definition's identifier.
func (sd *SitDefinition) NormalizedID() string {
	return NormalizeID(to.ValOrZero(sd.ID))
}

// DisplayNameOrID returns the display name of the definition,
// falling back to the normalized identifier when no name is set.
func (sd *SitDefinition) DisplayNameOrID() string {
	if sd.Name != nil && strings.TrimSpace(*sd.Name) != "" {
		return *sd.Name
	}

	return sd.NormalizedID()
}
