// Package pssource provides a tenant source that shells out to Security &
// Compliance PowerShell to list sensitive information types.
// It requires an established Exchange Online session in the invoked shell.
package pssource

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"github.com/marcusjacobson/sitlib"
	"github.com/marcusjacobson/sitlib/assets"
	"github.com/marcusjacobson/sitlib/internal/environment"
	"github.com/marcusjacobson/sitlib/to"
)

var _ sitlib.TenantSource = (*Source)(nil)

// SourceOptions are options for the PowerShell source.
type SourceOptions struct {
	Command string // Command overrides the pipeline to run, defaults to the environment configuration
}

// Source lists sensitive information types by running a PowerShell pipeline and
// parsing its JSON output. Create with NewSource.
type Source struct {
	command string
}

// NewSource creates a PowerShell source.
func NewSource(opts *SourceOptions) (*Source, error) {
	if opts == nil {
		opts = &SourceOptions{}
	}
	command := opts.Command
	if command == "" {
		command = environment.TenantCommand()
	}
	if strings.TrimSpace(command) == "" {
		return nil, errors.New("tenant command must not be empty")
	}
	return &Source{command: command}, nil
}

// psSensitiveType mirrors the property names emitted by
// Get-DlpSensitiveInformationType | ConvertTo-Json.
type psSensitiveType struct {
	ID        string `json:"Id"`
	Name      string `json:"Name"`
	Publisher string `json:"Publisher"`
	Type      string `json:"Type"`
}

func (st psSensitiveType) toDefinition() *assets.SitDefinition {
	def := assets.NewSitDefinition(st.ID, st.Name)
	if st.Publisher != "" {
		def.Publisher = to.Ptr(st.Publisher)
	}
	if st.Type != "" {
		def.Type = to.Ptr(st.Type)
	}
	return def
}

// SensitiveTypes runs the configured pipeline and returns the definitions it printed.
func (s *Source) SensitiveTypes(ctx context.Context) ([]*assets.SitDefinition, error) {
	args, err := shellquote.Split(s.command)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse tenant command")
	}
	if len(args) == 0 {
		return nil, errors.New("tenant command must not be empty")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "failed to run tenant command %q: %s", args[0], strings.TrimSpace(stderr.String()))
	}

	types, err := parseOutput(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	defs := make([]*assets.SitDefinition, 0, len(types))
	for _, st := range types {
		defs = append(defs, st.toDefinition())
	}
	return defs, nil
}

// parseOutput decodes the pipeline output.
// ConvertTo-Json emits a bare object instead of an array when the pipeline
// produced a single result, both forms are accepted.
func parseOutput(data []byte) ([]psSensitiveType, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var list []psSensitiveType
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single psSensitiveType
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, errors.Wrap(err, "failed to parse tenant command output as JSON")
	}
	return []psSensitiveType{single}, nil
}
