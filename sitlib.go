// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sitlib

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/brunoga/deep"
	"github.com/marcusjacobson/sitlib/assets"
	"github.com/marcusjacobson/sitlib/internal/processor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultParallelism = 4 // default number of parallel requests to make to tenant sources
)

// Embed the lib dir into the binary.
//
//go:embed lib
var embeddedLib embed.FS

// Lib is the built-in baseline mapping library.
// It contains the display names of well-known Microsoft sensitive information types
// and can be passed to SitLib.Init to seed a table without any local sources.
var Lib, _ = fs.Sub(embeddedLib, "lib")

// EntrySource records where a mapping table entry came from.
type EntrySource string

const (
	// SourceLibrary is an entry that came from a cache file or mapping library.
	SourceLibrary EntrySource = "library"
	// SourceTenant is an entry that came from a live tenant source.
	SourceTenant EntrySource = "tenant"
)

// Entry is a single row of the mapping table, keyed by normalized identifier.
type Entry struct {
	ID          string      `json:"id"`                  // ID is the normalized identifier of the sensitive information type
	DisplayName string      `json:"displayName"`         // DisplayName is the human readable label
	Publisher   string      `json:"publisher,omitempty"` // Publisher is the publisher name, if known
	Type        string      `json:"type,omitempty"`      // Type is the sensitive information type kind, if known
	Source      EntrySource `json:"source"`              // Source records which kind of source supplied the entry
}

// TenantSource supplies sensitive information type definitions from a live tenant.
// Implementations are in the msgraph and pssource packages.
type TenantSource interface {
	// SensitiveTypes returns the definitions published in the tenant.
	SensitiveTypes(ctx context.Context) ([]*assets.SitDefinition, error)
}

// SitLib is the mapping table that gets built from the library files and
// tenant sources. Do not create this directly, use NewSitLib instead.
type SitLib struct {
	Options *SitLibOptions

	entries  map[string]*Entry
	metadata []*Metadata
	clients  *tenantClients
	mu       sync.RWMutex // mu is a mutex to concurrency protect the entries map
}

type tenantClients struct {
	sources []TenantSource
}

// SitLibOptions are options for the SitLib.
// Set them before calling Init.
type SitLibOptions struct {
	AllowOverwrite bool               // AllowOverwrite allows a later source to replace an existing entry, instead of keeping the first
	Parallelism    int                // Parallelism is the number of parallel requests to make to tenant sources
	Logger         *zap.SugaredLogger // Logger receives warnings about skipped entries and degraded sources
}

// NewSitLib returns a new instance of the sitlib library.
// Pass nil to use the default options.
func NewSitLib(opts *SitLibOptions) *SitLib {
	if opts == nil {
		opts = getDefaultSitLibOptions()
	}
	if opts.Parallelism == 0 {
		opts.Parallelism = defaultParallelism
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	sl := &SitLib{
		Options:  opts,
		entries:  make(map[string]*Entry),
		metadata: make([]*Metadata, 0),
		clients:  new(tenantClients),
		mu:       sync.RWMutex{},
	}
	return sl
}

func getDefaultSitLibOptions() *SitLibOptions {
	return &SitLibOptions{
		Parallelism:    defaultParallelism,
		AllowOverwrite: false,
		Logger:         zap.NewNop().Sugar(),
	}
}

// Entry returns a copy of the entry with the given identifier, or nil if it does not exist.
// The identifier is normalized before the lookup.
func (sl *SitLib) Entry(id string) *Entry {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	ent, ok := sl.entries[assets.NormalizeID(id)]
	if !ok {
		return nil
	}
	return deep.MustCopy(ent)
}

// EntryExists returns true if an entry with the given identifier exists in the mapping table.
// The identifier is normalized before the lookup.
func (sl *SitLib) EntryExists(id string) bool {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	_, exists := sl.entries[assets.NormalizeID(id)]
	return exists
}

// Entries returns a copy of the mapping table, keyed by normalized identifier.
func (sl *SitLib) Entries() map[string]*Entry {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	result := make(map[string]*Entry, len(sl.entries))
	for k, v := range sl.entries {
		result[k] = deep.MustCopy(v)
	}
	return result
}

// IDs returns the normalized identifiers in the mapping table, sorted.
func (sl *SitLib) IDs() []string {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	result := make([]string, 0, len(sl.entries))
	for k := range sl.entries {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}

// Len returns the number of entries in the mapping table.
func (sl *SitLib) Len() int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return len(sl.entries)
}

// Metadata returns the metadata of the libraries processed by Init, in order.
func (sl *SitLib) Metadata() []*Metadata {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return slices.Clone(sl.metadata)
}

// AddTenantSource registers a tenant source with the SitLib struct.
// This is needed to fetch live definitions with FetchTenantDefinitions.
func (sl *SitLib) AddTenantSource(src TenantSource) {
	sl.clients.sources = append(sl.clients.sources, src)
}

// Init processes mapping libraries, supplied as fs.FS interfaces.
// These are typically the embedded var `Lib`, or an `os.DirFS`.
// It populates the mapping table with the results of the processing.
// Entries already in the table win over entries processed later,
// unless AllowOverwrite is set.
func (sl *SitLib) Init(_ context.Context, libs ...fs.FS) error {
	if sl.Options == nil || sl.Options.Parallelism == 0 {
		return errors.New("sitlib Options not set or parallelism is 0")
	}

	// Process the libraries in order.
	for _, lib := range libs {
		res := processor.NewResult()
		pc := processor.NewClient(lib)
		if err := pc.Process(res); err != nil {
			return fmt.Errorf("Init: error processing library %v: %w", lib, err)
		}

		// Put results into the SitLib.
		sl.addProcessedResult(res)
		sl.mu.Lock()
		sl.metadata = append(sl.metadata, NewMetadata(res.Metadata))
		sl.mu.Unlock()
	}

	return nil
}

// InitFromFiles processes mapping cache files, supplied as file paths.
// Files that cannot be read or parsed are logged as warnings and skipped,
// the remaining files are still processed.
func (sl *SitLib) InitFromFiles(_ context.Context, paths ...string) error {
	if sl.Options == nil || sl.Options.Parallelism == 0 {
		return errors.New("sitlib Options not set or parallelism is 0")
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			sl.Options.Logger.Warnw("InitFromFiles: skipping unreadable cache file",
				"path", path,
				"error", err,
			)
			continue
		}

		res := processor.NewResult()
		if err := processor.ProcessDataFile(res, data, filepath.Base(path)); err != nil {
			sl.Options.Logger.Warnw("InitFromFiles: skipping malformed cache file",
				"path", path,
				"error", err,
			)
			continue
		}

		sl.addProcessedResult(res)
	}

	return nil
}

// FetchTenantDefinitions retrieves the sensitive information type definitions from
// the registered tenant sources and adds them to the mapping table.
// Entries already in the table (e.g. from cache files) win over tenant definitions,
// unless AllowOverwrite is set.
func (sl *SitLib) FetchTenantDefinitions(ctx context.Context) error {
	if sl.Options == nil || sl.Options.Parallelism == 0 {
		return errors.New("sitlib Options not set or parallelism is 0")
	}
	if len(sl.clients.sources) == 0 {
		return errors.New("tenant source not set")
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(sl.Options.Parallelism)
	for _, src := range sl.clients.sources {
		src := src
		grp.Go(func() error {
			defs, err := src.SensitiveTypes(ctx)
			if err != nil {
				return fmt.Errorf("FetchTenantDefinitions: error fetching sensitive types: %w", err)
			}
			sl.mu.Lock()
			defer sl.mu.Unlock()
			for _, def := range defs {
				if err := assets.ValidateSitDefinition(def); err != nil {
					sl.Options.Logger.Warnw("FetchTenantDefinitions: skipping invalid definition",
						"error", err,
					)
					continue
				}
				id := def.NormalizedID()
				if _, exists := sl.entries[id]; exists && !sl.Options.AllowOverwrite {
					continue
				}
				sl.entries[id] = entryFromDefinition(def, SourceTenant)
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	return nil
}

// addProcessedResult merges the results of a processed library into the SitLib.
// Existing entries win over new ones unless AllowOverwrite is set, and each
// skipped entry and processing warning is logged.
func (sl *SitLib) addProcessedResult(res *processor.Result) {
	for _, warning := range res.Warnings {
		sl.Options.Logger.Warnw("skipping mapping entry",
			"warning", warning,
		)
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	for k, v := range res.Definitions {
		if _, exists := sl.entries[k]; exists && !sl.Options.AllowOverwrite {
			sl.Options.Logger.Warnw("entry already exists in the mapping table, keeping existing",
				"id", k,
			)
			continue
		}
		sl.entries[k] = entryFromDefinition(v, SourceLibrary)
	}
}

// entryFromDefinition converts a validated definition into a mapping table entry.
func entryFromDefinition(def *assets.SitDefinition, source EntrySource) *Entry {
	ent := &Entry{
		ID:          def.NormalizedID(),
		DisplayName: def.DisplayNameOrID(),
		Source:      source,
	}
	if def.Publisher != nil {
		ent.Publisher = *def.Publisher
	}
	if def.Type != nil {
		ent.Type = *def.Type
	}
	return ent
}
