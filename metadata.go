package sitlib

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/marcusjacobson/sitlib/internal/processor"
)

// Metadata describes a mapping bundle: its identity and the bundles it depends on.
type Metadata struct {
	name         string
	displayName  string
	description  string
	dependencies []BundleReference
}

// BundleReference is an interface that represents a dependency of a mapping bundle.
// It is fetched from a custom go-getter URL.
type BundleReference interface {
	fmt.Stringer
	// Fetch fetches the bundle into the supplied directory, under the sitlib base directory.
	Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error)
	// FS returns the filesystem of the fetched bundle, or nil if it has not been fetched yet.
	FS() fs.FS
}

// BundleReferences is a slice of BundleReference.
type BundleReferences []BundleReference

// FetchWithDependencies fetches all bundles in the slice, and all of their
// dependencies, into the sitlib base directory.
// The returned slice contains each bundle exactly once, dependencies first.
func (b BundleReferences) FetchWithDependencies(ctx context.Context) (BundleReferences, error) {
	result := make(BundleReferences, 0, len(b))
	i := 0
	for _, ref := range b {
		var err error
		result, err = FetchAllBundlesWithDependencies(ctx, "bundles", i, ref, result)
		if err != nil {
			return nil, err
		}
		i = len(result)
	}
	return result, nil
}

// FSs returns the filesystems of the fetched bundles, in dependency order,
// ready to pass to SitLib.Init. Bundles that have not been fetched are skipped.
func (b BundleReferences) FSs() []fs.FS {
	result := make([]fs.FS, 0, len(b))
	for _, ref := range b {
		if f := ref.FS(); f != nil {
			result = append(result, f)
		}
	}
	return result
}

var _ BundleReference = (*CustomBundleReference)(nil)

// CustomBundleReference is a mapping bundle that is fetched from a custom go-getter URL.
type CustomBundleReference struct {
	url string
	fs  fs.FS
}

func NewCustomBundleReference(url string) *CustomBundleReference {
	return &CustomBundleReference{
		url: url,
	}
}

// Fetch fetches the bundle from the custom go-getter URL.
func (c *CustomBundleReference) Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error) {
	f, err := FetchBundleByGetterString(ctx, c.url, destinationDirectory)
	if err != nil {
		return nil, err
	}
	c.fs = f
	return f, nil
}

// FS returns the filesystem of the fetched bundle, or nil if Fetch has not been called.
func (c *CustomBundleReference) FS() fs.FS {
	return c.fs
}

// String returns the URL of the custom go-getter.
func (c *CustomBundleReference) String() string {
	return c.url
}

func NewMetadata(in *processor.LibMetadata) *Metadata {
	dependencies := make([]BundleReference, len(in.Dependencies))
	for i, dep := range in.Dependencies {
		dependencies[i] = NewMetadataDependencyFromProcessor(dep)
	}
	return &Metadata{
		name:         in.Name,
		displayName:  in.DisplayName,
		description:  in.Description,
		dependencies: dependencies,
	}
}

func NewMetadataDependencyFromProcessor(in processor.LibMetadataDependency) BundleReference {
	return &CustomBundleReference{
		url: in.CustomURL,
	}
}

func (m *Metadata) Name() string {
	return m.name
}

func (m *Metadata) DisplayName() string {
	return m.displayName
}

func (m *Metadata) Description() string {
	return m.description
}

func (m *Metadata) Dependencies() BundleReferences {
	return m.dependencies
}
