package sitlib

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/hashicorp/go-getter"
	"github.com/marcusjacobson/sitlib/internal/environment"
	"github.com/marcusjacobson/sitlib/internal/processor"
)

// FetchBundleByGetterString fetches a mapping bundle from a go-getter URL into the
// supplied directory, relative to the sitlib base directory, and returns the result
// as an fs.FS. The destination directory is emptied first.
func FetchBundleByGetterString(ctx context.Context, getterString, destinationDirectory string) (fs.FS, error) {
	dst := filepath.Join(environment.SitLibDir(), destinationDirectory)
	if err := os.RemoveAll(dst); err != nil {
		return nil, fmt.Errorf("FetchBundleByGetterString: error cleaning destination directory %s: %w", dst, err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("FetchBundleByGetterString: error getting working directory: %w", err)
	}

	client := &getter.Client{
		Ctx:  ctx,
		Src:  getterString,
		Dst:  dst,
		Pwd:  wd,
		Mode: getter.ClientModeAny,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("FetchBundleByGetterString: error fetching bundle from %s: %w", getterString, err)
	}

	return os.DirFS(dst), nil
}

// FetchAllBundlesWithDependencies takes a bundle reference, fetches it, and then fetches all of its dependencies.
// Example usage:
//
// ```go
// sl := sitlib.NewSitLib(nil)
// thisBundle := sitlib.NewCustomBundleReference("git::https://example.com/org/sit-bundles//lab")
// bundles, err := sitlib.FetchAllBundlesWithDependencies(ctx, "bundles", 0, thisBundle, make(sitlib.BundleReferences, 0, 5))
// // ... handle error
//
// err = sl.Init(ctx, bundles.FSs()...)
// // ... handle error
// ```
func FetchAllBundlesWithDependencies(ctx context.Context, baseDir string, i int, bundle BundleReference, bundles BundleReferences) (BundleReferences, error) {
	dir := filepath.Join(baseDir, strconv.Itoa(i))
	f, err := bundle.Fetch(ctx, dir)
	if err != nil {
		return nil, err
	}
	pscl := processor.NewClient(f)
	libmeta, err := pscl.Metadata()
	if err != nil {
		return nil, err
	}
	meta := NewMetadata(libmeta)
	// for each dependency, recurse using this function
	for _, dep := range meta.Dependencies() {
		i++
		bundles, err = FetchAllBundlesWithDependencies(ctx, baseDir, i, dep, bundles)
		if err != nil {
			return nil, err
		}
	}
	// add the current bundle reference to the list
	return addBundleReferenceToSlice(bundles, bundle), nil
}

// addBundleReferenceToSlice adds a bundle reference to a slice if it does not already exist.
func addBundleReferenceToSlice(bundles BundleReferences, bundle BundleReference) BundleReferences {
	if exists := slices.ContainsFunc(bundles, func(b BundleReference) bool {
		return b.String() == bundle.String()
	}); exists {
		return bundles
	}

	return append(bundles, bundle)
}
