// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sitlib

import (
	"context"
	"os"
	"testing"

	"github.com/marcusjacobson/sitlib/internal/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	t.Parallel()
	in := &processor.LibMetadata{
		Name:        "lab-core",
		DisplayName: "Lab core SIT mappings",
		Description: "Mappings for the lab tenant.",
		Dependencies: []processor.LibMetadataDependency{
			{CustomURL: "testdata/dependent-libs/lib2"},
		},
	}
	meta := NewMetadata(in)
	assert.Equal(t, "lab-core", meta.Name())
	assert.Equal(t, "Lab core SIT mappings", meta.DisplayName())
	assert.Equal(t, "Mappings for the lab tenant.", meta.Description())
	require.Len(t, meta.Dependencies(), 1)
	assert.Equal(t, "testdata/dependent-libs/lib2", meta.Dependencies()[0].String())
}

// TestFetchBundlesWithDependencies tests fetching bundles with dependencies and
// that they are fetched in the right order.
func TestFetchBundlesWithDependencies(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, os.RemoveAll(".sitlib"))

	defer os.RemoveAll(".sitlib") // nolint: errcheck

	expected := []string{
		"testdata/dependent-libs/lib2",
		"testdata/dependent-libs/lib1",
		"testdata/dependent-libs/libB",
		"testdata/dependent-libs/libA",
	}
	lib1 := NewCustomBundleReference("testdata/dependent-libs/lib1")
	libA := NewCustomBundleReference("testdata/dependent-libs/libA")
	bundles := BundleReferences{lib1, libA}
	bundles, err := bundles.FetchWithDependencies(ctx)
	require.NoError(t, err)
	require.Len(t, bundles, 4)

	result := make([]string, 4)
	for i, bundle := range bundles {
		result[i] = bundle.String()
	}

	assert.ElementsMatch(t, expected, result)
	assert.Len(t, bundles.FSs(), 4)
}

// TestFetchBundlesWithCommonDependency checks that bundles having a common
// dependency fetch it only once.
func TestFetchBundlesWithCommonDependency(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, os.RemoveAll(".sitlib"))

	defer os.RemoveAll(".sitlib") // nolint: errcheck

	expected := []string{
		"testdata/dependent-libs/lib2",
		"testdata/dependent-libs/lib1",
		"testdata/dependent-libs/lib3",
	}
	lib1 := NewCustomBundleReference("testdata/dependent-libs/lib1")
	lib3 := NewCustomBundleReference("testdata/dependent-libs/lib3")
	bundles := BundleReferences{lib1, lib3}
	bundles, err := bundles.FetchWithDependencies(ctx)
	require.NoError(t, err)
	require.Len(t, bundles, 3)

	result := make([]string, 3)
	for i, bundle := range bundles {
		result[i] = bundle.String()
	}

	assert.ElementsMatch(t, expected, result)
}

// TestFetchBundlesIntoTable checks that fetched bundles initialize a mapping table.
func TestFetchBundlesIntoTable(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, os.RemoveAll(".sitlib"))

	defer os.RemoveAll(".sitlib") // nolint: errcheck

	bundles := BundleReferences{NewCustomBundleReference("testdata/dependent-libs/lib1")}
	bundles, err := bundles.FetchWithDependencies(ctx)
	require.NoError(t, err)

	sl := NewSitLib(nil)
	err = sl.Init(ctx, bundles.FSs()...)
	require.NoError(t, err)
	assert.Equal(t, 2, sl.Len())
	assert.True(t, sl.EntryExists("3f2a8c91-5d64-4e07-b8a9-c12d34e56f78"))
	assert.True(t, sl.EntryExists("9b7e6d5c-4a3f-42b1-8e0d-7f6a5b4c3d2e"))
}
