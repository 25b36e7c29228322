package doc

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/marcusjacobson/sitlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitLibReadmeMd(t *testing.T) {
	require.NoError(t, os.RemoveAll(".sitlib"))

	defer os.RemoveAll(".sitlib") // nolint: errcheck

	ctx := context.Background()
	bundle := sitlib.NewCustomBundleReference("testdata/doclib")
	_, err := bundle.Fetch(ctx, "0")
	require.NoError(t, err)

	var buf bytes.Buffer

	err = SitLibReadmeMd(ctx, &buf, bundle)
	t.Log(buf.String())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# doclib (Documentation sample library)")
	assert.Contains(t, out, "git::https://github.com/contoso/sit-libraries.git//common")
	assert.Contains(t, out, "Credit Card Number")
	assert.Contains(t, out, "8d5a7c3e-9f41-4b6a-a7e2-1c9d23b0f5a4")
}

func TestSitLibReadmeMdNoBundles(t *testing.T) {
	var buf bytes.Buffer

	err := SitLibReadmeMd(context.Background(), &buf)
	require.Error(t, err)
}
