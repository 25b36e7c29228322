package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	valid := []string{
		"financial.sit_mapping.json",
		"financial.sit_mapping.yaml",
		"financial.sit_mapping.yml",
		"Financial.SIT_Mapping.JSON",
		"sit_library_metadata.json",
		"some/dir/custom.sit_mapping.json",
		"notes.txt",
		"README.md",
	}
	for _, name := range valid {
		assert.NoErrorf(t, Check(name), "expected %q to pass", name)
	}

	invalid := []string{
		"mappings.json",
		"SITMappings.json",
		"exported.yaml",
		"some/dir/mappings.json",
	}
	for _, name := range invalid {
		err := Check(name)
		require.Errorf(t, err, "expected %q to fail", name)
		assert.ErrorIs(t, err, ErrIncorrectFileName)
	}
}

func TestCheckSuggestsCorrectName(t *testing.T) {
	t.Parallel()
	err := Check("SITMappings.json")
	require.Error(t, err)
	assert.ErrorContains(t, err, "`sitmappings.sit_mapping.json`")
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "sitmappings.sit_mapping", Generate("SITMappings.json"))
	assert.Equal(t, "custom.sit_mapping", Generate("custom.sit_mapping.yaml"))
	assert.Equal(t, "exported.sit_mapping", Generate("dir/exported.yml"))
}
