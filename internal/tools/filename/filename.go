// Package filename owns the naming convention for mapping library files:
// every JSON or YAML file in a library is either the metadata file or named
// `<name>.sit_mapping.<ext>`.
package filename

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/marcusjacobson/sitlib/internal/processor"
)

var ErrIncorrectFileName = errors.New("incorrect file name format")

// Check validates the file name against the mapping library convention.
// Files with extensions the processor does not read always pass, as does the
// library metadata file. Case is ignored, the processor ignores it too.
func Check(fileName string) error {
	base := filepath.Base(fileName)
	if !slices.Contains(processor.SupportedFileExtensions, strings.ToLower(filepath.Ext(base))) {
		return nil
	}

	if base == processor.SitLibraryMetadataFile {
		return nil
	}

	lower := strings.ToLower(base)
	if processor.MappingFileRegex.MatchString(lower) {
		return nil
	}

	correct := Generate(base)

	return errors.Join(ErrIncorrectFileName, fmt.Errorf("`%s` should be `%s%s`", base, correct, filepath.Ext(lower)))
}

// Generate returns the canonical mapping file name for the supplied file,
// without the extension, e.g. "SITMappings.json" becomes "sitmappings.sit_mapping".
func Generate(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	base = strings.TrimSuffix(base, "."+processor.MappingFileType)

	return base + "." + processor.MappingFileType
}
