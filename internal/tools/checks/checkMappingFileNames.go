package checks

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/marcusjacobson/sitlib/internal/tools/checker"
	"github.com/marcusjacobson/sitlib/internal/tools/filename"
)

// CheckMappingFileNames is a validator check that ensures every JSON or YAML
// file in the library is either the metadata file or follows the
// <name>.sit_mapping.<ext> convention.
// Files with other extensions are ignored, the processor ignores them too.
func CheckMappingFileNames(path string) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All mapping file names are valid",
		checkMappingFileNames(path),
	)
}

func checkMappingFileNames(path string) func() error {
	return func() error {
		// merr collects filename errors that do not stop the walk.
		var merr error

		dirFs := os.DirFS(path)
		walkErr := fs.WalkDir(dirFs, ".", func(relPath string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("checkMappingFileNames: error walking library: %w", err)
			}
			if d.IsDir() {
				return nil
			}
			if err := filename.Check(d.Name()); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("%w: %s: %w", ErrBadFileName, relPath, err))
			}

			return nil
		})
		if walkErr != nil {
			return walkErr
		}

		return merr
	}
}
