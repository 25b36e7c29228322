package checks

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/marcusjacobson/sitlib/internal/processor"
	"github.com/marcusjacobson/sitlib/internal/tools/checker"
)

// CheckMetadataIsValid is a validator check that ensures the library metadata
// declares a name and a display name.
// A library without a metadata file processes fine but cannot be referenced as
// a dependency, so publishing one is almost always unintended.
func CheckMetadataIsValid(res *processor.Result) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"Library metadata is valid",
		func() error {
			var merr error

			if res.Metadata == nil || res.Metadata.Name == "" {
				merr = multierror.Append(merr, fmt.Errorf("%w: name must be set", ErrMetadataIncomplete))
			}
			if res.Metadata == nil || res.Metadata.DisplayName == "" {
				merr = multierror.Append(merr, fmt.Errorf("%w: display_name must be set", ErrMetadataIncomplete))
			}

			return merr
		},
	)
}
