package checks

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/marcusjacobson/sitlib/assets"
	"github.com/marcusjacobson/sitlib/internal/processor"
	"github.com/marcusjacobson/sitlib/internal/tools/checker"
)

// CheckIdentifiersAreGuids is a validator check that ensures every identifier in
// the processed library is a GUID. Tenant exports always use GUID identifiers,
// anything else in a library file is usually a hand-edit mistake.
func CheckIdentifiersAreGuids(res *processor.Result) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All identifiers are GUIDs",
		func() error {
			var merr error

			ids := make([]string, 0, len(res.Definitions))
			for id := range res.Definitions {
				ids = append(ids, id)
			}
			slices.Sort(ids)

			for _, id := range ids {
				if assets.IsGUID(id) {
					continue
				}
				merr = multierror.Append(merr, fmt.Errorf("%w: `%s`", ErrNotAGuid, id))
			}

			return merr
		},
	)
}
