package checks

import (
	"github.com/hashicorp/go-multierror"
	"github.com/marcusjacobson/sitlib/internal/processor"
	"github.com/marcusjacobson/sitlib/internal/tools/checker"
)

// CheckProcessesCleanly is a validator check that fails when processing the
// library produced warnings: duplicate identifiers, incomplete entries or
// files that could not be parsed.
// The mapping table build tolerates these and skips the offending entries,
// a published library should not rely on that.
func CheckProcessesCleanly(res *processor.Result) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"Library processes without warnings",
		func() error {
			var merr error
			for _, w := range res.Warnings {
				merr = multierror.Append(merr, w)
			}
			return merr
		},
	)
}
