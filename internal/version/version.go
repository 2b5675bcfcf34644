package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// These are set during the build time.
var (
	BuildDate    = "unknown"
	BuildVersion = "0.0.0"
	Commit       = "unknown"
)

const devVersion = "0.0.0"

// BaseVersion returns the major and minor version, for example "v1.7".
func BaseVersion() string {
	v, err := semver.NewVersion(BuildVersion)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("v%d.%d", v.Major(), v.Minor())
}

func String() string {
	return fmt.Sprintf("%s (%s) on %s", BuildVersion, Commit, BuildDate)
}

// Check verifies that the running version satisfies constraint,
// for example ">= 1.2". Development builds satisfy every constraint.
func Check(constraint string) error {
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %q", constraint)
	}

	if BuildVersion == devVersion {
		return nil
	}

	v, err := semver.NewVersion(BuildVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid build version %q", BuildVersion)
	}

	if ok, reasons := c.Validate(v); !ok {
		if len(reasons) > 0 {
			return errors.Errorf("version %s does not satisfy %q: %s", v, constraint, reasons[0])
		}
		return errors.Errorf("version %s does not satisfy %q", v, constraint)
	}
	return nil
}
