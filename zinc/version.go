package zinc

import "github.com/Masterminds/semver/v3"

// Version identifies which Zinc grammar variant a grid declares in its
// "ver" header tag. The parser rejects NA under 2.0; list, dict,
// nested-grid, and XStr literals are accepted under either variant.
type Version int

const (
	Ver2 Version = iota
	Ver3
)

var (
	constraintV2 = semver.MustParse("2.0.0")
	constraintV3 = semver.MustParse("3.0.0")
)

// NearestVersion maps an arbitrary declared version string to the
// nearest grammar variant this package implements, the way the
// reference parser's NearestMatch dispatches between its 2.0 and 3.0
// grammars rather than failing outright on an unrecognized minor/patch.
func NearestVersion(declared string) (Version, error) {
	v, err := semver.NewVersion(declared)
	if err != nil {
		return Ver3, newParseError(1, 1, KindBadNumber, "invalid ver header %q: %v", declared, err)
	}
	if v.LessThan(constraintV3) && !v.LessThan(constraintV2) {
		return Ver2, nil
	}
	if v.GreaterThan(constraintV3) || v.Equal(constraintV3) {
		return Ver3, nil
	}
	return Ver2, nil
}

func (v Version) String() string {
	if v == Ver2 {
		return "2.0"
	}
	return "3.0"
}
