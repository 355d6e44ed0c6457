package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionPattern is intentionally strict: three dot-separated runs of digits,
// no "v" prefix, no signs, no pre-release or build metadata.
var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Version is a semantic version triple. The zero value is "0.0.0".
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// InitialVersion is the version assigned to a freshly registered app.
var InitialVersion = Version{Major: 0, Minor: 1, Patch: 0}

// ParseVersion parses a strict "major.minor.patch" string. Leading zeros are
// accepted but the triple carries only the numeric values, so callers that
// must echo a version back verbatim keep the original string.
func ParseVersion(s string) (Version, error) {
	if !versionPattern.MatchString(s) {
		return Version{}, fmt.Errorf("invalid version %q: must match major.minor.patch", s)
	}
	parts := strings.SplitN(s, ".", 3)
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q: %w", p, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Part selects which component of a version a bump applies to.
type Part string

const (
	PartMajor Part = "major"
	PartMinor Part = "minor"
	PartPatch Part = "patch"
)

// ParsePart validates a bump type supplied by a client.
func ParsePart(s string) (Part, error) {
	switch Part(s) {
	case PartMajor, PartMinor, PartPatch:
		return Part(s), nil
	}
	return "", fmt.Errorf("invalid version type %q: must be one of major, minor, patch", s)
}

// Bump returns the next version for the given part. Lower-order components
// reset to zero, the others are untouched.
func (v Version) Bump(p Part) Version {
	switch p {
	case PartMajor:
		return Version{Major: v.Major + 1, Minor: 0, Patch: 0}
	case PartMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1, Patch: 0}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}
