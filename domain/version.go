package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// releaseBranchPattern matches release branch names. Both the "_" and "/"
	// separators are in use on old Fenix branches and must be accepted.
	releaseBranchPattern = regexp.MustCompile(`^releases[_/]v(\d+)\.0\.0$`)

	// betaVersionPattern is a loose channel check: it only anchors at the
	// start, since version.txt may carry trailing text or a newline.
	betaVersionPattern = regexp.MustCompile(`^\d+\.0b\d+`)

	// acVersionPattern strictly validates a full A-C version string.
	acVersionPattern = regexp.MustCompile(`^\d+\.0b\d+$`)

	// versionMarkerPattern matches the VERSION assignment in the build descriptor.
	versionMarkerPattern = regexp.MustCompile(`VERSION = "([^"]*)"`)
)

// LatestReleaseMajor selects the highest major version among the release
// branches in branchNames. Returns ErrNoReleaseBranch when no name matches
// the release branch convention.
func LatestReleaseMajor(branchNames []string) (int, error) {
	var versions []string
	for _, name := range branchNames {
		if matches := releaseBranchPattern.FindStringSubmatch(name); matches != nil {
			versions = append(versions, "v"+matches[1]+".0.0")
		}
	}
	if len(versions) == 0 {
		return 0, ErrNoReleaseBranch
	}

	sort.Slice(versions, func(i, j int) bool {
		return semver.Compare(versions[i], versions[j]) > 0
	})

	major, err := strconv.Atoi(strings.TrimPrefix(semver.Major(versions[0]), "v"))
	if err != nil {
		return 0, fmt.Errorf("unexpected release branch version %q: %w", versions[0], err)
	}
	return major, nil
}

// ReleaseBranchName builds the canonical release branch name for a major version.
func ReleaseBranchName(major int) string {
	return fmt.Sprintf("releases_v%d.0.0", major)
}

// IsBetaVersion reports whether the given version text identifies a Beta
// channel. The check is a prefix match, not a full-string one: version.txt
// is free-form release metadata.
func IsBetaVersion(text string) bool {
	return betaVersionPattern.MatchString(text)
}

// ValidateACVersion checks that v is in the format of 109.0b1.
// Returns v unchanged on success.
func ValidateACVersion(v string) (string, error) {
	if !acVersionPattern.MatchString(v) {
		return "", &InvalidVersionError{Version: v}
	}
	return v, nil
}

// ExtractACVersion finds the first VERSION = "..." assignment in the build
// descriptor source and returns the validated A-C version it pins.
func ExtractACVersion(src string) (string, error) {
	matches := versionMarkerPattern.FindStringSubmatch(src)
	if matches == nil {
		return "", ErrVersionMarkerNotFound
	}
	return ValidateACVersion(matches[1])
}

// MajorACVersion returns the major component of the given A-C version,
// as text: the output is a label, never used arithmetically.
func MajorACVersion(v string) (string, error) {
	validated, err := ValidateACVersion(v)
	if err != nil {
		return "", err
	}
	major, _, _ := strings.Cut(validated, ".")
	return major, nil
}
