package domain

import (
	"errors"
	"fmt"
)

// ErrNoReleaseBranch is returned when no branch matches the release branch
// naming convention (releases_v<major>.0.0 or releases/v<major>.0.0).
var ErrNoReleaseBranch = errors.New("no release branch found")

// ErrNotBetaBranch is returned when the selected release branch is not in Beta.
var ErrNotBetaBranch = errors.New("branch is not in beta")

// ErrVersionMarkerNotFound is returned when the build descriptor contains no
// VERSION = "..." assignment.
var ErrVersionMarkerNotFound = errors.New(`could not match VERSION = "..." in the build descriptor`)

// InvalidVersionError reports an A-C version string that does not have the
// <major>.0b<minor> shape.
type InvalidVersionError struct {
	Version string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid A-C version format %q", e.Version)
}
