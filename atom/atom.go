// Package atom parses package identifiers of the form category/name with an
// optional version, and implements version ordering for them.
package atom

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed is returned when a string cannot be parsed as an atom.
var ErrMalformed = errors.New("malformed atom")

var (
	categoryRe = regexp.MustCompile(`^[A-Za-z0-9+_][A-Za-z0-9+_.-]*$`)
	nameRe     = regexp.MustCompile(`^[A-Za-z0-9+_][A-Za-z0-9+_-]*$`)
)

// Atom is a structured reference to a package, optionally versioned.
type Atom struct {
	Category string
	Name     string
	Version  *Version // nil for unversioned atoms
}

// New parses an unversioned "category/name" atom.
func New(s string) (*Atom, error) {
	category, name, ok := strings.Cut(s, "/")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if !categoryRe.MatchString(category) || !nameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return &Atom{Category: category, Name: name}, nil
}

// ParseVersioned parses a "name-version" string within a category, as found
// in package definition file names.
func ParseVersioned(category, nameVer string) (*Atom, error) {
	if !categoryRe.MatchString(category) {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, category+"/"+nameVer)
	}
	name, ver, err := splitNameVersion(nameVer)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, category+"/"+nameVer)
	}
	if !nameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, category+"/"+nameVer)
	}
	return &Atom{Category: category, Name: name, Version: ver}, nil
}

// splitNameVersion splits "name-version" at the last hyphen that starts a
// valid version. The version may itself contain a hyphen for the -rN
// revision component.
func splitNameVersion(s string) (string, *Version, error) {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] != '-' {
			continue
		}
		ver, err := ParseVersion(s[i+1:])
		if err != nil {
			continue
		}
		return s[:i], ver, nil
	}
	return "", nil, ErrMalformed
}

// Unversioned returns the category/name atom without version information.
func (a *Atom) Unversioned() *Atom {
	if a.Version == nil {
		return a
	}
	return &Atom{Category: a.Category, Name: a.Name}
}

// String returns the canonical form, including the version when present.
func (a *Atom) String() string {
	if a.Version == nil {
		return a.Category + "/" + a.Name
	}
	return a.Category + "/" + a.Name + "-" + a.Version.String()
}

// Compare orders two atoms by category, name, then version. Unversioned
// atoms sort before any versioned atom of the same package.
func Compare(a, b *Atom) int {
	if c := strings.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	switch {
	case a.Version == nil && b.Version == nil:
		return 0
	case a.Version == nil:
		return -1
	case b.Version == nil:
		return 1
	}
	return CompareVersions(a.Version, b.Version)
}
