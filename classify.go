package pkgcommit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/pkgcommit/atom"
)

// ErrNoStagedChanges is returned when the staged-change stream is empty.
var ErrNoStagedChanges = errors.New("no staged changes exist")

var (
	ebuildRe = regexp.MustCompile(`^(?P<category>[^/]+)/[^/]+/(?P<package>[^/]+)\.ebuild$`)
	eclassRe = regexp.MustCompile(`^eclass/(?P<name>[^/]+\.eclass)$`)
)

// Classify consumes the staged-change token stream produced by
// `git diff --name-status --cached -z` and groups the changes into a
// ChangeSet. Rename and copy entries carry the old path as an extra token.
// Paths whose package definition file name fails to parse as an atom are
// dropped silently.
func Classify(tokens []string, categories CategorySet) (*ChangeSet, error) {
	if len(tokens) == 0 {
		return nil, ErrNoStagedChanges
	}

	cs := NewChangeSet()
	i := 0
	next := func() (string, bool) {
		if i >= len(tokens) {
			return "", false
		}
		t := tokens[i]
		i++
		return t, true
	}

	for i < len(tokens) {
		rawStatus, _ := next()
		status := Status(rawStatus)
		var oldPath string
		if strings.HasPrefix(rawStatus, "R") || strings.HasPrefix(rawStatus, "C") {
			// rename and copy statuses carry a similarity score, e.g.
			// R100, plus the source path as an extra token
			status = StatusRenamed
			if rawStatus[0] == 'C' {
				status = StatusCopied
			}
			old, ok := next()
			if !ok {
				return nil, fmt.Errorf("truncated change stream after status %q", rawStatus)
			}
			oldPath = old
		}
		path, ok := next()
		if !ok {
			return nil, fmt.Errorf("truncated change stream after status %q", rawStatus)
		}

		segments := strings.Split(path, "/")
		if categories.Has(segments[0]) && len(segments) > 2 {
			if m := ebuildRe.FindStringSubmatch(path); m != nil {
				// package definition changes
				a, err := atom.ParseVersioned(m[1], m[2])
				if err != nil {
					continue
				}
				var old *atom.Atom
				if status == StatusRenamed || status == StatusCopied {
					if om := ebuildRe.FindStringSubmatch(oldPath); om != nil {
						old, _ = atom.ParseVersioned(om[1], om[2])
					}
				}
				cs.add(KindPackage, "", &PkgChange{
					Change: Change{Status: status, Path: path},
					Atom:   a,
					Ebuild: true,
					Old:    old,
				})
				continue
			}
			// other package level changes
			if a, err := atom.New(segments[0] + "/" + segments[1]); err == nil {
				cs.add(KindPackage, "", &PkgChange{
					Change: Change{Status: status, Path: path},
					Atom:   a,
				})
				continue
			}
		}
		if m := eclassRe.FindStringSubmatch(path); m != nil {
			cs.add(KindEclass, "", &EclassChange{
				Change: Change{Status: status, Path: path},
				Name:   m[1],
			})
			continue
		}
		cs.add(KindOther, segments[0], &Change{Status: status, Path: path})
	}

	return cs, nil
}
