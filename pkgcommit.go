// Package pkgcommit provides the change classification and commit-message
// generation core for committing to ebuild repositories.
package pkgcommit

import (
	"context"
	"io"
	"strings"

	"github.com/fwojciec/pkgcommit/atom"
)

// Status is a VCS-reported change status letter.
type Status string

// Change statuses as reported by `git diff --name-status`.
const (
	StatusAdded    Status = "A"
	StatusCopied   Status = "C"
	StatusDeleted  Status = "D"
	StatusModified Status = "M"
	StatusRenamed  Status = "R"
)

// Change is a generic staged file change.
type Change struct {
	Status Status
	Path   string // slash-separated, relative to the repository root
}

// Prefix returns the commit-message prefix this change would contribute if
// it were the sole staged change: its parent directory, or the bare file
// name for repository root files.
func (c *Change) Prefix() string {
	if i := strings.LastIndexByte(c.Path, '/'); i >= 0 {
		return c.Path[:i] + ": "
	}
	return c.Path + ": "
}

// Info returns the change's status and path.
func (c *Change) Info() Change { return *c }

// PkgChange is a staged change within a package directory.
type PkgChange struct {
	Change
	Atom   *atom.Atom
	Ebuild bool       // true only for the versioned package definition file
	Old    *atom.Atom // pre-rename atom, set only for renames
}

// Prefix returns the unversioned package atom as a prefix.
func (c *PkgChange) Prefix() string {
	return c.Atom.Unversioned().String() + ": "
}

// EclassChange is a staged change to an eclass file.
type EclassChange struct {
	Change
	Name string // eclass file base name
}

// Prefix returns the eclass file name as a prefix.
func (c *EclassChange) Prefix() string {
	return c.Name + ": "
}

// Record is a classified staged change.
type Record interface {
	// Prefix returns the commit-message prefix the record would contribute
	// as the sole staged change.
	Prefix() string
	// Info returns the underlying status and path.
	Info() Change
}

// Kind distinguishes the classification groups within a ChangeSet.
type Kind int

// Classification kinds. Generic changes form one KindOther group per
// top-level directory.
const (
	KindPackage Kind = iota
	KindEclass
	KindOther
)

// GeneratedMessage holds the computed commit-message parts. Either part may
// be empty when the staged changes don't fit a recognized pattern.
type GeneratedMessage struct {
	Prefix  string
	Summary string
}

// CommitMessage is assembled message text ready for the VCS commit step.
// Editable messages should be opened in an editor rather than used as-is.
type CommitMessage struct {
	Text     string
	Editable bool
}

// CategorySet reports which top-level directories are package categories.
type CategorySet map[string]struct{}

// NewCategorySet builds a CategorySet from category names.
func NewCategorySet(names ...string) CategorySet {
	s := make(CategorySet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is a known category.
func (s CategorySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// PkgMeta is package metadata needed for summary generation.
type PkgMeta struct {
	EAPI      string
	Ancestors []string // earlier EAPIs the declared EAPI inherits from
}

// Inherits reports whether the metadata's EAPI declares ancestry from eapi.
func (m *PkgMeta) Inherits(eapi string) bool {
	for _, a := range m.Ancestors {
		if a == eapi {
			return true
		}
	}
	return false
}

// GitRunner provides access to the git operations the commit flow needs.
type GitRunner interface {
	// StagedChanges returns the NUL-separated token stream of staged
	// changes, as produced by `git diff --name-status --cached -z`.
	StagedChanges(ctx context.Context) ([]string, error)
	// Add stages files, forwarding args to `git add`.
	Add(ctx context.Context, args ...string) error
	// Commit creates a commit, forwarding args to `git commit`.
	Commit(ctx context.Context, args ...string) error
	// Show returns the content of path at the given revision.
	Show(ctx context.Context, rev, path string) ([]byte, error)
	// DiffStaged returns the unified diff of staged changes, optionally
	// limited to the given paths.
	DiffStaged(ctx context.Context, paths ...string) ([]byte, error)
}

// PkgRepo answers package-repository queries for summary generation.
// Lookups that find no matching package return nil without error.
type PkgRepo interface {
	// Categories returns the repository's package category directories.
	Categories() CategorySet
	// MatchExisting returns the currently tracked versions of the given
	// unversioned atom, sorted ascending by version.
	MatchExisting(ctx context.Context, a *atom.Atom) ([]*atom.Atom, error)
	// Metadata returns metadata for the package at its current state.
	Metadata(ctx context.Context, a *atom.Atom) (*PkgMeta, error)
	// MatchHistorical returns metadata for the package as of rev.
	MatchHistorical(ctx context.Context, a *atom.Atom, rev string) (*PkgMeta, error)
}

// Diff represents a parsed unified diff.
type Diff struct {
	Files []FileDiff
}

// FileDiff represents parsed changes to a single file.
type FileDiff struct {
	OldPath string
	NewPath string
	Hunks   []Hunk
}

// Hunk is a contiguous block of changes within a file.
type Hunk struct {
	Lines []Line
}

// Line is a single line within a hunk.
type Line struct {
	Type    LineType
	Content string
}

// LineType represents the type of a diff line.
type LineType int

// Line types.
const (
	LineContext LineType = iota
	LineAdded
	LineDeleted
)

// DiffParser parses unified diff content.
type DiffParser interface {
	Parse(r io.Reader) (*Diff, error)
}
