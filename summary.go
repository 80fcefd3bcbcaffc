package pkgcommit

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/pkgcommit/atom"
)

// Summarizer generates one-line commit summaries for staged package
// changes. Summary generation is best effort: when the staged changes don't
// fit a recognized pattern the result is an empty string, not an error.
type Summarizer struct {
	Repo   PkgRepo
	Git    GitRunner
	Parser DiffParser
}

// statusSummaries maps a change status to its summary routine. Statuses
// without an entry never produce a summary.
var statusSummaries = map[Status]func(*pkgSummary, context.Context) (string, error){
	StatusAdded:    (*pkgSummary).add,
	StatusDeleted:  (*pkgSummary).remove,
	StatusRenamed:  (*pkgSummary).rename,
	StatusModified: (*pkgSummary).modify,
}

// Summarize determines the commit message summary for the change set.
func (s *Summarizer) Summarize(ctx context.Context, cs *ChangeSet) (string, error) {
	// all staged changes must touch a single package
	if !cs.onlyPackages() {
		return "", nil
	}
	pkgs := cs.Pkgs()
	if len(pkgs) == 0 {
		return "", nil
	}

	unversioned := make(map[string]struct{})
	for _, p := range pkgs {
		unversioned[p.Atom.Unversioned().String()] = struct{}{}
	}
	if len(unversioned) != 1 {
		return "", nil
	}

	ebuilds := cs.Ebuilds()
	if len(ebuilds) == 0 {
		if len(pkgs) == 1 && strings.HasSuffix(pkgs[0].Path, "/Manifest") {
			return "update Manifest", nil
		}
		return "", nil
	}

	// deduplicate by versioned atom and require a single shared status
	var changes []*PkgChange
	seen := make(map[string]struct{})
	statuses := make(map[Status]struct{})
	for _, e := range ebuilds {
		key := e.Atom.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		changes = append(changes, e)
		statuses[e.Status] = struct{}{}
	}
	if len(statuses) != 1 {
		return "", nil
	}
	fn, ok := statusSummaries[changes[0].Status]
	if !ok {
		return "", nil
	}

	ps, err := s.newPkgSummary(ctx, changes)
	if err != nil {
		return "", err
	}
	return fn(ps, ctx)
}

// pkgSummary carries the derived package state summary routines consult.
// Everything is computed once up front.
type pkgSummary struct {
	s        *Summarizer
	pkgs     []*PkgChange
	versions []string     // changed versions, sorted ascending
	revbump  bool         // any change involves a version revision
	existing []*atom.Atom // tracked versions of the package
}

func (s *Summarizer) newPkgSummary(ctx context.Context, changes []*PkgChange) (*pkgSummary, error) {
	ps := &pkgSummary{s: s, pkgs: changes}

	atoms := make([]*atom.Atom, len(changes))
	for i, c := range changes {
		atoms[i] = c.Atom
		if c.Atom.Version != nil && c.Atom.Version.Revision != 0 {
			ps.revbump = true
		}
	}
	sort.Slice(atoms, func(i, j int) bool { return atom.Compare(atoms[i], atoms[j]) < 0 })
	ps.versions = make([]string, len(atoms))
	for i, a := range atoms {
		ps.versions[i] = a.Version.String()
	}

	existing, err := s.Repo.MatchExisting(ctx, changes[0].Atom.Unversioned())
	if err != nil {
		return nil, fmt.Errorf("matching existing versions: %w", err)
	}
	ps.existing = existing
	return ps, nil
}

// add generates summaries for add actions.
func (ps *pkgSummary) add(context.Context) (string, error) {
	if len(ps.existing) == len(ps.pkgs) {
		return "initial import", nil
	}
	if !ps.revbump {
		msg := "add " + strings.Join(ps.versions, ", ")
		if len(ps.versions) == 1 || len(msg) <= 50 {
			return msg, nil
		}
		return "add versions", nil
	}
	return "", nil
}

// remove generates summaries for remove actions.
func (ps *pkgSummary) remove(context.Context) (string, error) {
	if len(ps.existing) > 0 {
		msg := "drop " + strings.Join(ps.versions, ", ")
		if len(ps.versions) == 1 || len(msg) <= 50 {
			return msg, nil
		}
		return "drop versions", nil
	}
	return "treeclean", nil
}

// rename generates summaries for single, non-revbump `git mv` changes.
func (ps *pkgSummary) rename(context.Context) (string, error) {
	if len(ps.pkgs) != 1 || ps.revbump {
		return "", nil
	}
	change := ps.pkgs[0]
	if change.Old == nil || change.Old.Version == nil {
		return "", nil
	}
	return fmt.Sprintf("add %s, drop %s", change.Atom.Version, change.Old.Version), nil
}

// eapiLineRe matches an EAPI assignment line in a package definition.
var eapiLineRe = regexp.MustCompile(`^EAPI=["']?[A-Za-z0-9+_.-]*["']?\s*(?:#.*)?$`)

// modify generates summaries for EAPI updates: a single modified package
// definition whose staged diff touches nothing but the EAPI assignment.
func (ps *pkgSummary) modify(ctx context.Context) (string, error) {
	if len(ps.pkgs) != 1 {
		return "", nil
	}
	change := ps.pkgs[0]

	oldMeta, err := ps.s.Repo.MatchHistorical(ctx, change.Atom, "HEAD")
	if err != nil {
		return "", fmt.Errorf("matching historical package: %w", err)
	}
	newMeta, err := ps.s.Repo.Metadata(ctx, change.Atom)
	if err != nil {
		return "", fmt.Errorf("reading package metadata: %w", err)
	}
	if oldMeta == nil || newMeta == nil {
		return "", nil
	}

	raw, err := ps.s.Git.DiffStaged(ctx, change.Path)
	if err != nil {
		return "", fmt.Errorf("diffing staged changes: %w", err)
	}
	diff, err := ps.s.Parser.Parse(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parsing staged diff: %w", err)
	}

	if eapiOnlyChange(diff) && newMeta.Inherits(oldMeta.EAPI) {
		return fmt.Sprintf("update EAPI %s -> %s", oldMeta.EAPI, newMeta.EAPI), nil
	}
	return "", nil
}

// eapiOnlyChange reports whether every changed line in the diff is an EAPI
// assignment.
func eapiOnlyChange(d *Diff) bool {
	changed := 0
	for _, f := range d.Files {
		for _, h := range f.Hunks {
			for _, l := range h.Lines {
				if l.Type == LineContext {
					continue
				}
				if !eapiLineRe.MatchString(strings.TrimRight(l.Content, "\n")) {
					return false
				}
				changed++
			}
		}
	}
	return changed > 0
}
