// Package ebuild implements package-repository queries against an ebuild
// repository checkout backed by git.
package ebuild

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/pkgcommit"
	"github.com/fwojciec/pkgcommit/atom"
)

// Compile-time interface verification.
var _ pkgcommit.PkgRepo = (*Repo)(nil)

// ErrNotRepo is returned when a directory is not part of an ebuild repo.
var ErrNotRepo = errors.New("not in an ebuild repository")

// Repo is an ebuild repository checkout.
type Repo struct {
	root       string
	name       string
	categories pkgcommit.CategorySet
	git        pkgcommit.GitRunner
}

// FindRoot walks upward from dir looking for an ebuild repository root,
// identified by a profiles/repo_name file.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "profiles", "repo_name")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotRepo
		}
		dir = parent
	}
}

// Open reads the repository's profile files and returns a Repo using g for
// historical queries.
func Open(root string, g pkgcommit.GitRunner) (*Repo, error) {
	name, err := os.ReadFile(filepath.Join(root, "profiles", "repo_name"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRepo, root)
	}
	categories, err := readCategories(filepath.Join(root, "profiles", "categories"))
	if err != nil {
		return nil, err
	}
	return &Repo{
		root:       root,
		name:       strings.TrimSpace(string(name)),
		categories: categories,
		git:        g,
	}, nil
}

// readCategories parses a profiles/categories file, one category per line.
func readCategories(path string) (pkgcommit.CategorySet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pkgcommit.NewCategorySet(), nil
		}
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	defer f.Close()

	categories := pkgcommit.NewCategorySet()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		categories[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return categories, nil
}

// Root returns the repository's filesystem root.
func (r *Repo) Root() string { return r.root }

// Name returns the repository name from profiles/repo_name.
func (r *Repo) Name() string { return r.name }

// Categories returns the repository's package category directories.
func (r *Repo) Categories() pkgcommit.CategorySet { return r.categories }

// MatchExisting returns the tracked versions of the given unversioned atom,
// sorted ascending by version. A missing package directory matches nothing.
func (r *Repo) MatchExisting(_ context.Context, a *atom.Atom) ([]*atom.Atom, error) {
	entries, err := os.ReadDir(filepath.Join(r.root, a.Category, a.Name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("matching %s: %w", a, err)
	}

	var matches []*atom.Atom
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".ebuild")
		if entry.IsDir() || !ok {
			continue
		}
		m, err := atom.ParseVersioned(a.Category, name)
		if err != nil || m.Name != a.Name {
			continue
		}
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool { return atom.Compare(matches[i], matches[j]) < 0 })
	return matches, nil
}

// Metadata returns metadata parsed from the package's definition file in
// the working tree, or nil if the file doesn't exist.
func (r *Repo) Metadata(_ context.Context, a *atom.Atom) (*pkgcommit.PkgMeta, error) {
	data, err := os.ReadFile(filepath.Join(r.root, ebuildPath(a)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", a, err)
	}
	return metaFromContent(data), nil
}

// MatchHistorical returns metadata for the package's definition file as of
// rev, or nil if the file didn't exist at that revision.
func (r *Repo) MatchHistorical(ctx context.Context, a *atom.Atom, rev string) (*pkgcommit.PkgMeta, error) {
	data, err := r.git.Show(ctx, rev, ebuildPath(a))
	if err != nil {
		// git show reports missing paths as a fatal error
		msg := err.Error()
		if strings.Contains(msg, "does not exist") || strings.Contains(msg, "exists on disk") {
			return nil, nil
		}
		return nil, fmt.Errorf("matching %s at %s: %w", a, rev, err)
	}
	return metaFromContent(data), nil
}

// ebuildPath returns the repository-relative definition file path for a
// versioned atom.
func ebuildPath(a *atom.Atom) string {
	return fmt.Sprintf("%s/%s/%s-%s.ebuild", a.Category, a.Name, a.Name, a.Version)
}

func metaFromContent(data []byte) *pkgcommit.PkgMeta {
	eapi := parseEAPI(data)
	return &pkgcommit.PkgMeta{EAPI: eapi, Ancestors: Ancestors(eapi)}
}
