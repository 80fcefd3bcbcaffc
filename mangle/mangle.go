// Package mangle normalizes the content of staged files before commit.
package mangle

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

var copyrightRe = regexp.MustCompile(`^# Copyright (\d{4}-)?(\d{4}) (.+)$`)

// Mangler rewrites files in place: it strips trailing whitespace, forces an
// EOF newline and, for the gentoo repo, updates copyright headers.
type Mangler struct {
	// Gentoo enables gentoo-specific copyright header mangling.
	Gentoo bool
	// Skip excludes matching paths from mangling.
	Skip *regexp.Regexp
	// Workers caps the number of files mangled concurrently. Defaults to
	// the number of CPUs.
	Workers int
	// Year overrides the current year used for copyright headers.
	Year int
}

// New returns a Mangler; gentoo enables copyright header rewriting.
func New(gentoo bool) *Mangler {
	return &Mangler{Gentoo: gentoo, Workers: runtime.NumCPU()}
}

// Mangle rewrites the given files in parallel and returns the sorted paths
// of files whose content changed.
func (m *Mangler) Mangle(ctx context.Context, paths []string) ([]string, error) {
	workers := m.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	year := m.Year
	if year == 0 {
		year = time.Now().Year()
	}

	var mu sync.Mutex
	var altered []string

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range paths {
		path := path
		if m.Skip != nil && m.Skip.MatchString(path) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			changed, err := m.mangleFile(path, year)
			if err != nil {
				return err
			}
			if changed {
				mu.Lock()
				altered = append(altered, path)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(altered)
	return altered, nil
}

func (m *Mangler) mangleFile(path string, year int) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("mangling %s: %w", path, err)
	}
	orig, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("mangling %s: %w", path, err)
	}

	data := string(orig)
	if m.Gentoo {
		data = mangleCopyright(data, year)
	}
	data = mangleEOF(data)
	if data == string(orig) {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(data), info.Mode()); err != nil {
		return false, fmt.Errorf("mangling %s: %w", path, err)
	}
	return true, nil
}

// mangleEOF drops EOF whitespace and forcibly adds an EOF newline.
func mangleEOF(data string) string {
	return strings.TrimRight(data, " \t\r\n") + "\n"
}

// mangleCopyright fixes the copyright header's end year and holder.
func mangleCopyright(data string, year int) string {
	line, rest, _ := strings.Cut(data, "\n")
	m := copyrightRe.FindStringSubmatch(line)
	if m == nil {
		return data
	}
	holder := strings.Replace(m[3], "Gentoo Foundation", "Gentoo Authors", 1)
	line = "# Copyright " + m[1] + strconv.Itoa(year) + " " + holder
	return line + "\n" + rest
}
