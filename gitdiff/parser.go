// Package gitdiff implements diff parsing using bluekeyes/go-gitdiff.
package gitdiff

import (
	"io"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/pkgcommit"
)

// Compile-time interface verification.
var _ pkgcommit.DiffParser = (*Parser)(nil)

// Parser parses unified diff content using go-gitdiff.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads diff content and returns the parsed result.
func (p *Parser) Parse(r io.Reader) (*pkgcommit.Diff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, err
	}

	result := &pkgcommit.Diff{
		Files: make([]pkgcommit.FileDiff, 0, len(files)),
	}
	for _, f := range files {
		result.Files = append(result.Files, convertFile(f))
	}
	return result, nil
}

func convertFile(f *gitdiff.File) pkgcommit.FileDiff {
	fd := pkgcommit.FileDiff{
		OldPath: f.OldName,
		NewPath: f.NewName,
	}
	fd.Hunks = make([]pkgcommit.Hunk, 0, len(f.TextFragments))
	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}
	return fd
}

func convertFragment(frag *gitdiff.TextFragment) pkgcommit.Hunk {
	var hunk pkgcommit.Hunk
	for _, l := range frag.Lines {
		line := pkgcommit.Line{Content: l.Line}
		switch l.Op {
		case gitdiff.OpAdd:
			line.Type = pkgcommit.LineAdded
		case gitdiff.OpDelete:
			line.Type = pkgcommit.LineDeleted
		default:
			line.Type = pkgcommit.LineContext
		}
		hunk.Lines = append(hunk.Lines, line)
	}
	return hunk
}
