package mock

import (
	"io"

	"github.com/fwojciec/pkgcommit"
)

// Compile-time interface verification.
var _ pkgcommit.DiffParser = (*DiffParser)(nil)

// DiffParser is a mock implementation of pkgcommit.DiffParser.
type DiffParser struct {
	ParseFn func(r io.Reader) (*pkgcommit.Diff, error)
}

func (p *DiffParser) Parse(r io.Reader) (*pkgcommit.Diff, error) {
	return p.ParseFn(r)
}
