package mock

import (
	"context"

	"github.com/fwojciec/pkgcommit"
	"github.com/fwojciec/pkgcommit/atom"
)

// Compile-time interface verification.
var _ pkgcommit.PkgRepo = (*PkgRepo)(nil)

// PkgRepo is a mock implementation of pkgcommit.PkgRepo.
type PkgRepo struct {
	CategoriesFn      func() pkgcommit.CategorySet
	MatchExistingFn   func(ctx context.Context, a *atom.Atom) ([]*atom.Atom, error)
	MetadataFn        func(ctx context.Context, a *atom.Atom) (*pkgcommit.PkgMeta, error)
	MatchHistoricalFn func(ctx context.Context, a *atom.Atom, rev string) (*pkgcommit.PkgMeta, error)
}

func (r *PkgRepo) Categories() pkgcommit.CategorySet {
	return r.CategoriesFn()
}

func (r *PkgRepo) MatchExisting(ctx context.Context, a *atom.Atom) ([]*atom.Atom, error) {
	return r.MatchExistingFn(ctx, a)
}

func (r *PkgRepo) Metadata(ctx context.Context, a *atom.Atom) (*pkgcommit.PkgMeta, error) {
	return r.MetadataFn(ctx, a)
}

func (r *PkgRepo) MatchHistorical(ctx context.Context, a *atom.Atom, rev string) (*pkgcommit.PkgMeta, error) {
	return r.MatchHistoricalFn(ctx, a, rev)
}
