// Package mock provides test doubles for pkgcommit interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/pkgcommit"
)

// Compile-time interface verification.
var _ pkgcommit.GitRunner = (*GitRunner)(nil)

// GitRunner is a mock implementation of pkgcommit.GitRunner.
type GitRunner struct {
	StagedChangesFn func(ctx context.Context) ([]string, error)
	AddFn           func(ctx context.Context, args ...string) error
	CommitFn        func(ctx context.Context, args ...string) error
	ShowFn          func(ctx context.Context, rev, path string) ([]byte, error)
	DiffStagedFn    func(ctx context.Context, paths ...string) ([]byte, error)
}

func (g *GitRunner) StagedChanges(ctx context.Context) ([]string, error) {
	return g.StagedChangesFn(ctx)
}

func (g *GitRunner) Add(ctx context.Context, args ...string) error {
	return g.AddFn(ctx, args...)
}

func (g *GitRunner) Commit(ctx context.Context, args ...string) error {
	return g.CommitFn(ctx, args...)
}

func (g *GitRunner) Show(ctx context.Context, rev, path string) ([]byte, error) {
	return g.ShowFn(ctx, rev, path)
}

func (g *GitRunner) DiffStaged(ctx context.Context, paths ...string) ([]byte, error) {
	return g.DiffStagedFn(ctx, paths...)
}
