// Package git provides access to git operations via shell commands.
package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fwojciec/pkgcommit"
)

// Compile-time interface verification.
var _ pkgcommit.GitRunner = (*Runner)(nil)

// Runner executes git commands via shell against a single repository.
type Runner struct {
	dir string

	// Stdin/Stdout/Stderr are attached to `git commit` so it can open an
	// editor. They default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a git runner for the repository at dir.
func NewRunner(dir string) *Runner {
	return &Runner{
		dir:    dir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *Runner) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git %s failed: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return output, nil
}

// StagedChanges returns the NUL-separated token stream of staged changes.
func (r *Runner) StagedChanges(ctx context.Context) ([]string, error) {
	output, err := r.run(ctx, "diff", "--name-status", "--cached", "-z")
	if err != nil {
		return nil, err
	}
	raw := strings.TrimRight(string(output), "\x00")
	if raw == "" {
		return nil, nil
	}
	return strings.Split(raw, "\x00"), nil
}

// Add stages files, forwarding args to `git add`.
func (r *Runner) Add(ctx context.Context, args ...string) error {
	_, err := r.run(ctx, append([]string{"add"}, args...)...)
	return err
}

// Commit creates a commit with the runner's streams attached, so git can
// open an interactive editor when needed.
func (r *Runner) Commit(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir, "commit"}, args...)...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}

// Show returns the content of path at the given revision.
func (r *Runner) Show(ctx context.Context, rev, path string) ([]byte, error) {
	return r.run(ctx, "show", rev+":"+path)
}

// DiffStaged returns the unified diff of staged changes, optionally limited
// to the given paths.
func (r *Runner) DiffStaged(ctx context.Context, paths ...string) ([]byte, error) {
	args := []string{"diff", "--cached"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return r.run(ctx, args...)
}
