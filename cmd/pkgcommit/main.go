// Command pkgcommit creates git commits for ebuild repositories, deriving
// a commit message prefix and summary from the staged changes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fwojciec/pkgcommit"
	"github.com/fwojciec/pkgcommit/ebuild"
	"github.com/fwojciec/pkgcommit/git"
	"github.com/fwojciec/pkgcommit/gitdiff"
	"github.com/fwojciec/pkgcommit/mangle"
)

// NewRootCmd constructs the pkgcommit root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pkgcommit [flags] [-- git-commit-args...]",
		Short:         "create git commits for ebuild repositories",
		Long:          "pkgcommit classifies the staged changes in an ebuild repository, generates a GLEP 66 commit message prefix and summary when possible, and creates the commit.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().StringArrayP("message", "m", nil, "specify commit message; repeated values become separate paragraphs")
	cmd.Flags().StringP("message-template", "M", "", "use commit message template from specified file")
	cmd.Flags().StringP("file", "F", "", "take the commit message from the given file")
	cmd.Flags().StringP("template", "t", "", "edit the commit message starting from the given file")
	cmd.Flags().BoolP("dry-run", "n", false, "pretend to create commit")
	cmd.Flags().BoolP("update", "u", false, "stage all changed files")
	cmd.Flags().BoolP("all", "a", false, "stage all changed/new/removed files")
	cmd.Flags().Bool("mangle", false, "forcibly enable/disable file mangling")
	cmd.Flags().MarkHidden("file")
	cmd.Flags().MarkHidden("template")
	cmd.MarkFlagsMutuallyExclusive("message", "message-template", "file", "template")
	cmd.MarkFlagsMutuallyExclusive("update", "all")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := ebuild.FindRoot(cwd)
	if err != nil {
		return err
	}
	runner := git.NewRunner(root)
	repo, err := ebuild.Open(root, runner)
	if err != nil {
		return err
	}

	// stage changes as requested
	switch {
	case flagBool(cmd, "update"):
		if err := runner.Add(ctx, "--update"); err != nil {
			return err
		}
	case flagBool(cmd, "all"):
		if err := runner.Add(ctx, "--all"); err != nil {
			return err
		}
	}

	// determine changes from staged files
	tokens, err := runner.StagedChanges(ctx)
	if err != nil {
		return err
	}
	changes, err := pkgcommit.Classify(tokens, repo.Categories())
	if err != nil {
		return err
	}

	// include existing Manifest files of the changed packages
	if err := stageManifests(ctx, runner, repo, changes); err != nil {
		return err
	}

	// mangle staged files, by default only for the gentoo repo
	gentoo := repo.Name() == "gentoo"
	mangling := gentoo
	if cmd.Flags().Changed("mangle") {
		mangling = flagBool(cmd, "mangle")
	}
	if mangling {
		if err := mangleChanges(ctx, runner, repo, changes, gentoo); err != nil {
			return err
		}
	}

	commitArgs, cleanup, err := messageArgs(ctx, cmd, runner, repo, changes)
	if err != nil {
		return err
	}
	defer cleanup()
	if flagBool(cmd, "dry-run") {
		commitArgs = append(commitArgs, "--dry-run")
	}
	if gentoo {
		// gentoo repo requires signoffs
		commitArgs = append(commitArgs, "--signoff")
	}
	commitArgs = append(commitArgs, args...)

	return runner.Commit(ctx, commitArgs...)
}

// stageManifests stages the Manifest files of every package with a changed
// definition file, when they exist on disk.
func stageManifests(ctx context.Context, runner *git.Runner, repo *ebuild.Repo, changes *pkgcommit.ChangeSet) error {
	var manifests []string
	seen := make(map[string]struct{})
	for _, e := range changes.Ebuilds() {
		key := e.Atom.Unversioned().String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		path := filepath.Join(repo.Root(), e.Atom.Category, e.Atom.Name, "Manifest")
		if _, err := os.Stat(path); err == nil {
			manifests = append(manifests, path)
		}
	}
	if len(manifests) == 0 {
		return nil
	}
	return runner.Add(ctx, manifests...)
}

// mangleChanges rewrites the staged files in place and re-stages the ones
// that changed. Package files/ directories are left alone.
func mangleChanges(ctx context.Context, runner *git.Runner, repo *ebuild.Repo, changes *pkgcommit.ChangeSet, gentoo bool) error {
	mangler := mangle.New(gentoo)
	mangler.Skip = regexp.MustCompile(
		"^" + regexp.QuoteMeta(repo.Root()) + "/[^/]+/[^/]+/files/.+$")

	paths := changes.Paths()
	abs := make([]string, len(paths))
	for i, p := range paths {
		abs[i] = repo.Root() + "/" + p
	}
	altered, err := mangler.Mangle(ctx, abs)
	if err != nil {
		return err
	}
	if len(altered) == 0 {
		return nil
	}
	return runner.Add(ctx, altered...)
}

// messageArgs determines the message-related arguments used with
// `git commit`, writing assembled message text to a temporary file. The
// returned cleanup removes the file once the commit step consumed it.
func messageArgs(ctx context.Context, cmd *cobra.Command, runner *git.Runner, repo *ebuild.Repo, changes *pkgcommit.ChangeSet) ([]string, func(), error) {
	noop := func() {}

	// -F/-t bypass message generation and forward directly to git
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		return []string{"-F", file}, noop, nil
	}
	if tmpl, _ := cmd.Flags().GetString("template"); tmpl != "" {
		return []string{"-t", tmpl}, noop, nil
	}

	var in pkgcommit.AssembleInput
	in.Paragraphs, _ = cmd.Flags().GetStringArray("message")
	if templatePath, _ := cmd.Flags().GetString("message-template"); templatePath != "" {
		content, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, noop, fmt.Errorf("reading message template: %w", err)
		}
		in.Template = content
	}

	gen := pkgcommit.GeneratedMessage{Prefix: changes.Prefix()}
	if len(in.Paragraphs) == 0 && in.Template == nil && gen.Prefix != "" {
		summarizer := &pkgcommit.Summarizer{Repo: repo, Git: runner, Parser: gitdiff.NewParser()}
		summary, err := summarizer.Summarize(ctx, changes)
		if err != nil {
			return nil, noop, err
		}
		gen.Summary = summary
	}

	msg, err := pkgcommit.Assemble(in, gen)
	if err != nil {
		return nil, noop, err
	}
	if msg == nil {
		return nil, noop, nil
	}

	tmp, err := os.CreateTemp("", "pkgcommit-msg-*")
	if err != nil {
		return nil, noop, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }
	if _, err := tmp.WriteString(msg.Text); err != nil {
		tmp.Close()
		return nil, cleanup, err
	}
	if err := tmp.Close(); err != nil {
		return nil, cleanup, err
	}

	// an editable message forces `git commit` to open an editor
	if msg.Editable {
		return []string{"-t", tmp.Name()}, cleanup, nil
	}
	return []string{"-F", tmp.Name()}, cleanup, nil
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
