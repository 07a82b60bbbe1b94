package tools

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// GitTool provides the version-control operations exposed to callers. Every
// operation shells out to the configured command and surfaces its output
// verbatim.
type GitTool struct {
	guard     *PathGuard
	Command   string
	PRCommand string
	Remote    string
	AllowExec bool
	AllowPush bool
	// CoveragePath is the artifact staged by Commit when include_coverage is set.
	CoveragePath string
}

// NewGitTool builds a git runner rooted at the project guard.
func NewGitTool(guard *PathGuard, command, prCommand, remote string) *GitTool {
	if command == "" {
		command = "git"
	}
	if prCommand == "" {
		prCommand = "gh"
	}
	return &GitTool{guard: guard, Command: command, PRCommand: prCommand, Remote: remote}
}

// Status returns git status --short for dir.
func (g *GitTool) Status(ctx context.Context, dir string) (string, error) {
	return g.run(ctx, dir, g.Command, "status", "--short")
}

// AddAll stages every change in dir.
func (g *GitTool) AddAll(ctx context.Context, dir string) (string, error) {
	return g.run(ctx, dir, g.Command, "add", "-A")
}

// Commit records staged changes; when includeCoverage is set the coverage
// artifact is force-staged first so an ignored report still lands in the commit.
func (g *GitTool) Commit(ctx context.Context, dir, message string, includeCoverage bool) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", Validation("git_commit", "commit message is required")
	}
	if includeCoverage && g.CoveragePath != "" {
		if out, err := g.run(ctx, dir, g.Command, "add", "-f", g.CoveragePath); err != nil {
			return out, err
		}
	}
	return g.run(ctx, dir, g.Command, "commit", "-m", message)
}

// Push pushes the current branch to the configured remote.
func (g *GitTool) Push(ctx context.Context, dir string) (string, error) {
	if !g.AllowPush {
		return "", Validation("git_push", "push disabled by configuration")
	}
	args := []string{"push"}
	if g.Remote != "" {
		args = append(args, g.Remote)
	}
	return g.run(ctx, dir, g.Command, args...)
}

// PullRequest opens a pull request for the current branch via the configured
// PR command (gh pr create).
func (g *GitTool) PullRequest(ctx context.Context, dir, title string) (string, error) {
	args := []string{"pr", "create", "--fill"}
	if strings.TrimSpace(title) != "" {
		args = append(args, "--title", title)
	}
	return g.run(ctx, dir, g.PRCommand, args...)
}

func (g *GitTool) run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	if !g.AllowExec {
		return "", Validation("git", "git operations disabled")
	}
	workDir, err := g.guard.ResolveDir(dir)
	if err != nil {
		return "", err
	}

	op := name + " " + args[0]
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", ProcessFailure(op, errors.New("command not found: "+name), stderr.String(), exitCode)
		}
		return stdout.String(), ProcessFailure(op, err, stderr.String(), exitCode)
	}
	return stdout.String(), nil
}
