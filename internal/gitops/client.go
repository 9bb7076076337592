package gitops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coralkit/gitclone-agent/pkg/types"
)

// commandRunner executes a git command in dir and returns trimmed stdout.
type commandRunner func(ctx context.Context, dir string, args ...string) (string, error)

// Client performs pull-request checkouts by executing the git CLI.
type Client struct {
	workspaceDir string
	accessToken  string
	timeout      time.Duration
	logger       *zap.Logger

	run    commandRunner
	verify func(repoPath, branch string) (string, error)
}

// NewClient creates a new git client rooted at workspaceDir.
func NewClient(workspaceDir, accessToken string, timeout time.Duration, logger *zap.Logger) *Client {
	c := &Client{
		workspaceDir: workspaceDir,
		accessToken:  accessToken,
		timeout:      timeout,
		logger:       logger,
	}
	c.run = c.execGit
	c.verify = headSHA
	return c
}

// RepositoryPath returns the local path a repository is cloned into.
func (c *Client) RepositoryPath(repo types.RepositoryRef) string {
	return filepath.Join(c.workspaceDir, repo.Owner, repo.Name)
}

// CheckoutPullRequest clones the repository if needed, fetches the pull
// request head into a local pr-<N> branch, checks it out, and returns the
// absolute repository path along with the head commit.
func (c *Client) CheckoutPullRequest(ctx context.Context, req types.CheckoutRequest) (*types.CheckoutResult, error) {
	repoPath := c.RepositoryPath(req.Repository)
	branch := req.BranchName()

	c.logger.Info("checking out pull request",
		zap.String("repository", req.Repository.FullName()),
		zap.Int("pr_number", req.PRNumber),
		zap.String("path", repoPath),
	)

	if err := c.ensureClone(ctx, req.Repository, repoPath); err != nil {
		return nil, err
	}

	c.checkoutBaseBranch(ctx, repoPath)

	exists, err := c.localBranchExists(ctx, repoPath, branch)
	if err != nil {
		return nil, err
	}
	if exists {
		c.logger.Info("deleting stale local branch", zap.String("branch", branch))
		if _, err := c.run(ctx, repoPath, "branch", "-D", branch); err != nil {
			return nil, fmt.Errorf("failed to delete branch %s: %w", branch, err)
		}
	}

	refspec := fmt.Sprintf("pull/%d/head:%s", req.PRNumber, branch)
	if _, err := c.run(ctx, repoPath, "fetch", "origin", refspec); err != nil {
		return nil, fmt.Errorf("failed to fetch pull request %d: %w", req.PRNumber, err)
	}

	if _, err := c.run(ctx, repoPath, "checkout", branch); err != nil {
		return nil, fmt.Errorf("failed to checkout branch %s: %w", branch, err)
	}

	sha, err := c.verify(repoPath, branch)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	c.logger.Info("checked out pull request",
		zap.String("repository", req.Repository.FullName()),
		zap.String("branch", branch),
		zap.String("head_sha", sha),
		zap.String("path", absPath),
	)

	return &types.CheckoutResult{
		RepoPath: absPath,
		Branch:   branch,
		HeadSHA:  sha,
	}, nil
}

// ensureClone clones the repository unless a local copy already exists.
func (c *Client) ensureClone(ctx context.Context, repo types.RepositoryRef, repoPath string) error {
	if _, err := os.Stat(repoPath); err == nil {
		c.logger.Info("reusing existing clone", zap.String("path", repoPath))
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", repoPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(repoPath), 0755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	if _, err := c.run(ctx, "", "clone", c.cloneURL(repo), repoPath); err != nil {
		return fmt.Errorf("failed to clone %s: %w", repo.FullName(), err)
	}

	c.logger.Info("cloned repository",
		zap.String("repository", repo.FullName()),
		zap.String("path", repoPath),
	)
	return nil
}

// checkoutBaseBranch moves the clone onto main, falling back to master. A
// clone that has neither stays on its current branch.
func (c *Client) checkoutBaseBranch(ctx context.Context, repoPath string) {
	for _, base := range []string{"main", "master"} {
		if _, err := c.run(ctx, repoPath, "checkout", base); err == nil {
			return
		}
	}
	c.logger.Info("no main or master branch, keeping current branch",
		zap.String("path", repoPath),
	)
}

func (c *Client) localBranchExists(ctx context.Context, repoPath, branch string) (bool, error) {
	out, err := c.run(ctx, repoPath, "branch")
	if err != nil {
		return false, fmt.Errorf("failed to list branches: %w", err)
	}
	for _, b := range parseBranches(out) {
		if b == branch {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) cloneURL(repo types.RepositoryRef) string {
	base := repo.CloneURL
	if base == "" {
		base = fmt.Sprintf("https://github.com/%s/%s.git", repo.Owner, repo.Name)
	}
	if c.accessToken != "" {
		return strings.Replace(base, "https://", "https://"+c.accessToken+"@", 1)
	}
	return base
}

// execGit runs a git command with a timeout and prompts disabled.
func (c *Client) execGit(ctx context.Context, dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		argsStr := c.redact(strings.Join(args, " "))
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s timed out after %s", argsStr, c.timeout)
		}
		return "", fmt.Errorf("git %s failed: %w: %s", argsStr, err, c.redact(strings.TrimSpace(stderr.String())))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// redact strips the access token from text destined for errors or logs. Git
// echoes the authenticated clone URL in its stderr, and these errors flow
// back to the model as tool output.
func (c *Client) redact(s string) string {
	if c.accessToken == "" {
		return s
	}
	return strings.ReplaceAll(s, c.accessToken, "***")
}

// parseBranches extracts branch names from `git branch` output.
func parseBranches(out string) []string {
	var branches []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "* "))
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches
}
