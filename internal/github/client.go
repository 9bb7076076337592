package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/coralkit/gitclone-agent/pkg/types"
)

// pullRequestsService is the slice of the go-github API the client uses.
type pullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
}

// Client wraps the GitHub API for pull-request lookups.
type Client struct {
	pulls  pullRequestsService
	logger *zap.Logger
}

// NewClient creates a new GitHub client. An empty accessToken yields an
// unauthenticated client limited to public repositories.
func NewClient(accessToken string, logger *zap.Logger) *Client {
	var httpClient = oauth2.NewClient(context.Background(), nil)
	if accessToken != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: accessToken},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		pulls:  github.NewClient(httpClient).PullRequests,
		logger: logger,
	}
}

// GetPullRequest fetches metadata for a pull request, confirming it exists.
func (c *Client) GetPullRequest(ctx context.Context, repo types.RepositoryRef, number int) (*types.PullRequestDetails, error) {
	pr, _, err := c.pulls.Get(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request %s#%d: %w", repo.FullName(), number, err)
	}

	details := &types.PullRequestDetails{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		State:   pr.GetState(),
		Merged:  pr.GetMerged(),
		HeadRef: pr.GetHead().GetRef(),
		HeadSHA: pr.GetHead().GetSHA(),
		URL:     pr.GetHTMLURL(),
	}

	c.logger.Info("fetched pull request",
		zap.String("repository", repo.FullName()),
		zap.Int("pr_number", details.Number),
		zap.String("state", details.State),
		zap.String("head_ref", details.HeadRef),
	)

	return details, nil
}
