package github

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coralkit/gitclone-agent/pkg/types"
)

type fakePulls struct {
	pr  *github.PullRequest
	err error

	gotOwner  string
	gotRepo   string
	gotNumber int
}

func (f *fakePulls) Get(_ context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	f.gotOwner = owner
	f.gotRepo = repo
	f.gotNumber = number
	return f.pr, nil, f.err
}

func TestGetPullRequest(t *testing.T) {
	pulls := &fakePulls{
		pr: &github.PullRequest{
			Number:  github.Int(12),
			Title:   github.String("Add retry logic"),
			State:   github.String("open"),
			Merged:  github.Bool(false),
			HTMLURL: github.String("https://github.com/octocat/hello-world/pull/12"),
			Head: &github.PullRequestBranch{
				Ref: github.String("feature/retries"),
				SHA: github.String("deadbeef"),
			},
		},
	}
	c := &Client{pulls: pulls, logger: zap.NewNop()}

	repo := types.RepositoryRef{Owner: "octocat", Name: "hello-world"}
	details, err := c.GetPullRequest(context.Background(), repo, 12)
	require.NoError(t, err)

	assert.Equal(t, "octocat", pulls.gotOwner)
	assert.Equal(t, "hello-world", pulls.gotRepo)
	assert.Equal(t, 12, pulls.gotNumber)

	assert.Equal(t, 12, details.Number)
	assert.Equal(t, "Add retry logic", details.Title)
	assert.Equal(t, "open", details.State)
	assert.False(t, details.Merged)
	assert.Equal(t, "feature/retries", details.HeadRef)
	assert.Equal(t, "deadbeef", details.HeadSHA)
	assert.Equal(t, "https://github.com/octocat/hello-world/pull/12", details.URL)
}

func TestGetPullRequestNotFound(t *testing.T) {
	pulls := &fakePulls{err: fmt.Errorf("404 Not Found")}
	c := &Client{pulls: pulls, logger: zap.NewNop()}

	_, err := c.GetPullRequest(context.Background(), types.RepositoryRef{Owner: "octocat", Name: "hello-world"}, 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "octocat/hello-world#999")
}
