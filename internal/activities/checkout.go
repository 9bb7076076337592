package activities

import (
	"context"

	"go.temporal.io/sdk/activity"
	"go.uber.org/zap"

	"github.com/coralkit/gitclone-agent/pkg/types"
)

// GitService performs local git checkouts.
type GitService interface {
	CheckoutPullRequest(ctx context.Context, req types.CheckoutRequest) (*types.CheckoutResult, error)
}

// PullRequestService looks up pull-request metadata on GitHub.
type PullRequestService interface {
	GetPullRequest(ctx context.Context, repo types.RepositoryRef, number int) (*types.PullRequestDetails, error)
}

// CheckoutActivities handles the checkout-related activities.
type CheckoutActivities struct {
	git    GitService
	pulls  PullRequestService
	logger *zap.Logger
}

// NewCheckoutActivities creates a new checkout activities handler.
func NewCheckoutActivities(git GitService, pulls PullRequestService, logger *zap.Logger) *CheckoutActivities {
	return &CheckoutActivities{
		git:    git,
		pulls:  pulls,
		logger: logger,
	}
}

// ValidatePullRequestActivity confirms the pull request exists and returns
// its metadata.
func (a *CheckoutActivities) ValidatePullRequestActivity(ctx context.Context, req types.CheckoutRequest) (ValidationResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("validating pull request",
		"repository", req.Repository.FullName(),
		"pr_number", req.PRNumber,
	)

	details, err := a.pulls.GetPullRequest(ctx, req.Repository, req.PRNumber)
	if err != nil {
		return ValidationResult{Success: false, Message: err.Error()}, err
	}

	return ValidationResult{
		Success:     true,
		Message:     "pull request validated",
		PullRequest: details,
	}, nil
}

// CheckoutPullRequestActivity clones the repository and checks out the
// pull-request branch.
func (a *CheckoutActivities) CheckoutPullRequestActivity(ctx context.Context, req types.CheckoutRequest) (CheckoutOperationResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("checking out pull request",
		"repository", req.Repository.FullName(),
		"pr_number", req.PRNumber,
	)

	result, err := a.git.CheckoutPullRequest(ctx, req)
	if err != nil {
		return CheckoutOperationResult{Success: false, Message: err.Error()}, err
	}

	return CheckoutOperationResult{
		Success:  true,
		Message:  "pull request checked out",
		RepoPath: result.RepoPath,
		Branch:   result.Branch,
		HeadSHA:  result.HeadSHA,
	}, nil
}
