package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/coralkit/gitclone-agent/internal/activities"
	"github.com/coralkit/gitclone-agent/pkg/types"
)

// CheckoutWorkflowInput is the input for the checkout workflow.
type CheckoutWorkflowInput struct {
	Request types.CheckoutRequest
}

// CheckoutWorkflow validates a pull request against GitHub and checks it out
// into the local workspace.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*types.CheckoutResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("starting checkout workflow",
		"repository", input.Request.Repository.FullName(),
		"pr_number", input.Request.PRNumber,
	)

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var validation activities.ValidationResult
	err := workflow.ExecuteActivity(ctx, activities.ValidatePullRequestActivity, input.Request).Get(ctx, &validation)
	if err != nil {
		logger.Error("failed to validate pull request", "error", err)
		return nil, err
	}

	var checkout activities.CheckoutOperationResult
	err = workflow.ExecuteActivity(ctx, activities.CheckoutPullRequestActivity, input.Request).Get(ctx, &checkout)
	if err != nil {
		logger.Error("failed to checkout pull request", "error", err)
		return nil, err
	}

	logger.Info("checkout workflow completed",
		"path", checkout.RepoPath,
		"branch", checkout.Branch,
	)

	return &types.CheckoutResult{
		RepoPath:    checkout.RepoPath,
		Branch:      checkout.Branch,
		HeadSHA:     checkout.HeadSHA,
		PullRequest: validation.PullRequest,
	}, nil
}
