package activities

import (
	"github.com/coralkit/gitclone-agent/pkg/types"
)

// ValidationResult contains the result of a pull-request validation.
type ValidationResult struct {
	Success     bool
	Message     string
	PullRequest *types.PullRequestDetails
}

// CheckoutOperationResult contains the result of a checkout operation.
type CheckoutOperationResult struct {
	Success  bool
	Message  string
	RepoPath string
	Branch   string
	HeadSHA  string
}
