package types

import "fmt"

// CheckoutRequest identifies the pull request to be checked out locally.
type CheckoutRequest struct {
	Repository RepositoryRef
	PRNumber   int
}

// BranchName returns the local branch the pull request head is fetched into.
func (r CheckoutRequest) BranchName() string {
	return fmt.Sprintf("pr-%d", r.PRNumber)
}

// CheckoutResult describes a completed checkout.
type CheckoutResult struct {
	RepoPath    string
	Branch      string
	HeadSHA     string
	PullRequest *PullRequestDetails
}

// PullRequestDetails carries GitHub metadata for a pull request.
type PullRequestDetails struct {
	Number  int
	Title   string
	State   string
	Merged  bool
	HeadRef string
	HeadSHA string
	URL     string
}
