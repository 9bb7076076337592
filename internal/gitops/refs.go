package gitops

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// headSHA opens the repository and confirms HEAD points at the expected
// branch, returning the head commit SHA.
func headSHA(repoPath, branch string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	want := plumbing.NewBranchReferenceName(branch)
	if head.Name() != want {
		return "", fmt.Errorf("HEAD is %s, expected %s", head.Name().Short(), branch)
	}

	return head.Hash().String(), nil
}
