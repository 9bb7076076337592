package types

import (
	"fmt"
	"strings"
)

// RepositoryRef identifies a GitHub repository.
type RepositoryRef struct {
	Owner    string
	Name     string
	CloneURL string
}

// FullName returns the repository in "owner/repo" form.
func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// ParseRepositoryRef parses an "owner/repo" name into a RepositoryRef.
func ParseRepositoryRef(fullName string) (RepositoryRef, error) {
	name := strings.TrimSuffix(strings.TrimSpace(fullName), ".git")
	parts := strings.Split(name, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryRef{}, fmt.Errorf("invalid repository name %q, expected owner/repo", fullName)
	}

	return RepositoryRef{
		Owner:    parts[0],
		Name:     parts[1],
		CloneURL: "https://github.com/" + parts[0] + "/" + parts[1] + ".git",
	}, nil
}
