package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepositoryRef(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     RepositoryRef
		wantErr  bool
	}{
		{
			name:     "simple owner/repo",
			fullName: "coral-protocol/coral-server",
			want: RepositoryRef{
				Owner:    "coral-protocol",
				Name:     "coral-server",
				CloneURL: "https://github.com/coral-protocol/coral-server.git",
			},
		},
		{
			name:     "trailing .git stripped",
			fullName: "octocat/hello-world.git",
			want: RepositoryRef{
				Owner:    "octocat",
				Name:     "hello-world",
				CloneURL: "https://github.com/octocat/hello-world.git",
			},
		},
		{
			name:     "surrounding whitespace",
			fullName: "  octocat/hello-world  ",
			want: RepositoryRef{
				Owner:    "octocat",
				Name:     "hello-world",
				CloneURL: "https://github.com/octocat/hello-world.git",
			},
		},
		{
			name:     "missing owner",
			fullName: "/repo",
			wantErr:  true,
		},
		{
			name:     "missing repo",
			fullName: "owner/",
			wantErr:  true,
		},
		{
			name:     "no slash",
			fullName: "just-a-name",
			wantErr:  true,
		},
		{
			name:     "too many segments",
			fullName: "a/b/c",
			wantErr:  true,
		},
		{
			name:     "empty",
			fullName: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRepositoryRef(tt.fullName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckoutRequestBranchName(t *testing.T) {
	req := CheckoutRequest{PRNumber: 42}
	assert.Equal(t, "pr-42", req.BranchName())
}
