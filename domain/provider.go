package domain

import "context"

// Provider abstracts a Git hosting service (GitHub, GitLab, etc.).
// The surface is read-only: this tool never writes to the remote repository.
type Provider interface {
	// Name returns the provider identifier (e.g. "github", "gitlab").
	Name() string

	// MatchesURL returns true if the given remote URL belongs to this provider.
	MatchesURL(url string) bool

	// ListBranches returns all branches of a repository.
	ListBranches(ctx context.Context, repo Repository) ([]Branch, error)

	// GetFileContent reads the content of a file from a repository at the given ref.
	GetFileContent(ctx context.Context, repo Repository, path, ref string) (string, error)

	// AuthToken returns the authentication token configured for this provider.
	AuthToken() string
}
