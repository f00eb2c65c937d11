package gitlab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/acversion/domain"
)

const (
	providerName = "gitlab"
	perPage      = 100
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// Provider implements domain.Provider for GitLab.
type Provider struct {
	token  string
	client *gl.Client
}

// New creates a new GitLab provider with the given token.
func New(token string) domain.Provider {
	client, err := gl.NewClient(token)
	if err != nil {
		// Return a provider that will fail on use rather than panicking at construction
		return &Provider{token: token, client: nil}
	}
	return &Provider{
		token:  token,
		client: client,
	}
}

func (p *Provider) Name() string      { return providerName }
func (p *Provider) AuthToken() string { return p.token }

func (p *Provider) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "gitlab.com")
}

// ListBranches returns all branches of the project, following pagination.
func (p *Provider) ListBranches(
	ctx context.Context,
	repo domain.Repository,
) ([]domain.Branch, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	pid := projectID(repo)
	var allBranches []domain.Branch
	opts := &gl.ListBranchesOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}

	for {
		branches, resp, err := p.client.Branches.ListBranches(
			pid, opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list branches: %w", err)
		}

		for _, branch := range branches {
			allBranches = append(allBranches, domain.Branch{Name: branch.Name})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allBranches, nil
}

// GetFileContent reads a file from the project at the given ref.
func (p *Provider) GetFileContent(
	ctx context.Context,
	repo domain.Repository,
	path, ref string,
) (string, error) {
	if p.client == nil {
		return "", errClientNotInitialized
	}

	raw, _, err := p.client.RepositoryFiles.GetRawFile(
		projectID(repo), path,
		&gl.GetRawFileOptions{Ref: gl.Ptr(ref)},
		gl.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf("failed to get file %q at %q: %w", path, ref, err)
	}

	return string(raw), nil
}

// projectID builds the "namespace/project" path GitLab accepts as project ID.
func projectID(repo domain.Repository) string {
	return repo.Organization + "/" + repo.Name
}
