// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"fmt"

	"github.com/rios0rios0/acversion/domain"
)

// ---------------------------------------------------------------------------
// SpyProvider
// ---------------------------------------------------------------------------

// SpyProvider implements domain.Provider as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyProvider struct {
	// --- identity ---
	ProviderName string
	Token        string

	// --- ListBranches ---
	Branches        []domain.Branch
	ListBranchesErr error
	// spy: repositories whose branches were requested
	ListedRepos []domain.Repository

	// --- GetFileContent ---
	FileContents   map[string]string // "ref:path" -> content
	FileContentErr error
	// spy: "ref:path" keys that were requested
	RequestedFiles []string
}

var _ domain.Provider = (*SpyProvider)(nil)

func (p *SpyProvider) Name() string { return p.ProviderName }

func (p *SpyProvider) AuthToken() string { return p.Token }

func (p *SpyProvider) MatchesURL(_ string) bool { return false }

func (p *SpyProvider) ListBranches(
	_ context.Context,
	repo domain.Repository,
) ([]domain.Branch, error) {
	p.ListedRepos = append(p.ListedRepos, repo)
	return p.Branches, p.ListBranchesErr
}

func (p *SpyProvider) GetFileContent(
	_ context.Context,
	_ domain.Repository,
	path, ref string,
) (string, error) {
	key := FileKey(ref, path)
	p.RequestedFiles = append(p.RequestedFiles, key)
	if p.FileContents != nil {
		if content, ok := p.FileContents[key]; ok {
			return content, nil
		}
	}
	if p.FileContentErr != nil {
		return "", p.FileContentErr
	}
	return "", fmt.Errorf("file not found: %s", key)
}

// FileKey builds the lookup key used by SpyProvider.FileContents.
func FileKey(ref, path string) string {
	return ref + ":" + path
}

// ---------------------------------------------------------------------------
// SpyOutputWriter
// ---------------------------------------------------------------------------

// SpyOutputWriter implements domain.OutputWriter, recording every pair set.
type SpyOutputWriter struct {
	SetErr error
	// spy: outputs received, in order
	Names   []string
	Outputs map[string]string
}

var _ domain.OutputWriter = (*SpyOutputWriter)(nil)

func (w *SpyOutputWriter) Set(name, value string) error {
	if w.SetErr != nil {
		return w.SetErr
	}
	if w.Outputs == nil {
		w.Outputs = make(map[string]string)
	}
	w.Names = append(w.Names, name)
	w.Outputs[name] = value
	return nil
}
