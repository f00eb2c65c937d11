package application

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/acversion/domain"
)

// OutputKey is the name under which the major A-C version is published.
const OutputKey = "major-ac-version"

// DiscoveryService orchestrates the full discovery flow:
// select latest release branch -> confirm Beta -> extract A-C version ->
// publish its major component.
type DiscoveryService struct {
	provider domain.Provider
	output   domain.OutputWriter
}

// NewDiscoveryService creates a new service with the given collaborators.
func NewDiscoveryService(
	provider domain.Provider,
	output domain.OutputWriter,
) *DiscoveryService {
	return &DiscoveryService{
		provider: provider,
		output:   output,
	}
}

// Params holds the inputs for a single run.
type Params struct {
	Owner           string
	Repository      string
	VersionFile     string
	BuildDescriptor string
}

// Run executes the discovery pipeline against the configured repository.
// The pipeline is strictly sequential, with no retries: any failure aborts
// the run and no output is published.
func (s *DiscoveryService) Run(ctx context.Context, params Params) error {
	repo := domain.Repository{
		Name:         params.Repository,
		Organization: params.Owner,
		ProviderName: s.provider.Name(),
	}

	branches, err := s.provider.ListBranches(ctx, repo)
	if err != nil {
		return fmt.Errorf(
			"failed to list branches on %s/%s: %w",
			repo.Organization, repo.Name, err,
		)
	}

	names := make([]string, 0, len(branches))
	for _, branch := range branches {
		names = append(names, branch.Name)
	}

	latest, err := domain.LatestReleaseMajor(names)
	if err != nil {
		return fmt.Errorf(
			"could not determine the current A-C version on %s/%s: %w",
			repo.Organization, repo.Name, err,
		)
	}
	logger.Debugf("Latest %s version is %d", repo.Name, latest)

	branchName := domain.ReleaseBranchName(latest)
	versionText, err := s.provider.GetFileContent(
		ctx, repo, params.VersionFile, branchName,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to fetch %s from %s/%s:%s: %w",
			params.VersionFile, repo.Organization, repo.Name, branchName, err,
		)
	}
	if !domain.IsBetaVersion(versionText) {
		return fmt.Errorf(
			"branch %s/%s:%s: %w",
			repo.Organization, repo.Name, branchName, domain.ErrNotBetaBranch,
		)
	}
	logger.Debugf("Latest %s branch name is %s", repo.Name, branchName)

	descriptor, err := s.provider.GetFileContent(
		ctx, repo, params.BuildDescriptor, branchName,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to fetch %s from %s/%s:%s: %w",
			params.BuildDescriptor, repo.Organization, repo.Name, branchName, err,
		)
	}

	acVersion, err := domain.ExtractACVersion(descriptor)
	if err != nil {
		return fmt.Errorf(
			"could not determine the current A-C version on %s/%s:%s: %w",
			repo.Organization, repo.Name, branchName, err,
		)
	}
	logger.Debugf("Current A-C version used in %s is %s", repo.Name, acVersion)

	major, err := domain.MajorACVersion(acVersion)
	if err != nil {
		return err
	}
	logger.Infof("Major A-C version on the latest %s Beta is %s", repo.Name, major)

	if setErr := s.output.Set(OutputKey, major); setErr != nil {
		return fmt.Errorf("failed to publish %s: %w", OutputKey, setErr)
	}

	return nil
}
