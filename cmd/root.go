package cmd

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/acversion/application"
	"github.com/rios0rios0/acversion/config"
	"github.com/rios0rios0/acversion/infrastructure/output"
	providerPkg "github.com/rios0rios0/acversion/infrastructure/provider"
	ghProv "github.com/rios0rios0/acversion/infrastructure/provider/github"
	glProv "github.com/rios0rios0/acversion/infrastructure/provider/gitlab"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	configPath   string
	providerName string
	owner        string
	repository   string
	token        string
	verbose      bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "acversion",
	Short: "Discover the Android Components version used by the latest Fenix Beta",
	Long: `A CI helper that finds the latest Fenix release branch, confirms it
is a Beta channel, and reports the major version of the Android Components
dependency pinned on that branch.

The strategy is very simple:
- Find the latest release (branch with the highest major release number)
- Look at version.txt to make sure that branch is actually in Beta
- Parse the build descriptor to find the pinned A-C version

On success the major version is published as the "major-ac-version" output
of the invoking automation system. Intended to run as a GitHub Action step,
where GITHUB_TOKEN and GITHUB_REPOSITORY_OWNER are set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDiscovery,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "",
		"Path to a configuration file (default: discovered in standard locations)",
	)
	rootCmd.PersistentFlags().StringVar(
		&providerName, "provider", "",
		"Hosting provider (github, gitlab)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&owner, "owner", "o", "",
		"Repository owner (or set GITHUB_REPOSITORY_OWNER)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&repository, "repo", "r", "",
		`Repository name (default "fenix")`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&token, "token", "t", "",
		"API token (or set GITHUB_TOKEN)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"Enable verbose output (or set VERBOSE=true)",
	)
}

func runDiscovery(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return validateErr
	}

	registry := buildProviderRegistry()
	prov, err := registry.Get(cfg.Provider, cfg.Token)
	if err != nil {
		return err
	}

	logger.Debugf(
		"Discovering the A-C version on %s:%s/%s",
		prov.Name(), cfg.Owner, cfg.Repository,
	)

	svc := application.NewDiscoveryService(prov, output.NewActionsWriter(os.Stdout))

	return svc.Run(ctx, application.Params{
		Owner:           cfg.Owner,
		Repository:      cfg.Repository,
		VersionFile:     cfg.VersionFile,
		BuildDescriptor: cfg.BuildDescriptor,
	})
}

// loadConfig builds the effective configuration: defaults, then an optional
// config file, then the environment, then CLI flags.
func loadConfig() (*config.Config, error) {
	cfgPath := configPath
	if cfgPath == "" {
		if found, findErr := config.FindConfigFile(); findErr == nil {
			cfgPath = found
		}
	}

	cfg := config.Default()
	if cfgPath != "" {
		logger.Debugf("Using config file: %s", cfgPath)
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.ApplyEnvironment()

	// CLI flags win over both the file and the environment
	if providerName != "" {
		cfg.Provider = providerName
	}
	if owner != "" {
		cfg.Owner = owner
	}
	if repository != "" {
		cfg.Repository = repository
	}
	if token != "" {
		cfg.Token = token
	}
	if verbose {
		cfg.Verbose = true
	}

	return cfg, nil
}

func buildProviderRegistry() *providerPkg.Registry {
	reg := providerPkg.NewRegistry()
	reg.Register("github", ghProv.New)
	reg.Register("gitlab", glProv.New)
	return reg
}
