package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Defaults matching the Fenix repository layout.
const (
	DefaultProvider        = "github"
	DefaultRepository      = "fenix"
	DefaultVersionFile     = "version.txt"
	DefaultBuildDescriptor = "buildSrc/src/main/java/AndroidComponents.kt"
)

// Config is the top-level configuration for acversion.
type Config struct {
	Provider        string `yaml:"provider"`         // "github" or "gitlab"
	Owner           string `yaml:"owner"`            // Organization or user owning the repository
	Repository      string `yaml:"repository"`       // Repository name
	Token           string `yaml:"token"`            // Inline, ${ENV_VAR}, or file path
	VersionFile     string `yaml:"version_file"`     // Release channel metadata file
	BuildDescriptor string `yaml:"build_descriptor"` // Source file pinning the A-C version
	Verbose         bool   `yaml:"verbose"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns a configuration populated with the standard defaults.
func Default() *Config {
	return &Config{
		Provider:        DefaultProvider,
		Repository:      DefaultRepository,
		VersionFile:     DefaultVersionFile,
		BuildDescriptor: DefaultBuildDescriptor,
	}
}

// Load reads and parses a configuration file on top of the defaults,
// expanding environment variables and resolving token file paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Token = resolveToken(cfg.Token)

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".acversion.yaml",
		".acversion.yml",
		"acversion.yaml",
		"acversion.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ApplyEnvironment overlays the values the hosting CI system provides:
// GITHUB_TOKEN, GITHUB_REPOSITORY_OWNER and VERBOSE. File values lose to
// the environment; CLI flags are applied by the caller and win over both.
func (c *Config) ApplyEnvironment() {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		c.Token = token
	}
	if owner := os.Getenv("GITHUB_REPOSITORY_OWNER"); owner != "" {
		c.Owner = owner
	}
	if os.Getenv("VERBOSE") == "true" {
		c.Verbose = true
	}
}

// Validate checks for required configuration values.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return errors.New(
			"repository owner is required (set --owner or GITHUB_REPOSITORY_OWNER)",
		)
	}
	if c.Provider == "" {
		return errors.New("provider is required")
	}
	if c.Repository == "" {
		return errors.New("repository is required")
	}
	return nil
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
