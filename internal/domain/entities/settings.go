package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	toml "github.com/pelletier/go-toml/v2"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPackagesPath  = "**/package.json"
	DefaultCommitMessage = "chore(deps): synchronized internal package versions"
	DefaultCommitName    = "github-actions[bot]"
	DefaultCommitEmail   = "41898282+github-actions[bot]@users.noreply.github.com"
	DefaultPublisher     = "git"

	// actionInputPrefix is how GitHub Actions exposes `with:` inputs to the process.
	actionInputPrefix = "INPUT_"
)

// Settings is the whole configuration of a sync run. It is built once at
// startup and passed explicitly to the sync command.
type Settings struct {
	PackagesPath    string   `yaml:"packages_path"    toml:"packages_path"`
	ExcludePatterns []string `yaml:"exclude"          toml:"exclude"`
	CommitMessage   string   `yaml:"commit_message"   toml:"commit_message"`
	CommitEmail     string   `yaml:"commit_email"     toml:"commit_email"`
	CommitName      string   `yaml:"commit_name"      toml:"commit_name"`
	CommitArguments []string `yaml:"commit_arguments" toml:"commit_arguments"`
	Publisher       string   `yaml:"publisher"        toml:"publisher"`
	Token           string   `yaml:"token"            toml:"token"` // Inline, ${ENV_VAR}, or file path
	NoCommit        bool     `yaml:"no_commit"        toml:"no_commit"`
	DryRun          bool     `yaml:"-"                toml:"-"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns the settings used when nothing else is configured.
func NewDefaultSettings() *Settings {
	return &Settings{
		PackagesPath:  DefaultPackagesPath,
		CommitMessage: DefaultCommitMessage,
		CommitEmail:   DefaultCommitEmail,
		CommitName:    DefaultCommitName,
		Publisher:     DefaultPublisher,
	}
}

// NewSettings builds settings from the defaults overlaid with the given config
// file. An empty path yields the defaults.
func NewSettings(path string) (*Settings, error) {
	settings := NewDefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if unmarshalErr := toml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	default:
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.Token = resolveToken(settings.Token)
	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	locations := []string{".", ".github", ".config"}
	patterns := []string{
		".pkgsync.yaml",
		".pkgsync.yml",
		"pkgsync.yaml",
		"pkgsync.yml",
		".pkgsync.toml",
		"pkgsync.toml",
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

// ApplyActionInputs overlays GitHub Actions inputs (INPUT_<NAME>) found through
// lookup. Both the dashed and the underscored spelling of a name are accepted.
func (it *Settings) ApplyActionInputs(lookup func(string) (string, bool)) {
	input := func(name string) (string, bool) {
		upper := strings.ToUpper(name)
		for _, key := range []string{upper, strings.ReplaceAll(upper, "-", "_")} {
			if value, ok := lookup(actionInputPrefix + key); ok && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value), true
			}
		}
		return "", false
	}

	if v, ok := input("packages-path"); ok {
		it.PackagesPath = v
	}
	if v, ok := input("sync-commit-message"); ok {
		it.CommitMessage = v
	}
	if v, ok := input("sync-commit-email"); ok {
		it.CommitEmail = v
	}
	if v, ok := input("sync-commit-name"); ok {
		it.CommitName = v
	}
	if v, ok := input("commit-arguments"); ok {
		if args, err := SplitCommitArguments(v); err == nil {
			it.CommitArguments = args
		} else {
			logger.Warnf("Ignoring invalid commit-arguments input %q: %v", v, err)
		}
	}
	if v, ok := input("publisher"); ok {
		it.Publisher = v
	}
	if v, ok := input("token"); ok {
		it.Token = resolveToken(v)
	}
	if v, ok := input("no-commit"); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			it.NoCommit = parsed
		} else {
			logger.Warnf("Ignoring invalid no-commit input %q", v)
		}
	}
}

// SplitCommitArguments splits raw into argv entries the way a POSIX shell
// would, so quoted values such as --author="Bot <bot@example.com>" stay whole.
// Environment variables are not expanded.
func SplitCommitArguments(raw string) ([]string, error) {
	args, err := shellwords.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to split commit arguments: %w", err)
	}
	return args, nil
}

// PublishInput returns what the publisher needs to commit the given files.
func (it *Settings) PublishInput(changedPaths []string) PublishInput {
	return PublishInput{
		ChangedPaths: changedPaths,
		Identity:     Identity{Name: it.CommitName, Email: it.CommitEmail},
		Message:      it.CommitMessage,
		ExtraArgs:    it.CommitArguments,
		Token:        it.Token,
	}
}

// Validate checks for required configuration values.
func (it *Settings) Validate() error {
	if strings.TrimSpace(it.PackagesPath) == "" {
		return errors.New("packages-path is required")
	}

	if it.NoCommit || it.DryRun {
		return nil
	}

	if it.CommitMessage == "" {
		return errors.New("sync-commit-message is required when committing")
	}
	if it.CommitEmail == "" || it.CommitName == "" {
		return errors.New("sync-commit-email and sync-commit-name are required when committing")
	}
	if it.Publisher == "" {
		return errors.New("publisher is required when committing")
	}

	return nil
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
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
