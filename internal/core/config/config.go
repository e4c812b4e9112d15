// Package config handles loading Boardbot configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	// GitHub holds API credentials.
	GitHub GitHubConfig `yaml:"github"`

	// Project identifies the ProjectV2 board driven by status transitions.
	Project ProjectConfig `yaml:"project"`

	// Rules is the ordered classification rule list. When empty, the
	// built-in rule set is used.
	Rules []Rule `yaml:"rules,omitempty"`

	// Workflow is a preset workflow name (e.g., "issue-triage").
	Workflow string `yaml:"workflow,omitempty"`

	// Steps is a custom list of pipeline steps (overrides workflow).
	Steps []string `yaml:"steps,omitempty"`

	// BotUsers lists usernames whose events are ignored, so the bot's
	// own label mutations cannot re-trigger it.
	BotUsers []string `yaml:"bot_users,omitempty"`

	// Repositories lists the repositories this config applies to.
	// Empty means single-repo mode: allow all.
	Repositories []RepositoryConfig `yaml:"repositories,omitempty"`
}

// GitHubConfig holds GitHub API settings.
type GitHubConfig struct {
	Token string `yaml:"token"`
}

// ProjectConfig holds the opaque ProjectV2 identifiers. The values are
// environment-supplied via ${VAR} expansion; `boardbot fields` discovers
// them for a given project.
type ProjectConfig struct {
	ID            string        `yaml:"id"`
	StatusFieldID string        `yaml:"status_field_id"`
	Options       StatusOptions `yaml:"options"`
}

// StatusOptions maps each board status to its single-select option ID.
type StatusOptions struct {
	Todo       string `yaml:"todo"`
	InProgress string `yaml:"in_progress"`
	Review     string `yaml:"review"`
	Done       string `yaml:"done"`
}

// Complete reports whether the project is configured well enough for
// board transitions to run.
func (p ProjectConfig) Complete() bool {
	return p.ID != "" && p.StatusFieldID != ""
}

// Rule pairs a case-insensitive pattern with exactly one output: a label
// to add or an assignee to add. Rules are evaluated in declared order.
type Rule struct {
	Name     string `yaml:"name"`
	Pattern  string `yaml:"pattern"`
	Label    string `yaml:"label,omitempty"`
	Assignee string `yaml:"assignee,omitempty"`
}

// RepositoryConfig defines a repository and its settings.
type RepositoryConfig struct {
	Org     string `yaml:"org"`
	Repo    string `yaml:"repo"`
	Enabled bool   `yaml:"enabled"`
}

// DefaultRules returns the built-in classification rule set. Patterns keep
// the grep -iE semantics of the workflow scripts this replaces: unanchored,
// case-insensitive alternations tested against the issue body and each
// label name.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "infrastructure",
			Pattern: `infrastructure|configuration|railway\.json|deploy|docker`,
			Label:   "infrastructure",
		},
		{
			Name:    "configuration",
			Pattern: `config|railway\.json|environment variable|env var|setup`,
			Label:   "configuration",
		},
		{
			Name:    "maintenance",
			Pattern: `cleanup|maintenance|refactor|nested \.git|stale`,
			Label:   "maintenance",
		},
		{
			Name:    "documentation",
			Pattern: `docs|documentation|readme`,
			Label:   "documentation",
		},
		{
			Name:     "priority-escalation",
			Pattern:  `high-priority|urgent|critical|blocker`,
			Assignee: "bai-admin",
		},
	}
}

// Default returns a configuration with all defaults applied, for use when
// no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a config file from the given path and expands environment
// variables, so opaque project/field/option IDs and tokens can be supplied
// as ${VAR} references.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	candidates := []string{
		".github/boardbot.yaml",
		".github/boardbot.yml",
		".boardbot.yaml",
		".boardbot.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if len(c.Rules) == 0 {
		c.Rules = DefaultRules()
	}
	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
}
