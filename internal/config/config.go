// Package config loads the API token and the per-project changelog
// options. Built-in project tables can be extended or overridden with a
// YAML file; the token comes from the GITHUB_TOKEN environment variable.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Project holds the changelog options for one repository.
type Project struct {
	// Labels are searched in section order. An empty string stands for
	// "pull requests with no label" and renders without a heading.
	Labels []string `koanf:"labels"`

	// HeaderLabels switch on two-level grouping when non-empty: each
	// header label forms an outer section, partitioned by Labels.
	HeaderLabels []string `koanf:"header_labels"`

	// Marker selects the marker line renderer: labels containing this
	// substring are pulled into a bold line prefix. Empty selects the
	// default renderer.
	Marker string `koanf:"marker"`
}

// Config is the full process configuration, loaded once at startup.
type Config struct {
	Token    string             `koanf:"token"`
	Projects map[string]Project `koanf:"projects"`
}

// setDefaults installs the built-in project table.
func setDefaults(k *koanf.Koanf) {
	k.Set("projects.default.labels", []string{""})
	k.Set("projects.spinalcordtoolbox.labels", []string{
		"feature", "documentation-internal", "CI", "bug", "installation",
		"documentation", "enhancement", "refactoring", "git/github",
	})
	k.Set("projects.spinalcordtoolbox.marker", "sct_")
	k.Set("projects.ivadomed.labels", []string{
		"bug", "dependencies", "documentation", "enhancement",
	})
	k.Set("projects.axondeepseg.labels", []string{
		"bug", "enhancement", "feature", "documentation", "installation", "testing",
	})
}

// Load builds the configuration from defaults, an optional YAML override
// file and the environment. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	setDefaults(k)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("GITHUB_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GITHUB_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// ProjectFor returns the options for a repository, falling back to the
// default project when the repository has no customizations.
func (c *Config) ProjectFor(repo string) Project {
	if p, ok := c.Projects[repo]; ok {
		return p
	}
	return c.Projects["default"]
}
