// Package config loads the process-wide chat configuration. A Config is built once at
// startup and treated as read-only afterwards.
package config

import (
	"context"
	_ "embed"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"github.com/viant/afs"
	"github.com/viant/bedrockchat/genai/llm/provider"
	"github.com/viant/bedrockchat/genai/llm/provider/bedrock/converse"
	"github.com/viant/bedrockchat/genai/session"
	"gopkg.in/yaml.v3"
)

//go:embed default/config.yaml
var defaultYAML []byte

const (
	defaultRegion      = "us-east-1"
	defaultTemperature = 0.7
	defaultTopP        = 0.9
)

// Profile binds a persona to model options. Temperature and topP default to 0.7 and 0.9
// when omitted; an explicit 0 is kept.
type Profile struct {
	ID      string           `yaml:"id" json:"id" toml:"id"`
	Persona session.Persona  `yaml:"persona" json:"persona" toml:"persona"`
	Model   provider.Options `yaml:"model" json:"model" toml:"model"`
}

// UnmarshalYAML presets sampling defaults before decoding the profile node.
func (p *Profile) UnmarshalYAML(node *yaml.Node) error {
	type profile Profile
	ret := profile{Model: provider.Options{Temperature: defaultTemperature, TopP: defaultTopP}}
	if err := node.Decode(&ret); err != nil {
		return err
	}
	*p = Profile(ret)
	return nil
}

// Config lists the available chat profiles.
type Config struct {
	Default  string     `yaml:"default" json:"default" toml:"default"`
	Profiles []*Profile `yaml:"profiles" json:"profiles" toml:"profiles"`
}

// Load reads the configuration from URL (local path, s3://, gs://...). An empty URL
// selects the embedded default.
func Load(ctx context.Context, URL string) (*Config, error) {
	if URL == "" {
		return Decode(defaultYAML, ".yaml")
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	cfg, err := Decode(data, path.Ext(URL))
	if err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return cfg, nil
}

// Decode parses data by extension (.toml, otherwise YAML/JSON), applies defaults and
// validates the result.
func Decode(data []byte, ext string) (*Config, error) {
	cfg := &Config{}
	if strings.ToLower(ext) == ".toml" {
		document := map[string]interface{}{}
		if _, err := toml.Decode(string(data), &document); err != nil {
			return nil, err
		}
		encoded, err := yaml.Marshal(document)
		if err != nil {
			return nil, err
		}
		data = encoded
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.init()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) init() {
	for _, profile := range c.Profiles {
		if profile == nil {
			continue
		}
		options := &profile.Model
		if options.Provider == "" {
			options.Provider = provider.ProviderBedrockConverse
		}
		if options.Region == "" {
			options.Region = defaultRegion
		}
		if options.Credentials == "" {
			options.Credentials = converse.StrategyEnv
		}
		if profile.Persona.Name == "" {
			profile.Persona.Name = profile.ID
		}
	}
	if c.Default == "" && len(c.Profiles) > 0 && c.Profiles[0] != nil {
		c.Default = c.Profiles[0].ID
	}
}

// Validate checks profiles and the default selection.
func (c *Config) Validate() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}
	seen := map[string]bool{}
	for i, profile := range c.Profiles {
		if profile == nil || profile.ID == "" {
			return fmt.Errorf("profile[%d]: id was empty", i)
		}
		if seen[profile.ID] {
			return fmt.Errorf("duplicate profile: %v", profile.ID)
		}
		seen[profile.ID] = true
		if err := profile.Model.Validate(); err != nil {
			return fmt.Errorf("profile %v: %w", profile.ID, err)
		}
	}
	if !seen[c.Default] {
		return fmt.Errorf("default profile %q not defined", c.Default)
	}
	return nil
}

// IDs returns profile ids in declaration order.
func (c *Config) IDs() []string {
	return lo.Map(c.Profiles, func(p *Profile, _ int) string { return p.ID })
}

// Profile returns a copy of the profile with id, or the default profile when id is empty.
func (c *Config) Profile(id string) (Profile, error) {
	if id == "" {
		id = c.Default
	}
	for _, profile := range c.Profiles {
		if profile.ID == id {
			ret := *profile
			ret.Persona.Tips = append([]string{}, profile.Persona.Tips...)
			return ret, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown profile %q, available: %v", id, strings.Join(c.IDs(), ", "))
}
