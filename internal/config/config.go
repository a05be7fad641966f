package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigIncomplete marks a provider config that lacks a required field.
// Execution must not start while either side's config is incomplete.
var ErrConfigIncomplete = errors.New("provider config incomplete")

const (
	ProviderHosted = "hosted"
	ProviderLocal  = "local"
)

const defaultLocalBaseURL = "http://localhost:11434/v1"

type Config struct {
	Baseline       ProviderConfig `yaml:"baseline"`
	Target         ProviderConfig `yaml:"target"`
	Store          Store          `yaml:"store"`
	Catalog        Catalog        `yaml:"catalog"`
	ContextFiles   []string       `yaml:"context_files"`
	Secrets        Secrets        `yaml:"secrets"`
	TimeoutSeconds int            `yaml:"timeout_seconds"`
}

// ProviderConfig identifies one callable backend. Two instances exist per
// evaluation session: baseline and target.
type ProviderConfig struct {
	Type    string `yaml:"type"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type Store struct {
	Path string `yaml:"path"`
}

type Catalog struct {
	Dir string `yaml:"dir"`
}

type Secrets struct {
	EnvFile string `yaml:"env_file"`
}

// Complete reports whether the config carries every field required to make
// a call: a model identifier always, and a credential for hosted backends.
func (p *ProviderConfig) Complete() error {
	if p.Model == "" {
		return fmt.Errorf("%w: model is required", ErrConfigIncomplete)
	}
	if p.Type == ProviderHosted && p.APIKey == "" {
		return fmt.Errorf("%w: hosted provider requires an api_key", ErrConfigIncomplete)
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := applySecrets(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	for _, side := range []struct {
		name string
		p    *ProviderConfig
	}{{"baseline", &cfg.Baseline}, {"target", &cfg.Target}} {
		if side.p.Type == "" {
			side.p.Type = ProviderHosted
		}
		if side.p.Type != ProviderHosted && side.p.Type != ProviderLocal {
			return fmt.Errorf("%s: unknown provider type %q", side.name, side.p.Type)
		}
		if side.p.Type == ProviderLocal && side.p.BaseURL == "" {
			side.p.BaseURL = defaultLocalBaseURL
		}
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "faceoff.db"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 60
	}
	return nil
}

// applySecrets fills empty hosted API keys from the secrets env file or the
// process environment (OPENAI_API_KEY).
func applySecrets(cfg *Config) error {
	var fileEnv map[string]string
	if cfg.Secrets.EnvFile != "" {
		var err error
		fileEnv, err = ParseEnvFile(cfg.Secrets.EnvFile)
		if err != nil {
			return fmt.Errorf("reading secrets env file: %w", err)
		}
	}
	lookup := func(key string) string {
		if v, ok := fileEnv[key]; ok {
			return v
		}
		return os.Getenv(key)
	}
	for _, p := range []*ProviderConfig{&cfg.Baseline, &cfg.Target} {
		if p.Type == ProviderHosted && p.APIKey == "" {
			p.APIKey = lookup("OPENAI_API_KEY")
		}
	}
	return nil
}

// ParseEnvFile reads KEY=VALUE lines, skipping blanks and comments.
// "export " prefixes and single/double quotes around values are stripped.
func ParseEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	env := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		s := strings.TrimSpace(line)
		if s == "" || s[0] == '#' {
			continue
		}
		s = strings.TrimPrefix(s, "export ")
		eqIdx := strings.IndexByte(s, '=')
		if eqIdx < 0 {
			continue
		}
		env[s[:eqIdx]] = stripQuotes(s[eqIdx+1:])
	}
	return env, nil
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
