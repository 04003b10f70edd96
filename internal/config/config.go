// Package config loads harvest settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/github-harvest/internal/domain"
)

// ErrMissingCredentials is returned when the search flow has no login to submit.
var ErrMissingCredentials = errors.New("missing GitHub credentials: set GITHUB_USERNAME and GITHUB_PASSWORD")

// Config is the complete set of settings for both flows.
type Config struct {
	Browser  BrowserConfig  `yaml:"browser"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
	Search   SearchConfig   `yaml:"search"`
	Faces    FacesConfig    `yaml:"faces"`
	Verify   VerifyConfig   `yaml:"verify"`
}

// BrowserConfig describes how the Chrome instance is obtained.
type BrowserConfig struct {
	Bin         string `yaml:"bin"`
	DebuggerURL string `yaml:"debugger_url"`
	Headless    bool   `yaml:"headless"`
}

// TimeoutsConfig holds the readiness windows used instead of fixed sleeps.
type TimeoutsConfig struct {
	Element    Duration `yaml:"element"`
	PageSettle Duration `yaml:"page_settle"`
}

// SearchConfig drives the advanced-search flow.
type SearchConfig struct {
	URL        string `yaml:"url"`
	Username   string `yaml:"username"`
	Password   string `yaml:"-"`
	Language   string `yaml:"language"`
	Stars      string `yaml:"stars"`
	Size       string `yaml:"size"`
	Path       string `yaml:"path"`
	Pages      int    `yaml:"pages"`
	Output     string `yaml:"output"`
	HostPrefix string `yaml:"host_prefix"`

	// NameSelector and StarSelector are CSS selectors so that both the live
	// page and saved snapshots can evaluate them.
	NameSelector string `yaml:"name_selector"`
	StarSelector string `yaml:"star_selector"`
}

// FacesConfig drives the screenshot flow.
type FacesConfig struct {
	URL      string `yaml:"url"`
	Selector string `yaml:"selector"`
	Dir      string `yaml:"dir"`
	Count    int    `yaml:"count"`
}

// VerifyConfig controls the API cross-check of a harvest file.
type VerifyConfig struct {
	Token       string `yaml:"-"`
	Concurrency int    `yaml:"concurrency"`
}

// Duration is a time.Duration that reads from YAML strings such as "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the settings the original scripts were hard-coded with,
// minus the credentials.
func Default() *Config {
	return &Config{
		Timeouts: TimeoutsConfig{
			Element:    Duration(10 * time.Second),
			PageSettle: Duration(5 * time.Second),
		},
		Search: SearchConfig{
			URL:          "https://github.com/search/advanced",
			Language:     "Python",
			Stars:        "40..999",
			Size:         "<5000",
			Path:         "/tests",
			Pages:        99,
			Output:       "repos.csv",
			HostPrefix:   domain.DefaultHostPrefix,
			NameSelector: "[class='v-align-middle']",
			StarSelector: "[class='Link--muted']",
		},
		Faces: FacesConfig{
			URL:      "https://thispersondoesnotexist.com/",
			Selector: "#face",
			Dir:      "faces",
			Count:    4,
		},
		Verify: VerifyConfig{
			Concurrency: 4,
		},
	}
}

// Load reads the YAML file at path on top of the defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GITHUB_USERNAME"); v != "" {
		c.Search.Username = v
	}
	if v := os.Getenv("GITHUB_PASSWORD"); v != "" {
		c.Search.Password = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.Verify.Token = v
	}
	if v := os.Getenv("HARVEST_DEBUGGER_URL"); v != "" {
		c.Browser.DebuggerURL = v
	}
}

// RequireCredentials reports whether the search flow can log in.
func (c *Config) RequireCredentials() error {
	if c.Search.Username == "" || c.Search.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}
