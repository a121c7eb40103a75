package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// ConfigFileName is the default config location relative to $HOME.
const ConfigFileName = ".pgquill/config"

// Configuration holds all pgquill settings. It is populated once by a
// Store and treated as read-only afterwards.
type Configuration struct {
	// General settings
	LogLevel         string
	EnableLogging    bool
	RequestTimeoutMS int
	MaxRetries       int

	// Query generation settings
	EnforceLimit      bool
	DefaultLimit      int
	MaxQueryLength    int
	AllowSystemTables bool

	// Response format settings
	ShowExplanation            bool
	ShowWarnings               bool
	ShowSuggestedVisualization bool
	UseFormattedResponse       bool

	// Providers in file order. DefaultProvider mirrors the first entry.
	DefaultProvider ProviderConfig
	Providers       []ProviderConfig

	// Host glue: catalog connection and SSH tunnel. Not consumed by
	// the generation pipeline itself.
	Database DatabaseConfig
	SSH      SSHConfig
}

// defaultConfiguration returns the built-in defaults, including a
// single unconfigured OpenAI provider entry.
func defaultConfiguration() Configuration {
	openai := newProviderConfig(ProviderOpenAI)
	return Configuration{
		LogLevel:         "INFO",
		EnableLogging:    false,
		RequestTimeoutMS: 30000,
		MaxRetries:       3,

		EnforceLimit:      true,
		DefaultLimit:      1000,
		MaxQueryLength:    4000,
		AllowSystemTables: false,

		ShowExplanation:            true,
		ShowWarnings:               true,
		ShowSuggestedVisualization: false,
		UseFormattedResponse:       false,

		DefaultProvider: openai,
		Providers:       []ProviderConfig{openai},

		Database: defaultDatabaseConfig(),
	}
}

// Store owns the process configuration. Construct one at startup and
// pass it by handle into every component that needs settings. Get
// performs a lazy default-location load if Load was never called;
// after that the configuration is immutable until Reset.
type Store struct {
	mu     sync.Mutex
	cfg    Configuration
	loaded bool
}

// NewStore creates a Store holding built-in defaults, not yet loaded.
func NewStore() *Store {
	return &Store{cfg: defaultConfiguration()}
}

// Load reads the config file at path, or ~/.pgquill/config when path
// is empty. A missing file is not an error: the store keeps built-in
// defaults and reports success. A malformed numeric literal fails the
// load and leaves the store at defaults (never a stale mix).
func (s *Store) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Every load attempt starts from a clean slate.
	s.cfg = defaultConfiguration()
	s.loaded = true

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ConfigFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	cfg, err := parseConfiguration(string(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	s.cfg = cfg
	return nil
}

// Get returns the current configuration, loading from the default
// location first if Load was never called.
func (s *Store) Get() Configuration {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if !loaded {
		_ = s.Load("") //nolint:errcheck // lazy load falls back to defaults
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// ProviderConfig returns the configured entry for a provider, or
// ok=false when the provider has no section in the config.
func (s *Store) ProviderConfig(p Provider) (ProviderConfig, bool) {
	cfg := s.Get()
	for _, pc := range cfg.Providers {
		if pc.Provider == p {
			return pc, true
		}
	}
	return ProviderConfig{}, false
}

// Reset restores built-in defaults and clears the loaded flag. Test
// isolation only.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = defaultConfiguration()
	s.loaded = false
}

// parseConfiguration parses the INI-style config content. Unknown keys
// and sections are silently ignored so old binaries tolerate newer
// config files.
func parseConfiguration(content string) (Configuration, error) {
	cfg := defaultConfiguration()
	section := ""

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := unquote(strings.TrimSpace(line[eq+1:]))

		if err := applyKey(&cfg, section, key, value); err != nil {
			return Configuration{}, err
		}
	}

	if len(cfg.Providers) > 0 {
		cfg.DefaultProvider = cfg.Providers[0]
	}
	return cfg, nil
}

// unquote strips one matching pair of surrounding quote characters,
// preserving interior whitespace.
func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

func applyKey(cfg *Configuration, section, key, value string) error {
	switch section {
	case "general":
		switch key {
		case "log_level":
			cfg.LogLevel = value
		case "enable_logging":
			cfg.EnableLogging = value == "true"
		case "request_timeout_ms":
			return assignInt(&cfg.RequestTimeoutMS, key, value)
		case "max_retries":
			return assignInt(&cfg.MaxRetries, key, value)
		}
	case "query":
		switch key {
		case "enforce_limit":
			cfg.EnforceLimit = value == "true"
		case "default_limit":
			return assignInt(&cfg.DefaultLimit, key, value)
		case "max_query_length":
			return assignInt(&cfg.MaxQueryLength, key, value)
		case "allow_system_tables":
			cfg.AllowSystemTables = value == "true"
		}
	case "response":
		switch key {
		case "show_explanation":
			cfg.ShowExplanation = value == "true"
		case "show_warnings":
			cfg.ShowWarnings = value == "true"
		case "show_suggested_visualization":
			cfg.ShowSuggestedVisualization = value == "true"
		case "use_formatted_response":
			cfg.UseFormattedResponse = value == "true"
		}
	case "openai", "anthropic", "gemini":
		return applyProviderKey(cfg, ParseProvider(section), key, value)
	case "database":
		return applyDatabaseKey(&cfg.Database, key, value)
	case "ssh":
		return applySSHKey(&cfg.SSH, key, value)
	}
	return nil
}

// applyProviderKey assigns a key inside a provider section, creating
// the entry with built-in defaults on first use.
func applyProviderKey(cfg *Configuration, p Provider, key, value string) error {
	var pc *ProviderConfig
	for i := range cfg.Providers {
		if cfg.Providers[i].Provider == p {
			pc = &cfg.Providers[i]
			break
		}
	}
	if pc == nil {
		cfg.Providers = append(cfg.Providers, newProviderConfig(p))
		pc = &cfg.Providers[len(cfg.Providers)-1]
	}

	switch key {
	case "api_key":
		pc.APIKey = value
	case "default_model":
		pc.DefaultModel = value
	case "max_tokens":
		return assignInt(&pc.DefaultMaxTokens, key, value)
	case "temperature":
		return assignFloat(&pc.DefaultTemperature, key, value)
	case "api_endpoint":
		pc.APIEndpoint = value
	}
	return nil
}

func assignInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer for %s: %q", key, value)
	}
	*dst = n
	return nil
}

func assignFloat(dst *float64, key, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for %s: %q", key, value)
	}
	*dst = f
	return nil
}
