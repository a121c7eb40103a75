package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	s := NewStore()
	// Point at a missing file so Get never reads a developer's real config.
	if err := s.Load(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := s.Get()

	if cfg.LogLevel != "INFO" {
		t.Fatalf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
	if cfg.EnableLogging {
		t.Fatal("EnableLogging should default to false")
	}
	if cfg.RequestTimeoutMS != 30000 {
		t.Fatalf("RequestTimeoutMS = %d", cfg.RequestTimeoutMS)
	}
	if cfg.MaxRetries != 3 {
		t.Fatalf("MaxRetries = %d", cfg.MaxRetries)
	}
	if !cfg.EnforceLimit {
		t.Fatal("EnforceLimit should default to true")
	}
	if cfg.DefaultLimit != 1000 {
		t.Fatalf("DefaultLimit = %d", cfg.DefaultLimit)
	}
	if cfg.MaxQueryLength != 4000 {
		t.Fatalf("MaxQueryLength = %d", cfg.MaxQueryLength)
	}
	if cfg.AllowSystemTables {
		t.Fatal("AllowSystemTables should default to false")
	}
	if !cfg.ShowExplanation || !cfg.ShowWarnings {
		t.Fatal("ShowExplanation and ShowWarnings should default to true")
	}
	if cfg.ShowSuggestedVisualization || cfg.UseFormattedResponse {
		t.Fatal("visualization and formatted response should default to false")
	}
	if cfg.DefaultProvider.Provider != ProviderOpenAI {
		t.Fatalf("DefaultProvider = %v, want openai", cfg.DefaultProvider.Provider)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Fatalf("Database defaults = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	s := NewStore()
	path := filepath.Join(t.TempDir(), "does-not-exist")
	if err := s.Load(path); err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if got := s.Get().DefaultLimit; got != 1000 {
		t.Fatalf("DefaultLimit = %d, want default 1000", got)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
# general settings
[general]
log_level = DEBUG
enable_logging = true
request_timeout_ms = 5000
max_retries = 1

[query]
enforce_limit = false
default_limit = 50
max_query_length = 1234
allow_system_tables = true

[response]
show_explanation = false
show_warnings = false
show_suggested_visualization = true
use_formatted_response = true

[anthropic]
api_key = "sk-ant-test"
default_model = claude-sonnet-4-5-20250929
max_tokens = 2048
temperature = 0.3

[openai]
api_key = 'sk-openai-test'
`)

	s := NewStore()
	if err := s.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := s.Get()

	if cfg.LogLevel != "DEBUG" || !cfg.EnableLogging {
		t.Fatalf("general section: LogLevel=%q EnableLogging=%v", cfg.LogLevel, cfg.EnableLogging)
	}
	if cfg.RequestTimeoutMS != 5000 || cfg.MaxRetries != 1 {
		t.Fatalf("general section: timeout=%d retries=%d", cfg.RequestTimeoutMS, cfg.MaxRetries)
	}
	if cfg.EnforceLimit || cfg.DefaultLimit != 50 {
		t.Fatalf("query section: enforce=%v limit=%d", cfg.EnforceLimit, cfg.DefaultLimit)
	}
	if cfg.MaxQueryLength != 1234 || !cfg.AllowSystemTables {
		t.Fatalf("query section: maxlen=%d system=%v", cfg.MaxQueryLength, cfg.AllowSystemTables)
	}
	if cfg.ShowExplanation || cfg.ShowWarnings {
		t.Fatal("response section: show flags should be off")
	}
	if !cfg.ShowSuggestedVisualization || !cfg.UseFormattedResponse {
		t.Fatal("response section: visualization and formatted response should be on")
	}

	// Double and single quotes are both stripped.
	anthropic, ok := s.ProviderConfig(ProviderAnthropic)
	if !ok {
		t.Fatal("anthropic provider not found")
	}
	if anthropic.APIKey != "sk-ant-test" {
		t.Fatalf("anthropic APIKey = %q", anthropic.APIKey)
	}
	if anthropic.DefaultMaxTokens != 2048 || anthropic.DefaultTemperature != 0.3 {
		t.Fatalf("anthropic overrides: tokens=%d temp=%v",
			anthropic.DefaultMaxTokens, anthropic.DefaultTemperature)
	}
	openai, ok := s.ProviderConfig(ProviderOpenAI)
	if !ok {
		t.Fatal("openai provider not found")
	}
	if openai.APIKey != "sk-openai-test" {
		t.Fatalf("openai APIKey = %q", openai.APIKey)
	}
	// Unset keys keep built-in defaults.
	if openai.DefaultModel != DefaultOpenAIModel {
		t.Fatalf("openai DefaultModel = %q", openai.DefaultModel)
	}

	// First provider section in file order becomes the default.
	if cfg.DefaultProvider.Provider != ProviderAnthropic {
		t.Fatalf("DefaultProvider = %v, want anthropic", cfg.DefaultProvider.Provider)
	}
}

func TestBooleanParsingIsStrict(t *testing.T) {
	// Only the literal "true" enables a flag; everything else is false.
	for _, v := range []string{"TRUE", "True", "1", "yes", "on"} {
		path := writeConfig(t, "[general]\nenable_logging = "+v+"\n")
		s := NewStore()
		if err := s.Load(path); err != nil {
			t.Fatalf("Load(%q) error = %v", v, err)
		}
		if s.Get().EnableLogging {
			t.Fatalf("enable_logging = %q parsed as true", v)
		}
	}
}

func TestMalformedNumberFailsLoadAndKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[query]\ndefault_limit = 10\nrubbish\n[general]\nmax_retries = lots\n")
	s := NewStore()
	if err := s.Load(path); err == nil {
		t.Fatal("Load() should fail on a malformed integer")
	}
	// No partial application: the earlier valid default_limit is discarded.
	cfg := s.Get()
	if cfg.DefaultLimit != 1000 || cfg.MaxRetries != 3 {
		t.Fatalf("partial config applied: limit=%d retries=%d", cfg.DefaultLimit, cfg.MaxRetries)
	}
}

func TestUnknownKeysAndSectionsIgnored(t *testing.T) {
	path := writeConfig(t, "[future]\nshiny = true\n[general]\nunknown_key = 7\nlog_level = ERROR\n")
	s := NewStore()
	if err := s.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := s.Get().LogLevel; got != "ERROR" {
		t.Fatalf("LogLevel = %q", got)
	}
}

func TestLoadResetsPreviousState(t *testing.T) {
	s := NewStore()
	if err := s.Load(writeConfig(t, "[query]\ndefault_limit = 7\n")); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	if got := s.Get().DefaultLimit; got != 7 {
		t.Fatalf("DefaultLimit = %d", got)
	}
	// A second load of a file without the key reverts it to defaults.
	if err := s.Load(writeConfig(t, "[general]\nlog_level = DEBUG\n")); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if got := s.Get().DefaultLimit; got != 1000 {
		t.Fatalf("DefaultLimit after reload = %d, want 1000", got)
	}
}

func TestDatabaseAndSSHSections(t *testing.T) {
	path := writeConfig(t, `
[database]
host = db.internal
port = 6432
user = app
password = hunter2
database = orders
sslmode = require

[ssh]
enabled = true
host = bastion.internal
user = deploy
key_path = /home/deploy/.ssh/id_ed25519
`)
	s := NewStore()
	if err := s.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := s.Get()
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 6432 {
		t.Fatalf("database = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.SSLMode != "require" {
		t.Fatalf("sslmode = %q", cfg.Database.SSLMode)
	}
	if !cfg.SSH.Enabled || cfg.SSH.Host != "bastion.internal" {
		t.Fatalf("ssh = %+v", cfg.SSH)
	}
}

func TestReset(t *testing.T) {
	s := NewStore()
	if err := s.Load(writeConfig(t, "[general]\nlog_level = DEBUG\n")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s.Reset()
	s.loaded = true // keep Get from lazily reloading the user's real config
	if got := s.Get().LogLevel; got != "INFO" {
		t.Fatalf("LogLevel after Reset = %q", got)
	}
}

func TestParseProvider(t *testing.T) {
	cases := []struct {
		in   string
		want Provider
	}{
		{"openai", ProviderOpenAI},
		{"OpenAI", ProviderOpenAI},
		{"ANTHROPIC", ProviderAnthropic},
		{"gemini", ProviderGemini},
		{"", ProviderUnknown},
		{"bard", ProviderUnknown},
	}
	for _, tc := range cases {
		if got := ParseProvider(tc.in); got != tc.want {
			t.Fatalf("ParseProvider(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestProviderDefaults(t *testing.T) {
	anthropic := DefaultProviderConfig(ProviderAnthropic)
	if anthropic.DefaultModel != DefaultAnthropicModel || anthropic.DefaultMaxTokens != 8192 {
		t.Fatalf("anthropic defaults = %+v", anthropic)
	}
	openai := DefaultProviderConfig(ProviderOpenAI)
	if openai.DefaultModel != DefaultOpenAIModel || openai.DefaultMaxTokens != 4096 {
		t.Fatalf("openai defaults = %+v", openai)
	}
	if openai.DefaultTemperature != DefaultTemperature {
		t.Fatalf("temperature = %v", openai.DefaultTemperature)
	}
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "pw", Database: "app", SSLMode: "prefer",
	}
	want := "host=localhost port=5432 user=postgres password=pw dbname=app sslmode=prefer"
	if got := cfg.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}
