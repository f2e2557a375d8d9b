// Package config loads layered settings: defaults, an optional YAML file,
// a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
)

// EnvPrefix prefixes every generic environment override, e.g.
// COACH_SERVER_ADDR for server.addr.
const EnvPrefix = "COACH"

// Config is the full application configuration.
type Config struct {
	DataDir  string        `mapstructure:"data_dir"`
	Language string        `mapstructure:"language"`
	Log      LogConfig     `mapstructure:"log"`
	LLM      LLMConfig     `mapstructure:"llm"`
	Search   SearchConfig  `mapstructure:"search"`
	Server   ServerConfig  `mapstructure:"server"`
	Session  SessionConfig `mapstructure:"session"`
	Events   EventsConfig  `mapstructure:"events"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	Console    bool   `mapstructure:"console"`
}

// LLMConfig selects and configures the generative provider.
type LLMConfig struct {
	Provider         string        `mapstructure:"provider"`
	GeminiAPIKey     string        `mapstructure:"gemini_api_key"`
	GeminiModel      string        `mapstructure:"gemini_model"`
	OpenAIAPIKey     string        `mapstructure:"openai_api_key"`
	OpenAIModel      string        `mapstructure:"openai_model"`
	AnthropicAPIKey  string        `mapstructure:"anthropic_api_key"`
	AnthropicModel   string        `mapstructure:"anthropic_model"`
	OpenRouterAPIKey string        `mapstructure:"openrouter_api_key"`
	OpenRouterModel  string        `mapstructure:"openrouter_model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxAttempts      int           `mapstructure:"max_attempts"`
}

// SearchConfig configures the web search collaborator.
type SearchConfig struct {
	APIKey     string `mapstructure:"api_key"`
	EngineID   string `mapstructure:"engine_id"`
	MaxResults int    `mapstructure:"max_results"`
}

// ServerConfig configures the web application.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RatePerSecond   float64       `mapstructure:"rate_per_second"`
	RateBurst       int           `mapstructure:"rate_burst"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SessionConfig configures the signed session cookie.
type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// EventsConfig configures the event publisher. An empty URL disables it.
type EventsConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("language", "tr")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 20)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.console", true)

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.gemini_model", d.Gemini.Model)
	v.SetDefault("llm.openai_model", d.OpenAI.Model)
	v.SetDefault("llm.anthropic_model", d.Anthropic.Model)
	v.SetDefault("llm.openrouter_model", d.OpenRouter.Model)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.max_attempts", d.Retry.MaxAttempts)

	v.SetDefault("search.max_results", 5)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8080"})
	v.SetDefault("server.rate_per_second", 2.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 24*time.Hour)

	v.SetDefault("events.url", "")
	v.SetDefault("events.exchange", "coach.events")
}

// legacyEnv binds the variable names used by existing .env files.
var legacyEnv = map[string]string{
	"llm.gemini_api_key":     "GEMINI_API_KEY",
	"llm.gemini_model":       "GEMINI_MODEL",
	"llm.openai_api_key":     "OPENAI_API_KEY",
	"llm.anthropic_api_key":  "ANTHROPIC_API_KEY",
	"llm.openrouter_api_key": "OPENROUTER_API_KEY",
	"search.api_key":         "GOOGLE_SEARCH_API_KEY",
	"search.engine_id":       "GOOGLE_SEARCH_ENGINE_ID",
	"search.max_results":     "MAX_SEARCH_RESULTS",
	"language":               "DEFAULT_LANGUAGE",
	"data_dir":               "COACH_DATA_DIR",
	"events.url":             "AMQP_URL",
	"session.secret":         "SESSION_SECRET",
}

// Source is a loaded configuration that can be re-read when its file changes.
type Source struct {
	v *viper.Viper
}

// Options locate the configuration inputs.
type Options struct {
	// File is an explicit YAML file. When empty, ./coach.yaml is used if present.
	File string
	// EnvFile is the dotenv file. Default ".env". A missing file is ignored.
	EnvFile string
}

// NewSource reads the dotenv file and the YAML file and binds the
// environment.
func NewSource(opts Options) (*Source, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetConfigType("yaml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("coach")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return &Source{v: v}, nil
}

// Load is NewSource followed by Config.
func Load(opts Options) (*Config, error) {
	s, err := NewSource(opts)
	if err != nil {
		return nil, err
	}
	return s.Config()
}

// Config decodes the current settings.
func (s *Source) Config() (*Config, error) {
	var c Config
	if err := s.v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &c, nil
}

// File returns the YAML file in use, or "" when there is none.
func (s *Source) File() string {
	return s.v.ConfigFileUsed()
}

// Watch calls fn with the re-decoded configuration each time the YAML file
// changes. It does nothing without a file.
func (s *Source) Watch(fn func(*Config, error)) {
	if s.File() == "" {
		return
	}
	s.v.OnConfigChange(func(fsnotify.Event) {
		fn(s.Config())
	})
	s.v.WatchConfig()
}

// LLMConfigured reports whether a generative provider can be selected.
func (c *Config) LLMConfigured() bool {
	lc := c.LLMProviderConfig()
	return lc.Resolve()
}

// SearchConfigured reports whether real web search is available.
func (c *Config) SearchConfigured() bool {
	return c.Search.APIKey != "" && c.Search.EngineID != ""
}

// LLMProviderConfig maps the settings onto the provider configuration. The
// provider is left empty when none is configured explicitly; call Resolve
// on the result to pick one.
func (c *Config) LLMProviderConfig() llm.Config {
	lc := llm.DefaultConfig()
	lc.Provider = c.LLM.Provider
	lc.Gemini.APIKey = c.LLM.GeminiAPIKey
	lc.OpenAI.APIKey = c.LLM.OpenAIAPIKey
	lc.Anthropic.APIKey = c.LLM.AnthropicAPIKey
	lc.OpenRouter.APIKey = c.LLM.OpenRouterAPIKey
	if c.LLM.GeminiModel != "" {
		lc.Gemini.Model = c.LLM.GeminiModel
	}
	if c.LLM.OpenAIModel != "" {
		lc.OpenAI.Model = c.LLM.OpenAIModel
	}
	if c.LLM.AnthropicModel != "" {
		lc.Anthropic.Model = c.LLM.AnthropicModel
	}
	if c.LLM.OpenRouterModel != "" {
		lc.OpenRouter.Model = c.LLM.OpenRouterModel
	}
	if c.LLM.Timeout > 0 {
		lc.Timeout = c.LLM.Timeout
	}
	if c.LLM.MaxAttempts > 0 {
		lc.Retry.MaxAttempts = c.LLM.MaxAttempts
	}
	return lc
}

// ResolveDataDir returns the configured data directory, or the default one.
func (c *Config) ResolveDataDir(fallback func() (string, error)) (string, error) {
	if c.DataDir != "" {
		if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
			return "", fmt.Errorf("create data dir: %w", err)
		}
		return c.DataDir, nil
	}
	return fallback()
}
