// Package config loads persona settings from an optional YAML file, an
// optional .env file and PERSONA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/persona/internal/llm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres driver")
	ErrUnknownDriver      = errors.New("unknown database driver")
)

// Config holds application configuration.
type Config struct {
	Env           string        `mapstructure:"env"`            // local, dev, production
	QuestionsFile string        `mapstructure:"questions_file"` // empty uses the built-in set
	SubmitTimeout time.Duration `mapstructure:"submit_timeout"` // 0 waits for the store indefinitely
	DB            DB            `mapstructure:"database"`
	Log           Log           `mapstructure:"log"`
	LLM           LLM           `mapstructure:"llm"`
}

// DB selects and tunes the results backend.
type DB struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"` // sqlite file; empty uses the XDG data dir
	URL             string        `mapstructure:"url"`  // postgres DSN, usually from DATABASE_URL
	MaxConnections  int           `mapstructure:"max_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// Log configures the zap logger.
type Log struct {
	File  string `mapstructure:"file"` // empty uses the XDG state dir
	Level string `mapstructure:"level"`
}

// LLM configures the optional insight provider.
type LLM struct {
	Provider   string        `mapstructure:"provider"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Anthropic  LLMProvider   `mapstructure:"anthropic"`
	OpenAI     LLMProvider   `mapstructure:"openai"`
	Gemini     LLMProvider   `mapstructure:"gemini"`
	OpenRouter LLMProvider   `mapstructure:"openrouter"`
}

// LLMProvider holds per-provider credentials.
type LLMProvider struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Options points Load at explicit files. Empty fields use the defaults.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load reads configuration from config files and environment variables.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "persona"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix("PERSONA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Well-known names used by hosting platforms and provider SDKs.
	_ = v.BindEnv("env", "PERSONA_ENV", "APP_ENV")
	_ = v.BindEnv("database.url", "PERSONA_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("llm.anthropic.api_key", "PERSONA_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openai.api_key", "PERSONA_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.gemini.api_key", "PERSONA_LLM_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("llm.openrouter.api_key", "PERSONA_LLM_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("questions_file", "")
	v.SetDefault("submit_timeout", "0s")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", "30s")
	for _, p := range []string{"anthropic", "openai", "gemini", "openrouter"} {
		v.SetDefault("llm."+p+".api_key", "")
		v.SetDefault("llm."+p+".model", "")
		v.SetDefault("llm."+p+".base_url", "")
	}
}

// loadEnvFile loads path, or ./.env when path is empty. A missing default
// .env is not an error; existing environment variables win.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DB.URL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DB.Driver)
	}
	if c.SubmitTimeout < 0 {
		return fmt.Errorf("submit_timeout must not be negative, got %s", c.SubmitTimeout)
	}
	return nil
}

// IsProduction reports whether the production environment is selected.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LLMConfig converts the LLM section to a provider configuration. When no
// provider is named, the first provider with an API key wins, in the order
// gemini, openai, anthropic, openrouter. ok is false when nothing is
// configured.
func (c *Config) LLMConfig() (cfg llm.Config, ok bool) {
	cfg = llm.DefaultConfig()
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}

	cfg.Anthropic = llm.AnthropicConfig{APIKey: c.LLM.Anthropic.APIKey, Model: orDefault(c.LLM.Anthropic.Model, cfg.Anthropic.Model)}
	cfg.OpenAI = llm.OpenAIConfig{APIKey: c.LLM.OpenAI.APIKey, Model: orDefault(c.LLM.OpenAI.Model, cfg.OpenAI.Model), BaseURL: c.LLM.OpenAI.BaseURL}
	cfg.Gemini = llm.GeminiConfig{APIKey: c.LLM.Gemini.APIKey, Model: orDefault(c.LLM.Gemini.Model, cfg.Gemini.Model)}
	cfg.OpenRouter = llm.OpenRouterConfig{APIKey: c.LLM.OpenRouter.APIKey, Model: orDefault(c.LLM.OpenRouter.Model, cfg.OpenRouter.Model), BaseURL: c.LLM.OpenRouter.BaseURL}

	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
		return cfg, true
	}

	switch {
	case cfg.Gemini.APIKey != "":
		cfg.Provider = llm.ProviderGemini
	case cfg.OpenAI.APIKey != "":
		cfg.Provider = llm.ProviderOpenAI
	case cfg.Anthropic.APIKey != "":
		cfg.Provider = llm.ProviderAnthropic
	case cfg.OpenRouter.APIKey != "":
		cfg.Provider = llm.ProviderOpenRouter
	default:
		return llm.Config{}, false
	}
	return cfg, true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
