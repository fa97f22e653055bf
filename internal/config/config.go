// README: Config loader; defaults, then .env, then an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type HTTPConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type AIConfig struct {
	Provider    string `yaml:"provider"`
	GeminiKey   string `yaml:"gemini_api_key"`
	GeminiModel string `yaml:"gemini_model"`
	OpenAIKey   string `yaml:"openai_api_key"`
	OpenAIModel string `yaml:"openai_model"`
	// GenerateTimeout bounds one generation request; zero leaves it to the transport.
	GenerateTimeout time.Duration `yaml:"generate_timeout"`
}

type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	DB   struct {
		DSN string `yaml:"dsn"`
	} `yaml:"db"`
	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`
	AI   AIConfig `yaml:"ai"`
	Maps struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"maps"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func defaults() Config {
	var cfg Config
	cfg.HTTP.Addr = ":3001"
	cfg.HTTP.CORSOrigins = []string{"*"}
	cfg.AI.Provider = ProviderGemini
	cfg.AI.GeminiModel = "gemini-1.5-flash-latest"
	cfg.AI.OpenAIModel = "gpt-4o-mini"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// Load reads .env (if present), the YAML file named by WANDERPLAN_CONFIG (if set) and the
// environment, in that order of increasing precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if path := os.Getenv("WANDERPLAN_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	cfg.HTTP.Addr = envOrDefault("WANDERPLAN_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.CORSOrigins = envOrDefaultList("WANDERPLAN_CORS_ORIGINS", cfg.HTTP.CORSOrigins)
	cfg.DB.DSN = envOrDefault("WANDERPLAN_DB_DSN", cfg.DB.DSN)
	cfg.Redis.Addr = envOrDefault("WANDERPLAN_REDIS_ADDR", cfg.Redis.Addr)
	cfg.AI.Provider = strings.ToLower(envOrDefault("WANDERPLAN_AI_PROVIDER", cfg.AI.Provider))
	cfg.AI.GeminiKey = envOrDefault("GEMINI_API_KEY", cfg.AI.GeminiKey)
	cfg.AI.GeminiModel = envOrDefault("WANDERPLAN_GEMINI_MODEL", cfg.AI.GeminiModel)
	cfg.AI.OpenAIKey = envOrDefault("OPENAI_API_KEY", cfg.AI.OpenAIKey)
	cfg.AI.OpenAIModel = envOrDefault("WANDERPLAN_OPENAI_MODEL", cfg.AI.OpenAIModel)
	cfg.Maps.APIKey = envOrDefault("WANDERPLAN_MAPS_API_KEY", cfg.Maps.APIKey)
	cfg.Log.Level = envOrDefault("WANDERPLAN_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOrDefault("WANDERPLAN_LOG_FORMAT", cfg.Log.Format)

	timeout, err := envOrDefaultDuration("WANDERPLAN_GENERATE_TIMEOUT", cfg.AI.GenerateTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AI.GenerateTimeout = timeout

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.AI.Provider {
	case ProviderGemini:
		if c.AI.GeminiKey == "" {
			return errors.New("environment variable GEMINI_API_KEY is required")
		}
	case ProviderOpenAI:
		if c.AI.OpenAIKey == "" {
			return errors.New("environment variable OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	if c.AI.GenerateTimeout < 0 {
		return errors.New("generate timeout must not be negative")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// envOrDefaultDuration accepts a Go duration ("30s") or a bare number of seconds.
func envOrDefaultDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
