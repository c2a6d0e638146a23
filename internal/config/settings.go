package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the process configuration: where things live and which
// backends to talk to. It is distinct from the persisted app config document.
type Settings struct {
	Server  ServerSettings
	Static  StaticSettings
	Store   StoreSettings
	LLM     LLMSettings
	Log     LogSettings
	Tracing TracingSettings
}

type ServerSettings struct {
	Addr string
}

// StaticSettings locates the on-disk resources.
type StaticSettings struct {
	Config  string
	Prompt  string
	Product string
}

type StoreSettings struct {
	Backend  string
	Seed     bool
	Redis    RedisStoreConfig
	Postgres PostgresStoreConfig
}

type LLMSettings struct {
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

type LogSettings struct {
	Level       string
	Development bool
}

type TracingSettings struct {
	Endpoint string
}

// SetDefaults registers every known key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3001")
	v.SetDefault("static.config", "static/config.json")
	v.SetDefault("static.prompt", "static/default_prompt.txt")
	v.SetDefault("static.product", "static/product.json")
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.seed", true)
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.key", "postgen:config")
	v.SetDefault("store.postgres.dsn", "")
	v.SetDefault("store.postgres.table", "app_config")
	v.SetDefault("store.postgres.id", "default")
	v.SetDefault("llm.provider", "openai-responses")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", time.Duration(0))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("tracing.endpoint", "")
}

// NewViper returns a viper instance with defaults and POSTGEN_ env binding.
// cfgFile is optional.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("POSTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}
	return v, nil
}

// LoadSettings resolves Settings from v, applying the provider API key
// fallbacks and the PORT override.
func LoadSettings(v *viper.Viper) (Settings, error) {
	s := Settings{
		Server: ServerSettings{Addr: v.GetString("server.addr")},
		Static: StaticSettings{
			Config:  v.GetString("static.config"),
			Prompt:  v.GetString("static.prompt"),
			Product: v.GetString("static.product"),
		},
		Store: StoreSettings{
			Backend: strings.ToLower(v.GetString("store.backend")),
			Seed:    v.GetBool("store.seed"),
			Redis: RedisStoreConfig{
				Addr:     v.GetString("store.redis.addr"),
				Password: v.GetString("store.redis.password"),
				DB:       v.GetInt("store.redis.db"),
				Key:      v.GetString("store.redis.key"),
			},
			Postgres: PostgresStoreConfig{
				DSN:   v.GetString("store.postgres.dsn"),
				Table: v.GetString("store.postgres.table"),
				ID:    v.GetString("store.postgres.id"),
			},
		},
		LLM: LLMSettings{
			Provider: strings.ToLower(v.GetString("llm.provider")),
			APIKey:   v.GetString("llm.api_key"),
			BaseURL:  v.GetString("llm.base_url"),
			Timeout:  v.GetDuration("llm.timeout"),
		},
		Log: LogSettings{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
		Tracing: TracingSettings{Endpoint: v.GetString("tracing.endpoint")},
	}

	if port := os.Getenv("PORT"); port != "" {
		s.Server.Addr = ":" + port
	}
	if s.LLM.APIKey == "" {
		s.LLM.APIKey = providerAPIKey(s.LLM.Provider)
	}

	switch s.Store.Backend {
	case "file", "redis", "postgres":
	default:
		return Settings{}, fmt.Errorf("unknown store backend %q", s.Store.Backend)
	}
	return s, nil
}

func providerAPIKey(provider string) string {
	switch provider {
	case "gemini":
		if k := os.Getenv("GEMINI_API_KEY"); k != "" {
			return k
		}
		return os.Getenv("GOOGLE_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}
