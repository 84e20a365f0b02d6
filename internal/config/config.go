package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8100
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "revyse"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379

	defaultTokenTTL        = 24 * time.Hour
	defaultRequestTimeout  = 30 * time.Second
	defaultMaxOutputTokens = 4096
	defaultCacheBackend    = "memory"
	defaultCacheMaxEntries = 1000
	defaultAtRiskAfter     = 18 * time.Hour
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int
	Env            string // "development" | "production"
	AllowedOrigins []string
	JWTSecret      string
	TokenTTL       time.Duration
	AutoMigrate    bool
	DSN            string // assembled MySQL DSN
	RedisURL       string
	Database       DatabaseConfig
	Redis          RedisConfig
	AI             AIConfig
	Streak         StreakConfig
}

type DatabaseConfig struct {
	DSN       string
	Host      string
	Port      int
	User      string
	Password  string
	Name      string
	Charset   string
	ParseTime bool
	Loc       string
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     int
	Username string
	Password string
	DB       int
	TLS      bool
}

// AIConfig describes the ordered provider chain and generation limits.
// Providers are tried top to bottom until one succeeds.
type AIConfig struct {
	Providers       []AIProvider
	RequestTimeout  time.Duration
	MaxOutputTokens int
	Cache           CacheConfig
}

type AIProvider struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Type         string `yaml:"type" json:"type"` // OpenAI | OpenAI-Compatible | Anthropic | OpenRouter
	APIKey       string `yaml:"api_key" json:"-"`
	Endpoint     string `yaml:"endpoint" json:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model" json:"default_model"`
	Enabled      bool   `yaml:"enabled" json:"enabled"`
}

// CacheConfig controls the generation response cache.
// Backend is "memory" or "redis". MaxAge of zero means entries never expire.
type CacheConfig struct {
	Backend    string
	MaxEntries int
	MaxAge     time.Duration
}

type StreakConfig struct {
	AtRiskAfter time.Duration
}

type rawAppConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	JWTSecret      string   `yaml:"jwt_secret"`
	TokenTTL       string   `yaml:"token_ttl"`
	AutoMigrate    *bool    `yaml:"auto_migrate"`
	Database       struct {
		DSN       string `yaml:"dsn"`
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		User      string `yaml:"user"`
		Password  string `yaml:"password"`
		Name      string `yaml:"name"`
		Charset   string `yaml:"charset"`
		ParseTime *bool  `yaml:"parse_time"`
		Loc       string `yaml:"loc"`
	} `yaml:"database"`
	Redis struct {
		Enabled  *bool  `yaml:"enabled"`
		URL      string `yaml:"url"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       *int   `yaml:"db"`
		TLS      *bool  `yaml:"tls"`
	} `yaml:"redis"`
	AI struct {
		Providers       []AIProvider `yaml:"providers"`
		RequestTimeout  string       `yaml:"request_timeout"`
		MaxOutputTokens int          `yaml:"max_output_tokens"`
		Cache           struct {
			Backend    string `yaml:"backend"`
			MaxEntries int    `yaml:"max_entries"`
			MaxAge     string `yaml:"max_age"`
		} `yaml:"cache"`
	} `yaml:"ai"`
	Streak struct {
		AtRiskAfter string `yaml:"at_risk_after"`
	} `yaml:"streak"`
}

func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	raw := rawAppConfig{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	if err := applyRawAppConfig(&cfg, raw); err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d in %q, expected 1-65535", cfg.Database.Port, path)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d in %q, expected 1-65535", cfg.Redis.Port, path)
	}
	if cfg.AI.Cache.Backend != "memory" && cfg.AI.Cache.Backend != "redis" {
		return nil, fmt.Errorf("invalid ai.cache.backend %q in %q, expected memory or redis", cfg.AI.Cache.Backend, path)
	}
	if !cfg.IsDev() && strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("jwt_secret is required in %q when env is production", path)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:        defaultPort,
		Env:         defaultEnv,
		TokenTTL:    defaultTokenTTL,
		AutoMigrate: true,
		Database: DatabaseConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
		},
		AI: AIConfig{
			RequestTimeout:  defaultRequestTimeout,
			MaxOutputTokens: defaultMaxOutputTokens,
			Cache: CacheConfig{
				Backend:    defaultCacheBackend,
				MaxEntries: defaultCacheMaxEntries,
			},
		},
		Streak: StreakConfig{
			AtRiskAfter: defaultAtRiskAfter,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Env)); v != "" {
		cfg.Env = v
	}
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}
	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if err := applyDuration(&cfg.TokenTTL, raw.TokenTTL, "token_ttl"); err != nil {
		return err
	}
	if raw.AutoMigrate != nil {
		cfg.AutoMigrate = *raw.AutoMigrate
	}

	db := &cfg.Database
	if v := strings.TrimSpace(raw.Database.DSN); v != "" {
		db.DSN = v
	}
	if v := strings.TrimSpace(raw.Database.Host); v != "" {
		db.Host = v
	}
	if raw.Database.Port != 0 {
		db.Port = raw.Database.Port
	}
	if v := strings.TrimSpace(raw.Database.User); v != "" {
		db.User = v
	}
	if v := strings.TrimSpace(raw.Database.Password); v != "" {
		db.Password = v
	}
	if v := strings.TrimSpace(raw.Database.Name); v != "" {
		db.Name = v
	}
	if v := strings.TrimSpace(raw.Database.Charset); v != "" {
		db.Charset = v
	}
	if raw.Database.ParseTime != nil {
		db.ParseTime = *raw.Database.ParseTime
	}
	if v := strings.TrimSpace(raw.Database.Loc); v != "" {
		db.Loc = v
	}

	rd := &cfg.Redis
	if raw.Redis.Enabled != nil {
		rd.Enabled = *raw.Redis.Enabled
	}
	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		rd.URL = v
		rd.Enabled = true
	}
	if v := strings.TrimSpace(raw.Redis.Host); v != "" {
		rd.Host = v
	}
	if raw.Redis.Port != 0 {
		rd.Port = raw.Redis.Port
	}
	if v := strings.TrimSpace(raw.Redis.Username); v != "" {
		rd.Username = v
	}
	if v := strings.TrimSpace(raw.Redis.Password); v != "" {
		rd.Password = v
	}
	if raw.Redis.DB != nil {
		rd.DB = *raw.Redis.DB
	}
	if raw.Redis.TLS != nil {
		rd.TLS = *raw.Redis.TLS
	}

	ai := &cfg.AI
	if raw.AI.Providers != nil {
		ai.Providers = normalizeProviders(raw.AI.Providers)
	}
	if err := applyDuration(&ai.RequestTimeout, raw.AI.RequestTimeout, "ai.request_timeout"); err != nil {
		return err
	}
	if raw.AI.MaxOutputTokens > 0 {
		ai.MaxOutputTokens = raw.AI.MaxOutputTokens
	}
	if v := strings.ToLower(strings.TrimSpace(raw.AI.Cache.Backend)); v != "" {
		ai.Cache.Backend = v
	}
	if raw.AI.Cache.MaxEntries > 0 {
		ai.Cache.MaxEntries = raw.AI.Cache.MaxEntries
	}
	if err := applyDuration(&ai.Cache.MaxAge, raw.AI.Cache.MaxAge, "ai.cache.max_age"); err != nil {
		return err
	}

	if err := applyDuration(&cfg.Streak.AtRiskAfter, raw.Streak.AtRiskAfter, "streak.at_risk_after"); err != nil {
		return err
	}

	cfg.DSN = cfg.Database.DSNValue()
	cfg.RedisURL = cfg.Redis.URLValue()
	return nil
}

func applyDuration(dst *time.Duration, raw, field string) error {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid %s %q: must not be negative", field, raw)
	}
	*dst = d
	return nil
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeProviders(providers []AIProvider) []AIProvider {
	out := make([]AIProvider, 0, len(providers))
	for _, p := range providers {
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)
		p.Type = strings.TrimSpace(p.Type)
		p.APIKey = strings.TrimSpace(p.APIKey)
		p.Endpoint = strings.TrimSpace(p.Endpoint)
		p.DefaultModel = strings.TrimSpace(p.DefaultModel)
		if p.ID == "" {
			continue
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		out = append(out, p)
	}
	return out
}

// EnabledProviders returns the provider chain in configured priority order.
func (c AIConfig) EnabledProviders() []AIProvider {
	out := make([]AIProvider, 0, len(c.Providers))
	for _, p := range c.Providers {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}
