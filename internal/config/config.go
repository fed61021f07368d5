// internal/config/config.go
//
// Runtime configuration.
// Values come from (lowest to highest priority): defaults below, a .env file
// in the working directory, and the process environment. Keys are dotted
// (explain.timeout); the matching env var is upper-cased with '_' (EXPLAIN_TIMEOUT).

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kannnkannn-debug/material-hero/internal/highscore"
)

// Config holds application configuration.
type Config struct {
	Port      string
	LogLevel  string
	Client    ClientConfig
	JWT       JWTConfig
	Gemini    GeminiConfig
	Explain   ExplainConfig
	HighScore HighScoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
}

type ClientConfig struct {
	Origin string
}

type JWTConfig struct {
	Secret      string
	ExpiresDays int
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type ExplainConfig struct {
	Timeout time.Duration
}

type HighScoreConfig struct {
	Backend string // sqlite | redis | memory
}

type DatabaseConfig struct {
	Path string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CatalogConfig struct {
	File string
}

// Load reads .env (if present) and resolves configuration.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "5175")
	v.SetDefault("log.level", "info")
	v.SetDefault("client.origin", "http://localhost:5173")
	v.SetDefault("jwt.secret", "dev_secret_change_me")
	v.SetDefault("jwt.expires_days", 14)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("explain.timeout", "8s")
	v.SetDefault("highscore.backend", "sqlite")
	v.SetDefault("database.path", "./data/app.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("catalog.file", "")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	c := Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		Client:   ClientConfig{Origin: v.GetString("client.origin")},
		JWT: JWTConfig{
			Secret:      v.GetString("jwt.secret"),
			ExpiresDays: v.GetInt("jwt.expires_days"),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("gemini.api_key"),
			Model:  v.GetString("gemini.model"),
		},
		Explain:   ExplainConfig{Timeout: v.GetDuration("explain.timeout")},
		HighScore: HighScoreConfig{Backend: strings.ToLower(v.GetString("highscore.backend"))},
		Database:  DatabaseConfig{Path: v.GetString("database.path")},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Catalog: CatalogConfig{File: v.GetString("catalog.file")},
	}
	// API_KEY is the name the browser build used for the Gemini key.
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = v.GetString("api_key")
	}

	switch c.HighScore.Backend {
	case "sqlite", "redis", "memory":
	default:
		return Config{}, fmt.Errorf("config: unknown highscore backend %q", c.HighScore.Backend)
	}
	if c.HighScore.Backend == "redis" && c.Redis.Addr == "" {
		return Config{}, fmt.Errorf("config: REDIS_ADDR is required for the redis backend")
	}
	if c.Explain.Timeout <= 0 {
		return Config{}, fmt.Errorf("config: explain.timeout must be positive")
	}
	if c.JWT.ExpiresDays <= 0 {
		c.JWT.ExpiresDays = 14
	}
	return c, nil
}

// HighScoreBackend translates the config into a highscore.Backend.
func (c Config) HighScoreBackend() highscore.Backend {
	return highscore.Backend{
		Kind:          c.HighScore.Backend,
		DBPath:        c.Database.Path,
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
	}
}
