package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                string        `mapstructure:"PORT"`
	Env                 string        `mapstructure:"ENV"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL"`
	DBMaxConns          int           `mapstructure:"DB_MAX_CONNS"`
	DBMaxIdleConns      int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	JWTSecret           string        `mapstructure:"JWT_SECRET"`
	TokenTTL            time.Duration `mapstructure:"TOKEN_TTL"`
	KnowledgeFile       string        `mapstructure:"KNOWLEDGE_FILE"`
	CORSOrigins         []string      `mapstructure:"-"`
	RateLimitRPS        float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst      int           `mapstructure:"RATE_LIMIT_BURST"`
	UserRateLimitRPS    float64       `mapstructure:"USER_RATE_LIMIT_RPS"`
	UserRateLimitBurst  int           `mapstructure:"USER_RATE_LIMIT_BURST"`
	HistoryMaxFailures  int           `mapstructure:"HISTORY_MAX_FAILURES"`
	HistoryResetTimeout time.Duration `mapstructure:"HISTORY_RESET_TIMEOUT"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "DATABASE_URL", "DB_MAX_CONNS", "DB_MAX_IDLE_CONNS",
	"JWT_SECRET", "TOKEN_TTL", "KNOWLEDGE_FILE", "CORS_ORIGINS",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "USER_RATE_LIMIT_RPS", "USER_RATE_LIMIT_BURST",
	"HISTORY_MAX_FAILURES", "HISTORY_RESET_TIMEOUT",
}

// Load reads configuration from the environment, after loading .env if present.
// Variables already set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPS", 100.0/60.0) // 100/min per IP
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("USER_RATE_LIMIT_RPS", 500.0/3600.0) // 500/hour per user
	v.SetDefault("USER_RATE_LIMIT_BURST", 100)
	v.SetDefault("HISTORY_MAX_FAILURES", 5)
	v.SetDefault("HISTORY_RESET_TIMEOUT", "30s")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HistoryEnabled reports whether accounts and assessment history are available
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

// Validate checks that the configuration is safe to run. Without a database
// the service still answers triage requests but has no accounts.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.HistoryEnabled() {
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required when DATABASE_URL is set"))
		} else if !c.IsDev() && len(c.JWTSecret) < 32 {
			errs = append(errs, fmt.Errorf("JWT_SECRET must be at least 32 characters outside development, got %d", len(c.JWTSecret)))
		}
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.UserRateLimitRPS <= 0 || c.UserRateLimitBurst <= 0 {
		errs = append(errs, errors.New("USER_RATE_LIMIT_RPS and USER_RATE_LIMIT_BURST must be positive"))
	}
	if c.HistoryMaxFailures <= 0 {
		errs = append(errs, errors.New("HISTORY_MAX_FAILURES must be positive"))
	}
	if c.HistoryResetTimeout <= 0 {
		errs = append(errs, errors.New("HISTORY_RESET_TIMEOUT must be positive"))
	}
	if len(c.CORSOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ORIGINS must list at least one origin"))
	}

	return errors.Join(errs...)
}
