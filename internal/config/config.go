package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/icsr/icsr/internal/platform/e2b"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// AuthSecret signs and verifies the HS256 session tokens. Required
	// outside development.
	AuthSecret string `mapstructure:"AUTH_SECRET"`

	// ReportsDir is where encrypted report content is stored.
	ReportsDir string `mapstructure:"REPORTS_DIR"`

	// Dialect selects the generated document form, "r3" or "r2".
	Dialect string `mapstructure:"E2B_DIALECT"`

	// MessageSender and MessageReceiver are the transmission routing
	// identifiers stamped into every generated document.
	MessageSender   string `mapstructure:"MESSAGE_SENDER_ID"`
	MessageReceiver string `mapstructure:"MESSAGE_RECEIVER_ID"`

	// EnforceMinimumCriteria rejects case submissions that lack an
	// identifiable patient, reporter, reaction, or suspect drug.
	EnforceMinimumCriteria bool `mapstructure:"ENFORCE_MINIMUM_CRITERIA"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("REPORTS_DIR", "./reports")
	v.SetDefault("E2B_DIALECT", "r3")
	v.SetDefault("MESSAGE_SENDER_ID", "E2B-APP")
	v.SetDefault("MESSAGE_RECEIVER_ID", "RECEIVER")
	v.SetDefault("ENFORCE_MINIMUM_CRITERIA", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("REPORTS_DIR")
	v.BindEnv("E2B_DIALECT")
	v.BindEnv("MESSAGE_SENDER_ID")
	v.BindEnv("MESSAGE_RECEIVER_ID")
	v.BindEnv("ENFORCE_MINIMUM_CRITERIA")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// AUTH_SECRET must be set so real token verification is enforced, and the
// document dialect must name a supported form.
func (c *Config) Validate() error {
	if !c.IsDev() && c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required when ENV=%q", c.Env)
	}
	if c.ReportsDir == "" {
		return fmt.Errorf("REPORTS_DIR must not be empty")
	}
	if _, err := e2b.ParseDialect(c.Dialect); err != nil {
		return fmt.Errorf("E2B_DIALECT must be \"r3\" or \"r2\", got %q", c.Dialect)
	}
	return nil
}
