package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/helpdesk/internal/shared/config"
)

const envPrefix = "HELPDESK"

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	OAuth        sharedConfig.OAuthConfig        `mapstructure:"oauth"`
	Email        sharedConfig.EmailConfig        `mapstructure:"email"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Storage      sharedConfig.StorageConfig      `mapstructure:"storage"`
	Tickets      sharedConfig.TicketsConfig      `mapstructure:"tickets"`
	PublicIntake sharedConfig.PublicIntakeConfig `mapstructure:"public_intake"`
	Internal     sharedConfig.InternalConfig     `mapstructure:"internal"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configFile when given), then applies
// HELPDESK_* environment overrides. A .env file in the working directory is
// loaded first when present.
func Load(env, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Defaults and environment variables are enough to run.
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()

	return &cfg, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case sharedConfig.DriverMySQL, sharedConfig.DriverPostgres, sharedConfig.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Server.Mode == "release" && c.Auth.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("auth.jwt.secret must be changed in release mode")
	}
	if c.Auth.JWT.AccessExpMinutes <= 0 || c.Auth.JWT.RefreshExpDays <= 0 {
		return fmt.Errorf("jwt expiry must be positive")
	}
	return nil
}

const defaultJWTSecret = "change-me-in-production"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.frontend_url", "http://localhost:3000")

	v.SetDefault("database.driver", sharedConfig.DriverSQLite)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "helpdesk")
	v.SetDefault("database.path", "helpdesk.db")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.password.generated_length", 16)
	v.SetDefault("auth.jwt.secret", defaultJWTSecret)
	v.SetDefault("auth.jwt.access_exp_minutes", 15)
	v.SetDefault("auth.jwt.refresh_exp_days", 7)
	v.SetDefault("auth.casbin_persist", false)

	v.SetDefault("oauth.google.client_id", "")
	v.SetDefault("oauth.google.client_secret", "")
	v.SetDefault("oauth.google.redirect_url", "http://localhost:8080/api/auth/oauth/google/callback")

	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_address", "support@helpdesk.local")
	v.SetDefault("email.from_name", "Helpdesk")
	v.SetDefault("email.login_url", "http://localhost:3000/login")
	v.SetDefault("email.templates_dir", "")

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.bucket", "helpdesk-attachments")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.max_file_size_mb", 10)
	v.SetDefault("storage.local_dir", "data/attachments")

	v.SetDefault("tickets.enforce_forward_transitions", false)
	v.SetDefault("tickets.default_priority", "medium")
	v.SetDefault("tickets.placeholder_hardware_type", "Unknown")
	v.SetDefault("tickets.placeholder_location", "Unknown")
	v.SetDefault("tickets.comment_retention_days", 0)

	v.SetDefault("public_intake.rate_limit_per_minute", 10)

	v.SetDefault("internal.service_token", "")
	v.SetDefault("internal.email_rate_limit_per_minute", 30)
}
