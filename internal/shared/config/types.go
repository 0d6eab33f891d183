package config

import (
	"fmt"
	"net/url"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// FrontendURL is where the OAuth callback sends the browser with the issued tokens.
	FrontendURL string `mapstructure:"frontend_url"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) IsDebug() bool {
	return s.Mode == "debug"
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	Path            string `mapstructure:"path"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN renders the connection string for the configured driver.
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case DriverPostgres:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case DriverSQLite:
		if d.Path == "" {
			return "file::memory:?cache=shared"
		}
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, url.QueryEscape(d.Password), d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
	// GeneratedLength is used when an admin creates a user without a password.
	GeneratedLength int `mapstructure:"generated_length"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	RefreshExpDays   int    `mapstructure:"refresh_exp_days"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	// CasbinPersist stores the role policies through the gorm adapter instead of memory.
	CasbinPersist bool `mapstructure:"casbin_persist"`
}

type GoogleOAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

func (g *GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type OAuthConfig struct {
	Google GoogleOAuthConfig `mapstructure:"google"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	// LoginURL is put into welcome emails when the caller does not supply one.
	LoginURL string `mapstructure:"login_url"`
	// TemplatesDir may hold files overriding the built-in email templates.
	TemplatesDir string `mapstructure:"templates_dir"`
}

func (e *EmailConfig) Enabled() bool {
	return e.SMTPHost != ""
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	// PublicBaseURL prefixes object keys to form the URLs stored on comments.
	PublicBaseURL string `mapstructure:"public_base_url"`
	MaxFileSizeMB int    `mapstructure:"max_file_size_mb"`
	// LocalDir holds attachments on disk when Endpoint is empty.
	LocalDir string `mapstructure:"local_dir"`
}

func (s *StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

type TicketsConfig struct {
	EnforceForwardTransitions bool   `mapstructure:"enforce_forward_transitions"`
	DefaultPriority           string `mapstructure:"default_priority"`
	PlaceholderHardwareType   string `mapstructure:"placeholder_hardware_type"`
	PlaceholderLocation       string `mapstructure:"placeholder_location"`
	// CommentRetentionDays is the default age for `maintenance purge-comments`. Zero keeps them.
	CommentRetentionDays int `mapstructure:"comment_retention_days"`
}

type PublicIntakeConfig struct {
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
}

type InternalConfig struct {
	// ServiceToken guards the email-access endpoint when set.
	ServiceToken            string `mapstructure:"service_token"`
	EmailRateLimitPerMinute int    `mapstructure:"email_rate_limit_per_minute"`
}
