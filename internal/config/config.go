package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	cerrors "github.com/pvolkov/certup/internal/errors"
)

// fileName is the optional project-local settings file.
const fileName = "certup.yaml"

// Config holds all certup settings. Values are resolved in order:
// built-in defaults, then certup.yaml (if present), then environment
// variables (a .env file is loaded into the environment first).
type Config struct {
	// Domain is the site domain a certificate is issued for.
	Domain string `env:"DOMAIN" yaml:"domain"`

	// Email is the Let's Encrypt account contact.
	Email string `env:"LETSENCRYPT_EMAIL" yaml:"email"`

	// ComposeFile is the compose file describing the site stack.
	ComposeFile string `env:"COMPOSE_FILE_PATH" yaml:"compose_file"`

	// CertbotService is the compose service running certbot one-offs.
	CertbotService string `env:"CERTBOT_SERVICE" yaml:"certbot_service"`

	// ProxyService is the compose service running the reverse proxy.
	ProxyService string `env:"PROXY_SERVICE" yaml:"proxy_service"`

	// Webroot is the challenge directory shared between certbot and
	// the proxy, as seen inside the certbot container.
	Webroot string `env:"CERTBOT_WEBROOT" yaml:"webroot"`

	// Staging switches issuance to the Let's Encrypt staging CA.
	Staging bool `env:"LETSENCRYPT_STAGING" yaml:"staging"`

	Server   ServerConfig   `yaml:"server"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// ServerConfig configures the lead-form web server.
type ServerConfig struct {
	Addr            string `env:"LISTEN_ADDR" yaml:"addr"`
	TemplatesDir    string `env:"TEMPLATES_DIR" yaml:"templates_dir"`
	StaticDir       string `env:"STATIC_DIR" yaml:"static_dir"`
	FormTokenSecret string `env:"FORM_TOKEN_SECRET" yaml:"-"`
}

// TelegramConfig configures lead delivery to a Telegram chat.
type TelegramConfig struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN" yaml:"-"`
	ChatID   string `env:"TELEGRAM_CHAT_ID" yaml:"chat_id"`
	APIBase  string `env:"TELEGRAM_API_BASE" yaml:"api_base"`
	ProxyURL string `env:"TELEGRAM_PROXY_URL" yaml:"proxy_url"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		ComposeFile:    "docker-compose.yml",
		CertbotService: "certbot",
		ProxyService:   "nginx",
		Webroot:        "/var/www/certbot",
		Server: ServerConfig{
			Addr:         "127.0.0.1:8041",
			TemplatesDir: "templates",
			StaticDir:    "static",
		},
		Telegram: TelegramConfig{
			APIBase: "https://api.telegram.org",
		},
	}
}

// Load resolves the configuration from the current directory.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom resolves the configuration rooted at dir. A certup.yaml in
// dir overrides defaults; environment variables override both. A .env
// file in dir is loaded into the environment first without replacing
// variables that are already set.
func LoadFrom(dir string) (*Config, error) {
	cfg := New()

	path := filepath.Join(dir, fileName)
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeConfig, fmt.Sprintf("failed to parse %s", fileName), err)
		}
	} else if !os.IsNotExist(err) {
		return nil, cerrors.Wrap(cerrors.ErrCodeConfig, fmt.Sprintf("failed to read %s", fileName), err)
	}

	// The .env file might not exist and that's ok
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	if err := env.Parse(cfg); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeConfig, "failed to parse environment", err)
	}

	return cfg, nil
}

// RequireIssuance verifies the variables issuance depends on. It is
// called before any external command runs so a missing variable never
// reaches certbot.
func (c *Config) RequireIssuance() error {
	if c.Domain == "" {
		return cerrors.ErrDomainRequired
	}
	if c.Email == "" {
		return cerrors.ErrEmailRequired
	}
	return nil
}

// RequireComposeFile verifies the compose file exists on disk.
func (c *Config) RequireComposeFile() error {
	if _, err := os.Stat(c.ComposeFile); err != nil {
		if os.IsNotExist(err) {
			return cerrors.Wrap(cerrors.ErrCodeConfig, fmt.Sprintf("compose file not found: %s", c.ComposeFile), nil)
		}
		return cerrors.Wrap(cerrors.ErrCodeConfig, "failed to stat compose file", err)
	}
	return nil
}
