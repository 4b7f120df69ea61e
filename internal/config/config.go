package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyAPIToken    = "api_token"
	KeyWorkspaceID = "workspace_id"
	KeyBaseURL     = "base_url"
	KeyHTTPTimeout = "http_timeout"
	KeyLogLevel    = "log_level"
	KeyHTTPAddr    = "http_addr"

	envPrefix = "TOGGL"
)

// Config holds environment-driven configuration.
type Config struct {
	Toggl TogglConfig `validate:"required"`
	Log   LogConfig
	HTTP  HTTPConfig
}

type TogglConfig struct {
	APIToken    string        `validate:"required"`
	WorkspaceID int64         `validate:"gte=0"` // 0 resolves the user's default workspace
	BaseURL     string        `validate:"required,url"`
	Timeout     time.Duration `validate:"gt=0"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

type HTTPConfig struct {
	Addr string // empty disables the HTTP listener
}

// SetDefaults sets default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, "https://api.track.toggl.com")
	v.SetDefault(KeyHTTPTimeout, 30*time.Second)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyWorkspaceID, 0)
	v.SetDefault(KeyHTTPAddr, "")
}

// Load reads a .env file if present, then TOGGL_* environment variables.
// Real environment variables win over .env entries.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	cfg.Toggl.APIToken = strings.TrimSpace(v.GetString(KeyAPIToken))
	cfg.Toggl.BaseURL = v.GetString(KeyBaseURL)
	cfg.Toggl.Timeout = v.GetDuration(KeyHTTPTimeout)
	cfg.Log.Level = strings.ToLower(v.GetString(KeyLogLevel))
	cfg.HTTP.Addr = v.GetString(KeyHTTPAddr)

	if raw := v.GetString(KeyWorkspaceID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, errors.New("TOGGL_WORKSPACE_ID must be an integer")
		}
		cfg.Toggl.WorkspaceID = id
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.StructNamespace() == "Config.Toggl.APIToken" {
					return cfg, errors.New("TOGGL_API_TOKEN is required")
				}
			}
		}
		return cfg, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name onto slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
