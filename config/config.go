package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/spf13/viper"
)

// DefaultAPIURL is the compiled-in store API base used when no override is configured
const DefaultAPIURL = "https://store-repair.sagartmt.com/api"

// DefaultPOURL is the purchase order service base
const DefaultPOURL = "https://store-repair.sagartmt.com/api/po"

type (
	app struct {
		Name     string `json:"name" mapstructure:"name" validate:"required"`
		Env      string `json:"env" mapstructure:"env" validate:"oneof=dev staging prod"`
		Port     int    `json:"port" mapstructure:"port" validate:"min=1,max=65535"`
		Timezone string `json:"timezone" mapstructure:"timezone"`
		Version  string `json:"version" mapstructure:"version"`
		Origin   string `json:"origin" mapstructure:"origin"`       // public origin the dashboard is served on
		LogLevel string `json:"log_level" mapstructure:"log_level"` // debug, info, warn, error
		Home     string `json:"home" mapstructure:"home"`           // local state directory
	}

	api struct {
		URL       string        `json:"url" mapstructure:"url"`
		POURL     string        `json:"po_url" mapstructure:"po_url"`
		Timeout   time.Duration `json:"timeout" mapstructure:"timeout"`
		UserAgent string        `json:"user_agent" mapstructure:"user_agent"`
	}

	token struct {
		Driver    string `json:"driver" mapstructure:"driver" validate:"oneof=file redis memory"`
		File      string `json:"file" mapstructure:"file"`
		KeyPrefix string `json:"key_prefix" mapstructure:"key_prefix"`
	}

	redis struct {
		Mode     string `json:"mode" mapstructure:"mode"` // "single", "cluster"
		Host     string `json:"host" mapstructure:"host"`
		Port     int    `json:"port" mapstructure:"port"`
		Password string `json:"password" mapstructure:"password"`
		DB       int    `json:"db" mapstructure:"db"`
		Cluster  struct {
			Nodes    []string `json:"nodes" mapstructure:"nodes"`
			Password string   `json:"password" mapstructure:"password"`
		} `json:"cluster" mapstructure:"cluster"`
	}

	server struct {
		PageSize int `json:"page_size" mapstructure:"page_size" validate:"min=1,max=500"`
	}

	Config struct {
		App    app    `json:"app" mapstructure:"app"`
		API    api    `json:"api" mapstructure:"api"`
		Token  token  `json:"token" mapstructure:"token"`
		Redis  redis  `json:"redis" mapstructure:"redis"`
		Server server `json:"server" mapstructure:"server"`
	}

	// RedisConfig is an alias for the internal redis struct for external access
	RedisConfig = redis
)

var cfg *Config

// Init loads configuration from defaults, an optional .config.json and the environment
func Init() error {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".config")
	v.SetConfigType("json")
	v.AddConfigPath("./")
	if home := defaultHome(); home != "" {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("STORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// VITE_API_URL is kept so existing dashboard deployments can share one env file
	if err := v.BindEnv("api.url", "STORE_API_URL", "VITE_API_URL"); err != nil {
		return fmt.Errorf("failed to bind api url env: %w", err)
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(loaded); err != nil {
		return err
	}

	cfg = loaded
	return nil
}

// Validate checks struct tags on a loaded configuration
func Validate(c *Config) error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Set replaces the active configuration. Used by tests and embedding programs.
func Set(c *Config) {
	cfg = c
}

// Get returns the current configuration instance
func Get() *Config {
	return cfg
}

// TokenFile returns the path of the file-backed token store
func (c *Config) TokenFile() string {
	if c.Token.File != "" {
		return c.Token.File
	}
	return filepath.Join(c.App.Home, "token")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "store-console")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 3000)
	v.SetDefault("app.timezone", "Asia/Kolkata")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.log_level", "warn")
	v.SetDefault("app.home", defaultHome())

	v.SetDefault("api.url", "")
	v.SetDefault("api.po_url", DefaultPOURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.user_agent", "store-console/0.1")

	v.SetDefault("token.driver", "file")
	v.SetDefault("token.key_prefix", "store-console:")

	v.SetDefault("redis.mode", "single")
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("server.page_size", 50)
}

func defaultHome() string {
	if home := os.Getenv("STORE_CONSOLE_HOME"); home != "" {
		return home
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, ".store-console")
}
