package config

import (
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// DefaultJWTSecret is the placeholder signing secret used outside of
// production. Starting in production with it is refused.
const DefaultJWTSecret = "dev_secret_change_me"

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "./config.yaml"
)

// Config is built once at startup and passed explicitly to every component
// that needs it. Nothing mutates it afterwards.
type Config struct {
	Environment string `koanf:"environment" default:"development"`

	ServerHost       string   `koanf:"server_host"`
	ServerPort       int      `koanf:"server_port" default:"8000"`
	CORSAllowOrigins []string `koanf:"cors_allow_origins" default:"[\"*\"]"`

	DatabaseFilePath          string        `koanf:"database_file_path" default:"./chapterprep.db" required:"true"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`

	JWTSecret                string `koanf:"jwt_secret" default:"dev_secret_change_me" required:"true"`
	JWTAlgorithm             string `koanf:"jwt_algorithm" default:"HS256"`
	AccessTokenExpireMinutes int    `koanf:"access_token_expire_minutes" default:"60"`

	GeminiAPIKey      string        `koanf:"gemini_api_key"`
	GeminiBaseURL     string        `koanf:"gemini_base_url" default:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiModel       string        `koanf:"gemini_model" default:"gemini-2.5-flash"`
	GeminiTimeout     time.Duration `koanf:"gemini_timeout" default:"30s"`
	GeminiTemperature float64       `koanf:"gemini_temperature" default:"0.2"`
}

// New loads the configuration from struct defaults, then the optional YAML
// file at CONFIG_FILE, then environment variables. Later sources win.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	path := os.Getenv(configFileENV)
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "loading config file %s", path)
		}
	}

	keys := knownKeys()
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(key)
		if _, ok := keys[key]; !ok {
			return "", nil
		}
		if key == "cors_allow_origins" {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a configuration suitable for tests: an in-memory
// database, a fixed secret and no upstream key.
func NewForTest() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	cfg.Environment = EnvironmentTest
	cfg.ServerHost = "127.0.0.1"
	cfg.DatabaseFilePath = ":memory:"
	cfg.JWTSecret = "test_secret"
	return cfg
}

// AccessTokenExpiry is the lifetime of issued access tokens.
func (c *Config) AccessTokenExpiry() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func knownKeys() map[string]struct{} {
	keys := map[string]struct{}{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("koanf"); tag != "" {
			keys[tag] = struct{}{}
		}
	}
	return keys
}

func splitList(value string) []string {
	list := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}
