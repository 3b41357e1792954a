package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

// AuthConfig is the single identity that gates the whole application.
type AuthConfig struct {
	Pin      string `mapstructure:"pin"`
	UserName string `mapstructure:"user_name"`
}

type CORSConfig struct {
	Origin string `mapstructure:"origin"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from the given file path (e.g. "config.yaml").
// The file is optional: defaults plus BF_-prefixed environment variables
// (e.g. BF_SERVER_PORT, BF_AUTH_PIN) are enough to run.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		setDefaults(v)

		// environment overrides, e.g. BF_SERVER_PORT=9000
		v.SetEnvPrefix("BF") // budget formula
		v.SetEnvKeyReplacer(envKeyReplacer)
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || isMissingFile(err) {
				err = nil
			} else {
				err = fmt.Errorf("read config: %w", err)
				return
			}
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	if appConfig == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.path", "./data/budget.db")
	v.SetDefault("database.log_mode", false)
	v.SetDefault("auth.pin", "1234")
	v.SetDefault("auth.user_name", "Kartik Upadhyay")
	v.SetDefault("cors.origin", "http://localhost:5173")
}

// isMissingFile covers the explicit-path case, where viper reports a
// plain *fs.PathError instead of ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) && os.IsNotExist(pathErr)
}
