// Package config loads the docstore CLI configuration from a YAML file and
// DOCSTORE_* environment variables.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/jmgilman/go/docstore/errors"
	"github.com/jmgilman/go/docstore/internal/logging"
)

// Storage backends.
const (
	BackendLocal  = "local"
	BackendMemory = "memory"
	BackendMinIO  = "minio"
)

// DefaultRemoteRoot is the documents root used by the memory and minio
// backends when none is configured.
const DefaultRemoteRoot = "/documents"

// EnvPrefix prefixes every environment variable override, e.g.
// DOCSTORE_MINIO_BUCKET for minio.bucket.
const EnvPrefix = "DOCSTORE"

// Config represents the CLI configuration.
type Config struct {
	// Root is the documents root. Empty means the platform documents
	// directory for the local backend and DefaultRemoteRoot otherwise.
	Root       string      `mapstructure:"root" yaml:"root"`
	CreateRoot bool        `mapstructure:"create_root" yaml:"create_root"`
	Backend    string      `mapstructure:"backend" yaml:"backend"`
	MinIO      MinIOConfig `mapstructure:"minio" yaml:"minio"`
	Log        LogConfig   `mapstructure:"log" yaml:"log"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendLocal, BackendMemory, BackendMinIO)),
		validation.Field(&c.Root, validation.When(c.Backend != BackendLocal && c.Root != "",
			validation.By(absolutePath))),
	); err != nil {
		return err
	}
	if c.Backend == BackendMinIO {
		if err := c.MinIO.Validate(); err != nil {
			return validation.Errors{"minio": err}
		}
	}
	if err := c.Log.Validate(); err != nil {
		return validation.Errors{"log": err}
	}
	return nil
}

// RootPath returns the configured root, defaulting to DefaultRemoteRoot for
// non-local backends. An empty result means the platform documents directory.
func (c *Config) RootPath() string {
	if c.Root == "" && c.Backend != BackendLocal {
		return DefaultRemoteRoot
	}
	return c.Root
}

// MinIOConfig holds MinIO backend configuration.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl" yaml:"use_ssl"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
}

// Validate validates the MinIO configuration.
func (c *MinIOConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required),
		validation.Field(&c.Bucket, validation.Required),
		validation.Field(&c.AccessKey, validation.Required),
		validation.Field(&c.SecretKey, validation.Required),
	)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the logging configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.By(func(value interface{}) error {
			_, err := logging.ParseLogLevel(value.(string))
			return err
		})),
		validation.Field(&c.Format, validation.By(func(value interface{}) error {
			_, err := logging.ParseFormat(value.(string))
			return err
		})),
	)
}

// LoggerConfig converts the logging section into a logging.LogConfig.
// It assumes Validate has passed.
func (c *LogConfig) LoggerConfig() logging.LogConfig {
	level, _ := logging.ParseLogLevel(c.Level)
	format, _ := logging.ParseFormat(c.Format)
	return logging.LogConfig{Level: level, Format: format}
}

func absolutePath(value interface{}) error {
	if p, _ := value.(string); !strings.HasPrefix(p, "/") {
		return stderrors.New("must be an absolute path")
	}
	return nil
}

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		CreateRoot: true,
		Backend:    BackendLocal,
		Log: LogConfig{
			Level:  "warn",
			Format: string(logging.FormatText),
		},
	}
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("root", d.Root)
	v.SetDefault("create_root", d.CreateRoot)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("minio.endpoint", d.MinIO.Endpoint)
	v.SetDefault("minio.bucket", d.MinIO.Bucket)
	v.SetDefault("minio.access_key", d.MinIO.AccessKey)
	v.SetDefault("minio.secret_key", d.MinIO.SecretKey)
	v.SetDefault("minio.use_ssl", d.MinIO.UseSSL)
	v.SetDefault("minio.prefix", d.MinIO.Prefix)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// DefaultPath returns $HOME/.config/docstore/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docstore", "config.yaml"), nil
}

// Load reads the configuration.
//
// An explicit cfgFile must exist. Without one, the default path is used if
// present and defaults apply otherwise. Environment variables override both.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to read config file",
				map[string]interface{}{"path": cfgFile})
		}
	} else if path, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to read config file",
					map[string]interface{}{"path": path})
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid configuration")
	}
	return cfg, nil
}
