/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/suparena/hbnb/errors"
)

// Backend names.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
)

// Defaults.
const (
	DefaultBackend  = BackendFile
	DefaultFilePath = "file.json"
	DefaultPrompt   = "(hbnb) "
	DefaultLogLevel = "warn"
	DefaultEnvFile  = ".env"
)

// Config holds the settings of the hbnb console.
type Config struct {
	Backend  string         `yaml:"backend"`   // file, memory or dynamodb (default: file)
	FilePath string         `yaml:"file_path"` // JSON mirror path (default: file.json)
	Prompt   string         `yaml:"prompt"`    // interactive prompt (default: "(hbnb) ")
	LogLevel string         `yaml:"log_level"` // zap level name (default: warn)
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
}

// DynamoDBConfig configures the dynamodb backend.
type DynamoDBConfig struct {
	Region    string `yaml:"region"`
	Table     string `yaml:"table"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"` // optional, e.g. DynamoDB Local
}

// Default returns a Config with every field at its default.
func Default() *Config {
	return &Config{
		Backend:  DefaultBackend,
		FilePath: DefaultFilePath,
		Prompt:   DefaultPrompt,
		LogLevel: DefaultLogLevel,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), the env files (DefaultEnvFile when none are given; missing
// files are ignored) and finally HBNB_* environment variables. Variables
// set in the process environment win over values from env files; env files
// never modify the process environment.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	fileEnv := make(map[string]string)
	for _, f := range envFiles {
		vals, err := godotenv.Read(f)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: failed to load %s: %w", f, err)
		}
		for k, v := range vals {
			if _, seen := fileEnv[k]; !seen {
				fileEnv[k] = v
			}
		}
	}

	cfg.apply(func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return fileEnv[key]
	})
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields with the HBNB_* environment variables that are
// set and non-empty.
func (c *Config) ApplyEnv() {
	c.apply(os.Getenv)
}

func (c *Config) apply(lookup func(string) string) {
	for key, field := range map[string]*string{
		"HBNB_BACKEND":        &c.Backend,
		"HBNB_FILE_PATH":      &c.FilePath,
		"HBNB_PROMPT":         &c.Prompt,
		"HBNB_LOG_LEVEL":      &c.LogLevel,
		"HBNB_DDB_REGION":     &c.DynamoDB.Region,
		"HBNB_DDB_TABLE":      &c.DynamoDB.Table,
		"HBNB_DDB_ACCESS_KEY": &c.DynamoDB.AccessKey,
		"HBNB_DDB_SECRET_KEY": &c.DynamoDB.SecretKey,
		"HBNB_DDB_ENDPOINT":   &c.DynamoDB.Endpoint,
	} {
		if v := lookup(key); v != "" {
			*field = v
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.FilePath == "" {
			return errors.NewValidationError("file_path", "required for the file backend")
		}
	case BackendMemory:
	case BackendDynamoDB:
		if c.DynamoDB.Table == "" {
			return errors.NewValidationError("dynamodb.table", "required for the dynamodb backend")
		}
		if c.DynamoDB.Region == "" {
			return errors.NewValidationError("dynamodb.region", "required for the dynamodb backend")
		}
	default:
		return errors.NewValidationError("backend", fmt.Sprintf("unknown backend %q", c.Backend))
	}

	if _, err := c.Level(); err != nil {
		return errors.NewValidationError("log_level", err.Error())
	}
	return nil
}

// Level parses LogLevel. An empty level means DefaultLogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	name := c.LogLevel
	if name == "" {
		name = DefaultLogLevel
	}
	return zapcore.ParseLevel(name)
}
