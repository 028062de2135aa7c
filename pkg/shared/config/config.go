package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Logger     Logger     `yaml:"logger"`
	Data       Data       `yaml:"data"`
	HttpClient HttpClient `yaml:"http_client"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Data describes where the catalog snapshot and relationship edges live.
type Data struct {
	Dir               string `yaml:"dir"`
	CatalogFile       string `yaml:"catalog_file"`
	RelationshipsFile string `yaml:"relationships_file"`
}

type HttpClient struct {
	Debug           bool          `yaml:"debug"`
	RetryCount      int           `yaml:"retry_count"`
	RetryWaitTime   time.Duration `yaml:"retry_wait_time"`
	Timeout         time.Duration `yaml:"timeout"`
	GithubToken     string        `yaml:"github_token"`
	TlsClientConfig TlsClient     `yaml:"tls_client_config"`
}

type TlsClient struct {
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// ValidateConfigPath checks the given path points at a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes a YAML file into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return fmt.Errorf("failed to decode config %q: %w", configPath, err)
	}

	return nil
}

// LoadConfig reads the config file and applies defaults. A missing file is
// not an error; the defaults are returned so the tool works out of the box.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		applyDefaults(config)
		return config, nil
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}
	applyDefaults(config)

	return config, nil
}

func applyDefaults(config *Config) {
	if config.Data.Dir == "" {
		config.Data.Dir = "data"
	}
	if config.Data.CatalogFile == "" {
		config.Data.CatalogFile = "catalog.json"
	}
	if config.Data.RelationshipsFile == "" {
		config.Data.RelationshipsFile = "relationships.json"
	}
	if config.HttpClient.RetryCount == 0 {
		config.HttpClient.RetryCount = 3
	}
	if config.HttpClient.RetryWaitTime == 0 {
		config.HttpClient.RetryWaitTime = 1 * time.Second
	}
	if config.HttpClient.Timeout == 0 {
		config.HttpClient.Timeout = 10 * time.Second
	}
}

// CatalogPath returns the full path of the persisted catalog snapshot.
func CatalogPath(config *Config) string {
	return filepath.Join(config.Data.Dir, config.Data.CatalogFile)
}

// RelationshipsPath returns the full path of the persisted edge list.
func RelationshipsPath(config *Config) string {
	return filepath.Join(config.Data.Dir, config.Data.RelationshipsFile)
}
