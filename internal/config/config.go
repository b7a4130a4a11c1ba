package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/djboot-dev/djboot/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "djboot.json"

	// DefaultPort is the default development proxy port.
	DefaultPort = 8000

	// DefaultHost is the default development proxy host.
	DefaultHost = "127.0.0.1"
)

// Config represents the complete djboot.json configuration. The file is
// optional; every field has a working default.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Dev contains development proxy configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Source contains boilerplate source defaults.
	Source SourceConfig `json:"source,omitempty"`

	// configDir stores the directory the config was loaded from.
	configDir string
}

// DevConfig contains development proxy settings.
type DevConfig struct {
	// Port is the port the proxy listens on. The Django server runs on
	// Port+1.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Watch contains extra paths to watch for changes.
	Watch []string `json:"watch,omitempty"`

	// Ignore contains patterns to skip during watch.
	Ignore []string `json:"ignore,omitempty"`

	// Proxy contains prefix rules for forwarding requests elsewhere.
	Proxy map[string]string `json:"proxy,omitempty"`

	// HotReload enables browser reload on file changes. Defaults to true.
	HotReload *bool `json:"hotReload,omitempty"`
}

// SourceConfig contains boilerplate source defaults.
type SourceConfig struct {
	// Dir is the local boilerplate directory.
	Dir string `json:"dir,omitempty"`

	// S3Bucket and S3Key locate a remote boilerplate archive.
	S3Bucket string `json:"s3Bucket,omitempty"`
	S3Key    string `json:"s3Key,omitempty"`
}

// Load reads djboot.json from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	cfg := &Config{configDir: dir}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if os.IsNotExist(err) {
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, errors.New("E003").WithPath(dir).Wrap(err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E003").
			WithPath(filepath.Join(dir, ConfigFileName)).
			Wrap(err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromWorkingDir loads the config from the current directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Load(wd)
}

// applyDefaults fills zero fields with working defaults.
func (c *Config) applyDefaults() {
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
}

// Dir returns the directory the config was loaded from.
func (c *Config) Dir() string {
	return c.configDir
}

// HotReload reports whether browser reload is enabled.
func (c *Config) HotReload() bool {
	if c.Dev.HotReload == nil {
		return true
	}
	return *c.Dev.HotReload
}

// AppPort returns the port the Django server itself binds to.
func (c *Config) AppPort() int {
	return c.Dev.Port + 1
}

// DevAddress returns the proxy listen address.
func (c *Config) DevAddress() string {
	return fmt.Sprintf("%s:%d", c.Dev.Host, c.Dev.Port)
}

// DevURL returns the proxy URL for the terminal banner.
func (c *Config) DevURL() string {
	host := c.Dev.Host
	if host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Dev.Port)
}
