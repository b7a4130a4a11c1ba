package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Dev.Host, DefaultHost)
	}
	if !cfg.HotReload() {
		t.Error("HotReload should default to true")
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "name": "my-project",
  "dev": {
    "port": 9000,
    "host": "0.0.0.0",
    "hotReload": false,
    "proxy": {"/api/ext": "http://localhost:5000"}
  },
  "source": {"s3Bucket": "boilerplates", "s3Key": "django/latest.tar.gz"}
}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "my-project" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Dev.Port != 9000 {
		t.Errorf("Port = %d", cfg.Dev.Port)
	}
	if cfg.HotReload() {
		t.Error("HotReload should be false")
	}
	if cfg.Dev.Proxy["/api/ext"] != "http://localhost:5000" {
		t.Errorf("Proxy = %v", cfg.Dev.Proxy)
	}
	if cfg.Source.S3Bucket != "boilerplates" {
		t.Errorf("S3Bucket = %q", cfg.Source.S3Bucket)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDerivedAddresses(t *testing.T) {
	cfg, _ := Load(t.TempDir())
	if cfg.AppPort() != DefaultPort+1 {
		t.Errorf("AppPort = %d", cfg.AppPort())
	}
	if cfg.DevAddress() != "127.0.0.1:8000" {
		t.Errorf("DevAddress = %q", cfg.DevAddress())
	}
	if cfg.DevURL() != "http://127.0.0.1:8000" {
		t.Errorf("DevURL = %q", cfg.DevURL())
	}

	cfg.Dev.Host = "0.0.0.0"
	if cfg.DevURL() != "http://localhost:8000" {
		t.Errorf("DevURL with wildcard host = %q", cfg.DevURL())
	}
}
