package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/venuemap/pkg/constants"
)

// TestLoadConfig verifies basic config loading and defaults.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.TemplatesPath == "" {
		t.Error("TemplatesPath not set to default")
	}
	if config.BackupSuffix == "" {
		t.Error("BackupSuffix not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("VERBOSE", "true")
	t.Setenv("FORMAT", "json")
	t.Setenv("TEMPLATES_PATH", "/data/venues.yaml")
	t.Setenv("LOG_DIR", "/tmp/venuemap-logs")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Verbose {
		t.Error("VERBOSE environment variable not loaded")
	}
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
	if config.TemplatesPath != "/data/venues.yaml" {
		t.Errorf("TemplatesPath = %s, want /data/venues.yaml", config.TemplatesPath)
	}
	if config.LogDir != "/tmp/venuemap-logs" {
		t.Errorf("LogDir = %s, want /tmp/venuemap-logs", config.LogDir)
	}
}

// TestConfig_BooleanFlags verifies boolean parsing from the environment.
func TestConfig_BooleanFlags(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		check    func(*Config) bool
		want     bool
	}{
		{
			name:     "LockStore",
			envVar:   "LOCK_STORE",
			envValue: "false",
			check:    func(c *Config) bool { return c.LockStore },
			want:     false,
		},
		{
			name:     "NoColor",
			envVar:   "NO_COLOR",
			envValue: "1",
			check:    func(c *Config) bool { return c.NoColor },
			want:     true,
		},
		{
			name:     "Quiet",
			envVar:   "QUIET",
			envValue: "true",
			check:    func(c *Config) bool { return c.Quiet },
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.envValue)

			config, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() failed: %v", err)
			}

			if got := tt.check(config); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// TestConfig_LoggingOptions verifies logging configuration.
func TestConfig_LoggingOptions(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "stdout")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
	if config.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", config.LogFormat)
	}
	if config.LogOutput != "stdout" {
		t.Errorf("LogOutput = %s, want stdout", config.LogOutput)
	}
}

// TestLoadConfigFile verifies an explicit config file is read and that a
// missing one is an error.
func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.DefaultConfigName+".yaml")
	content := "backup_suffix: .orig\nlog_dir: reports\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}
	if config.BackupSuffix != ".orig" {
		t.Errorf("BackupSuffix = %s, want .orig", config.BackupSuffix)
	}
	if config.LogDir != "reports" {
		t.Errorf("LogDir = %s, want reports", config.LogDir)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfigFile() with a missing file should fail")
	}
}

// TestConfig_UpdateFromFlags verifies flags override loaded values.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "table", LogLevel: "info", Quiet: true}
	config.UpdateFromFlags(true, false, true, "json", "")

	if !config.Verbose || !config.Quiet || !config.NoColor {
		t.Errorf("boolean flags not merged: %+v", config)
	}
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info (empty flag keeps config)", config.LogLevel)
	}
}
