package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files. Flags are applied on top in
// setupCommand.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Store and report locations
	TemplatesPath string
	LogDir        string
	BackupSuffix  string
	LockStore     bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by setupCommand)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.venuemap.yaml or ./.venuemap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := newViper()
	if configFile := v.GetString("config"); configFile != "" {
		return LoadConfigFile(configFile)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(constants.DefaultConfigName)

	// Read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return fromViper(v), nil
}

// LoadConfigFile loads configuration from an explicit file. Unlike the
// search in LoadConfig, a missing or malformed file is an error.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError("config", "reading "+path, err)
	}
	return fromViper(v), nil
}

// newViper returns a fresh viper instance bound to the environment with
// defaults set.
func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("templates_path", constants.DefaultTemplatesPath)
	v.SetDefault("log_dir", constants.DefaultLogDir)
	v.SetDefault("backup_suffix", constants.BackupSuffix)
	v.SetDefault("lock_store", true)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		TemplatesPath: v.GetString("templates_path"),
		LogDir:        v.GetString("log_dir"),
		BackupSuffix:  v.GetString("backup_suffix"),
		LockStore:     v.GetBool("lock_store"),

		// Empty leaves the level to -v/-q in determineLogLevel.
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
