package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	VaultPath string `yaml:"vault_path"`
	StatePath string `yaml:"state_path"`

	ContactsFolder string `yaml:"contacts_folder"`
	NoteTemplate   string `yaml:"note_template"`
	FileNamePrefix string `yaml:"file_name_prefix"`
	PropertyPrefix string `yaml:"property_prefix"`
	SyncLabel      string `yaml:"sync_label"`
	Convention     string `yaml:"convention"`

	OrganizationAsLink bool `yaml:"organization_as_link"`
	RelationAsLink     bool `yaml:"relation_as_link"`
	TrackSyncTime      bool `yaml:"track_sync_time"`
	RenameFiles        bool `yaml:"rename_files"`
	LastNameFirst      bool `yaml:"last_name_first"`

	SyncIntervalMinutes int  `yaml:"sync_interval_minutes"`
	SyncOnStartup       bool `yaml:"sync_on_startup"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/peoplesync/config.yaml (YAML)
func Load() (*Config, error) {
	cfg := &Config{
		ContactsFolder: "Contacts",
		NoteTemplate:   "# Notes\n",
		Convention:     "default",
	}

	// Load .env.local if it exists (walking up parent directories)
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	// Load ~/.config/peoplesync/config.yaml if it exists
	if err := loadYAMLConfig(cfg); err != nil {
		// YAML config is optional, so we don't fail if it doesn't exist
	}

	// Override with environment variables
	if clientID := os.Getenv("PEOPLESYNC_CLIENT_ID"); clientID != "" {
		cfg.ClientID = clientID
	}
	if secret := getEnvOrFile("PEOPLESYNC_CLIENT_SECRET", "PEOPLESYNC_CLIENT_SECRET_FILE"); secret != "" {
		cfg.ClientSecret = secret
	}
	if vaultPath := os.Getenv("PEOPLESYNC_VAULT_PATH"); vaultPath != "" {
		cfg.VaultPath = vaultPath
	}
	if statePath := os.Getenv("PEOPLESYNC_STATE_PATH"); statePath != "" {
		cfg.StatePath = statePath
	}
	if folder := os.Getenv("PEOPLESYNC_CONTACTS_FOLDER"); folder != "" {
		cfg.ContactsFolder = folder
	}
	if label := os.Getenv("PEOPLESYNC_SYNC_LABEL"); label != "" {
		cfg.SyncLabel = label
	}
	if convention := os.Getenv("PEOPLESYNC_CONVENTION"); convention != "" {
		cfg.Convention = convention
	}
	if interval := os.Getenv("PEOPLESYNC_SYNC_INTERVAL_MINUTES"); interval != "" {
		n, err := strconv.Atoi(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid PEOPLESYNC_SYNC_INTERVAL_MINUTES %q: %w", interval, err)
		}
		cfg.SyncIntervalMinutes = n
	}
	for env, target := range map[string]*bool{
		"PEOPLESYNC_ORGANIZATION_AS_LINK": &cfg.OrganizationAsLink,
		"PEOPLESYNC_RELATION_AS_LINK":     &cfg.RelationAsLink,
		"PEOPLESYNC_TRACK_SYNC_TIME":      &cfg.TrackSyncTime,
		"PEOPLESYNC_RENAME_FILES":         &cfg.RenameFiles,
		"PEOPLESYNC_LAST_NAME_FIRST":      &cfg.LastNameFirst,
		"PEOPLESYNC_SYNC_ON_STARTUP":      &cfg.SyncOnStartup,
	} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", env, val, err)
		}
		*target = b
	}

	// Set defaults if not configured
	if cfg.StatePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.StatePath = filepath.Join(homeDir, ".local", "share", "peoplesync", "peoplesync.db")
	}

	return cfg, nil
}

// Validate checks the settings a sync run cannot work without.
func (c *Config) Validate() error {
	if c.VaultPath == "" {
		return fmt.Errorf("vault_path is not configured")
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("client_id and client_secret must be configured")
	}
	return nil
}

// loadYAMLConfig loads configuration from ~/.config/peoplesync/config.yaml
func loadYAMLConfig(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(homeDir, ".config", "peoplesync", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// getEnvOrFile gets an environment variable value, or reads it from a file
// if the _FILE variant is set
func getEnvOrFile(envVar, fileVar string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}

	if filePath := os.Getenv(fileVar); filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			return string(data)
		}
	}

	return ""
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
// Returns the path to .env.local if found, empty string otherwise.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// If we can't get home dir, just check cwd
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Clean paths for reliable comparison
	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)

	for {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}

		// Stop if we've reached home directory
		if dir == homeDir {
			break
		}

		// Get parent directory
		parent := filepath.Dir(dir)

		// Stop if we've reached the filesystem root
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}
