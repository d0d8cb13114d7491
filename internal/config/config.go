package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML files can use forms like "30s" or "2h".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
}

// StorageConfig contains record-store settings.
type StorageConfig struct {
	DataDir     string   `yaml:"data_dir"`     // collection JSON files live here
	ExportsDir  string   `yaml:"exports_dir"`  // generated xlsx reports
	BackupsDir  string   `yaml:"backups_dir"`  // timestamped data snapshots
	LockTimeout Duration `yaml:"lock_timeout"` // bound on file lock acquisition
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address string `yaml:"address"` // listen address (e.g., ":8080")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret  string   `yaml:"jwt_secret"`
	SessionTTL Duration `yaml:"session_ttl"`
	BcryptCost int      `yaml:"bcrypt_cost"` // 0 uses the bcrypt default

	// First-run administrator account, intended to be changed immediately.
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	AdminFullName string `yaml:"admin_full_name"`
	AdminEmail    string `yaml:"admin_email"`
}

func defaults() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:     "data",
			ExportsDir:  "exports",
			BackupsDir:  "backups",
			LockTimeout: Duration(10 * time.Second),
		},
		HTTP: HTTPConfig{
			Address: ":8080",
		},
		Auth: AuthConfig{
			SessionTTL:    Duration(8 * time.Hour),
			AdminUsername: "admin",
			AdminPassword: "Admin@123",
			AdminFullName: "System Administrator",
			AdminEmail:    "admin@example.com",
		},
	}
}

// Load builds configuration from an optional YAML file at path (empty path
// skips the file) with environment variables taking precedence.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for the JWT secret
// in development. WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	c.Storage.DataDir = getEnv("DATA_DIR", c.Storage.DataDir)
	c.Storage.ExportsDir = getEnv("EXPORTS_DIR", c.Storage.ExportsDir)
	c.Storage.BackupsDir = getEnv("BACKUPS_DIR", c.Storage.BackupsDir)
	c.HTTP.Address = getEnv("HTTP_ADDRESS", c.HTTP.Address)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.AdminUsername = getEnv("ADMIN_USERNAME", c.Auth.AdminUsername)
	c.Auth.AdminPassword = getEnv("ADMIN_PASSWORD", c.Auth.AdminPassword)

	var err error
	if c.Storage.LockTimeout, err = getEnvDuration("LOCK_TIMEOUT", c.Storage.LockTimeout); err != nil {
		return err
	}
	if c.Auth.SessionTTL, err = getEnvDuration("SESSION_TTL", c.Auth.SessionTTL); err != nil {
		return err
	}
	if c.Auth.BcryptCost, err = getEnvInt("BCRYPT_COST", c.Auth.BcryptCost); err != nil {
		return err
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// getEnvDuration retrieves an environment variable as a duration with a default fallback.
func getEnvDuration(key string, defaultVal Duration) (Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return Duration(d), nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Data: %s, HTTP: %s, Auth: *** (masked) ***}", c.Storage.DataDir, c.HTTP.Address)
}
