// Package config provides startup configuration for litert.
// It layers built-in defaults, an optional YAML profile and environment
// variables, and turns the result into the session the loop mutates.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/session"
)

// Config holds all startup settings for litert
type Config struct {
	// Inference binary settings
	ExecutablePath string
	ModelPath      string
	Backend        string
	LibraryPath    string

	// Runtime settings
	PTY bool

	// Logging settings
	Verbose  bool
	LogFile  string
	LogLevel string
}

// Default values
const (
	DefaultExecutablePath = session.DefaultExecutablePath
	DefaultModelPath      = session.DefaultModelPath
	DefaultBackend        = string(session.DefaultBackend)
	DefaultLibraryPath    = session.DefaultLibraryPath
	DefaultLogLevel       = "debug"
)

// Environment variables read by Load.
const (
	EnvBin      = "LITERT_BIN"
	EnvModel    = "LITERT_MODEL"
	EnvBackend  = "LITERT_BACKEND"
	EnvLibrary  = "LITERT_LD_LIBRARY_PATH"
	EnvProfile  = "LITERT_PROFILE"
	EnvPTY      = "LITERT_PTY"
	EnvVerbose  = "LITERT_VERBOSE"
	EnvLogFile  = "LITERT_LOG_FILE"
	EnvLogLevel = "LITERT_LOG_LEVEL"
)

// NewConfig creates a configuration with default values
func NewConfig() *Config {
	return &Config{
		ExecutablePath: DefaultExecutablePath,
		ModelPath:      DefaultModelPath,
		Backend:        DefaultBackend,
		LibraryPath:    DefaultLibraryPath,
		LogLevel:       DefaultLogLevel,
	}
}

// Load builds a configuration from defaults, the profile at profilePath
// (or $LITERT_PROFILE when profilePath is empty) and the environment.
func Load(profilePath string) (*Config, error) {
	cfg := NewConfig()

	if profilePath == "" {
		profilePath = os.Getenv(EnvProfile)
	}
	if profilePath != "" {
		if err := cfg.LoadProfile(profilePath); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// profile mirrors Config with pointer booleans so an absent key does not
// reset a value set by a lower layer.
type profile struct {
	ExecutablePath string `yaml:"bin"`
	ModelPath      string `yaml:"model"`
	Backend        string `yaml:"backend"`
	LibraryPath    string `yaml:"ld_library_path"`
	PTY            *bool  `yaml:"pty"`
	Verbose        *bool  `yaml:"verbose"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
}

// LoadProfile overlays the non-empty keys of a YAML profile. The file is
// only ever read.
func (c *Config) LoadProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var p profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return nil // empty profile
		}
		return fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	c.WithExecutable(p.ExecutablePath).
		WithModel(p.ModelPath).
		WithBackend(p.Backend).
		WithLibraryPath(p.LibraryPath)
	if p.PTY != nil {
		c.PTY = *p.PTY
	}
	if p.Verbose != nil {
		c.Verbose = *p.Verbose
	}
	if p.LogFile != "" {
		c.LogFile = p.LogFile
	}
	if p.LogLevel != "" {
		c.LogLevel = p.LogLevel
	}
	return nil
}

// ApplyEnv overlays LITERT_* environment variables that are set.
func (c *Config) ApplyEnv() *Config {
	c.ExecutablePath = getEnv(EnvBin, c.ExecutablePath)
	c.ModelPath = getEnv(EnvModel, c.ModelPath)
	c.Backend = getEnv(EnvBackend, c.Backend)
	c.LibraryPath = getEnv(EnvLibrary, c.LibraryPath)
	c.PTY = getEnvBool(EnvPTY, c.PTY)
	c.Verbose = getEnvBool(EnvVerbose, c.Verbose)
	c.LogFile = getEnv(EnvLogFile, c.LogFile)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	return c
}

// WithExecutable sets the inference binary path; empty keeps the current value.
func (c *Config) WithExecutable(path string) *Config {
	if path != "" {
		c.ExecutablePath = path
	}
	return c
}

// WithModel sets the model path; empty keeps the current value.
func (c *Config) WithModel(path string) *Config {
	if path != "" {
		c.ModelPath = path
	}
	return c
}

// WithBackend sets the backend name; empty keeps the current value.
func (c *Config) WithBackend(backend string) *Config {
	if backend != "" {
		c.Backend = backend
	}
	return c
}

// WithLibraryPath sets LD_LIBRARY_PATH for gpu runs; empty keeps the current value.
func (c *Config) WithLibraryPath(path string) *Config {
	if path != "" {
		c.LibraryPath = path
	}
	return c
}

// WithPTY enables pseudo-terminal mode
func (c *Config) WithPTY(enabled bool) *Config {
	c.PTY = enabled
	return c
}

// WithLogging configures the log side channel
func (c *Config) WithLogging(verbose bool, file, level string) *Config {
	c.Verbose = verbose
	if file != "" {
		c.LogFile = file
	}
	if level != "" {
		c.LogLevel = level
	}
	return c
}

// Validate checks that the configuration can seed a session
func (c *Config) Validate() error {
	if _, err := session.ParseBackend(c.Backend); err != nil {
		return fmt.Errorf("invalid backend: %w", err)
	}
	for name, v := range map[string]string{
		"bin":             c.ExecutablePath,
		"model":           c.ModelPath,
		"ld_library_path": c.LibraryPath,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("invalid %s: %w", name, session.ErrEmptyValue)
		}
	}
	return nil
}

// Session validates the configuration and returns a session seeded with it.
func (c *Config) Session() (*session.State, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := session.New()
	// Validate already guarantees these succeed.
	_ = s.SetExecutablePath(c.ExecutablePath)
	_ = s.SetModelPath(c.ModelPath)
	_ = s.SetBackend(c.Backend)
	_ = s.SetLibraryPath(c.LibraryPath)
	return s, nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
