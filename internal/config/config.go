// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all contactbook configuration.
type Config struct {
	Storage   Storage   `yaml:"storage"`
	Birthdays Birthdays `yaml:"birthdays"`
	Log       Log       `yaml:"log"`
	Shell     Shell     `yaml:"shell"`
}

// Storage holds the data file locations.
type Storage struct {
	ContactsPath string `yaml:"contacts_path"`
	NotesPath    string `yaml:"notes_path"`
}

// Birthdays holds birthday reminder settings.
type Birthdays struct {
	DefaultDays int `yaml:"default_days"` // Window used when the command gives none
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// Shell holds interactive front-end settings.
type Shell struct {
	Plain bool `yaml:"plain"` // Always use the line-based shell
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			ContactsPath: ".contactbook/users.json",
			NotesPath:    ".contactbook/notes.json",
		},
		Birthdays: Birthdays{
			DefaultDays: 7,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Storage.ContactsPath == "" {
		return errors.New("config: storage.contacts_path cannot be empty")
	}
	if c.Storage.NotesPath == "" {
		return errors.New("config: storage.notes_path cannot be empty")
	}
	if c.Storage.ContactsPath == c.Storage.NotesPath {
		return fmt.Errorf("config: storage.contacts_path and storage.notes_path must differ, both are %q", c.Storage.ContactsPath)
	}
	if c.Birthdays.DefaultDays <= 0 {
		return fmt.Errorf("config: birthdays.default_days must be positive, got %d", c.Birthdays.DefaultDays)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTBOOK_CONTACTS, CONTACTBOOK_NOTES,
// CONTACTBOOK_BIRTHDAY_DAYS, LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTBOOK_CONTACTS"); v != "" {
		c.Storage.ContactsPath = v
	}
	if v := os.Getenv("CONTACTBOOK_NOTES"); v != "" {
		c.Storage.NotesPath = v
	}
	if v := os.Getenv("CONTACTBOOK_BIRTHDAY_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTBOOK_BIRTHDAY_DAYS %q: %w", v, err)
		}
		c.Birthdays.DefaultDays = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage   *rawStorage   `yaml:"storage"`
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Log       *rawLog       `yaml:"log"`
	Shell     *rawShell     `yaml:"shell"`
}

type rawStorage struct {
	ContactsPath *string `yaml:"contacts_path"`
	NotesPath    *string `yaml:"notes_path"`
}

type rawBirthdays struct {
	DefaultDays *int `yaml:"default_days"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

type rawShell struct {
	Plain *bool `yaml:"plain"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Storage != nil {
		if layer.Storage.ContactsPath != nil {
			c.Storage.ContactsPath = *layer.Storage.ContactsPath
		}
		if layer.Storage.NotesPath != nil {
			c.Storage.NotesPath = *layer.Storage.NotesPath
		}
	}
	if layer.Birthdays != nil && layer.Birthdays.DefaultDays != nil {
		c.Birthdays.DefaultDays = *layer.Birthdays.DefaultDays
	}
	if layer.Log != nil && layer.Log.Level != nil {
		c.Log.Level = *layer.Log.Level
	}
	if layer.Shell != nil && layer.Shell.Plain != nil {
		c.Shell.Plain = *layer.Shell.Plain
	}
}
