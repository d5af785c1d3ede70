// Package config holds the defaults shared by the CLI and the web server.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/foldbook/internal/imposition"
	"gopkg.in/yaml.v3"
)

// Config is read from a YAML file and FOLDBOOK_* environment variables.
// Environment variables win over the file.
type Config struct {
	Format      string `yaml:"format"`
	Orientation string `yaml:"orientation"`
	SpineGuide  bool   `yaml:"spine_guide"`
	Optimize    bool   `yaml:"optimize"`
	Port        string `yaml:"port"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
	MaxPages    int    `yaml:"max_pages"` // ceiling for page counts not read from a document
	MaxJobs     int    `yaml:"max_jobs"`  // finished jobs the server keeps
}

func Default() Config {
	return Config{
		Format:      "a7",
		Orientation: "portrait",
		SpineGuide:  true,
		Port:        "8888",
		MaxUploadMB: 50,
		MaxPages:    10000,
		MaxJobs:     100,
	}
}

// Load returns the defaults overlaid with the YAML file at path, if path is
// not empty, and then with the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		slog.Debug("Loaded config file", "path", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("FOLDBOOK_FORMAT"); ok {
		c.Format = v
	}
	if v, ok := os.LookupEnv("FOLDBOOK_ORIENTATION"); ok {
		c.Orientation = v
	}
	if v, ok := os.LookupEnv("FOLDBOOK_PORT"); ok {
		c.Port = v
	}
	if v, ok := os.LookupEnv("FOLDBOOK_SPINE_GUIDE"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid FOLDBOOK_SPINE_GUIDE %q: %w", v, err)
		}
		c.SpineGuide = b
	}
	if v, ok := os.LookupEnv("FOLDBOOK_OPTIMIZE"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid FOLDBOOK_OPTIMIZE %q: %w", v, err)
		}
		c.Optimize = b
	}
	if v, ok := os.LookupEnv("FOLDBOOK_MAX_UPLOAD_MB"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid FOLDBOOK_MAX_UPLOAD_MB %q: %w", v, err)
		}
		c.MaxUploadMB = n
	}
	if v, ok := os.LookupEnv("FOLDBOOK_MAX_PAGES"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid FOLDBOOK_MAX_PAGES %q: %w", v, err)
		}
		c.MaxPages = n
	}
	if v, ok := os.LookupEnv("FOLDBOOK_MAX_JOBS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid FOLDBOOK_MAX_JOBS %q: %w", v, err)
		}
		c.MaxJobs = n
	}
	return nil
}

// Validate checks the values that cannot be checked by their type.
func (c Config) Validate() error {
	if _, err := c.BookletFormat(); err != nil {
		return err
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d MB", c.MaxUploadMB)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive, got %d", c.MaxPages)
	}
	if c.MaxJobs <= 0 {
		return fmt.Errorf("max jobs must be positive, got %d", c.MaxJobs)
	}
	return nil
}

// BookletFormat resolves Format and Orientation.
func (c Config) BookletFormat() (imposition.Format, error) {
	return imposition.Resolve(c.Format, c.Orientation)
}

// CheckPageCount rejects page counts outside 1..MaxPages.
func (c Config) CheckPageCount(n int) error {
	if n < 1 || n > c.MaxPages {
		return fmt.Errorf("page count must be between 1 and %d, got %d", c.MaxPages, n)
	}
	return nil
}

// MaxUploadBytes is the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
