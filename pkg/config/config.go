package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	ManifestSource string
	ImageBase      string
	PublicDir      string
	ViewsDir       string
	SiteName       string
	BucketName     string
	Port           string
	SessionTTL     time.Duration
	LogLevel       string
	LogFile        string
	HomeCategories []HomeCategory
}

// HomeCategory is a category previewed on the home page
type HomeCategory struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// fileConfig mirrors Config as it appears in a YAML config file
type fileConfig struct {
	ManifestSource string `yaml:"manifest_source"`
	ImageBase      string `yaml:"image_base"`
	PublicDir      string `yaml:"public_dir"`
	ViewsDir       string `yaml:"views_dir"`
	SiteName       string `yaml:"site_name"`
	BucketName     string `yaml:"bucket_name"`
	Port           string `yaml:"port"`
	SessionTTL     string `yaml:"session_ttl"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`

	HomeCategories []HomeCategory `yaml:"home_categories"`
}

// ErrManifestSourceNotSet is returned when the manifest source resolves to an empty value
var ErrManifestSourceNotSet = errors.New("MANIFEST_SOURCE not set")

// ErrInvalidSessionTTL is returned when SESSION_TTL cannot be parsed or is not positive
var ErrInvalidSessionTTL = errors.New("SESSION_TTL must be a positive duration")

// Defaults returns the configuration used when nothing else is set
func Defaults() *Config {
	return &Config{
		ManifestSource: "./public/images.json",
		ImageBase:      "Images",
		PublicDir:      "./public",
		ViewsDir:       "./views",
		SiteName:       "Crafty Peaches",
		Port:           "8080",
		SessionTTL:     30 * time.Minute,
		LogLevel:       "info",
	}
}

// Load loads configuration from the optional CONFIG_FILE and then from
// environment variables, which take precedence over the file.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	setString(&cfg.ManifestSource, "MANIFEST_SOURCE")
	setString(&cfg.ImageBase, "IMAGE_BASE")
	setString(&cfg.PublicDir, "PUBLIC_DIR")
	setString(&cfg.ViewsDir, "VIEWS_DIR")
	setString(&cfg.SiteName, "SITE_NAME")
	setString(&cfg.BucketName, "BUCKET_NAME")
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFile, "LOG_FILE")

	if home := os.Getenv("HOME_CATEGORIES"); home != "" {
		cfg.HomeCategories = ParseHomeCategories(home)
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSessionTTL, err)
		}
		cfg.SessionTTL = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have no usable fallback
func (c *Config) Validate() error {
	if c.ManifestSource == "" {
		return ErrManifestSourceNotSet
	}
	if c.SessionTTL <= 0 {
		return ErrInvalidSessionTTL
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	overlay(&c.ManifestSource, fc.ManifestSource)
	overlay(&c.ImageBase, fc.ImageBase)
	overlay(&c.PublicDir, fc.PublicDir)
	overlay(&c.ViewsDir, fc.ViewsDir)
	overlay(&c.SiteName, fc.SiteName)
	overlay(&c.BucketName, fc.BucketName)
	overlay(&c.Port, fc.Port)
	overlay(&c.LogLevel, fc.LogLevel)
	overlay(&c.LogFile, fc.LogFile)

	if len(fc.HomeCategories) > 0 {
		c.HomeCategories = fc.HomeCategories
	}

	if fc.SessionTTL != "" {
		d, err := time.ParseDuration(fc.SessionTTL)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSessionTTL, err)
		}
		c.SessionTTL = d
	}
	return nil
}

// ParseHomeCategories parses a comma separated list of name[:price] entries
func ParseHomeCategories(s string) []HomeCategory {
	var out []HomeCategory
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, price, _ := strings.Cut(entry, ":")
		out = append(out, HomeCategory{Name: strings.TrimSpace(name), Price: strings.TrimSpace(price)})
	}
	return out
}

func setString(dst *string, env string) {
	overlay(dst, os.Getenv(env))
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Home URL: http://localhost:%s/\n", c.Port)
	fmt.Printf("Manifest: %s\n", c.ManifestSource)
}
