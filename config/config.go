// Package config loads notedeck's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/notedeck/assets"
	"github.com/tsawler/notedeck/branding"
	"github.com/tsawler/notedeck/model"
	"github.com/tsawler/notedeck/ocr"
	"github.com/tsawler/notedeck/storage"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "notedeck.yml"

	defaultAddr        = ":8080"
	defaultMaxUploadMB = 32
	defaultOutputDir   = "out"
	defaultLogLevel    = "info"
)

// Config is the full configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Output   OutputConfig   `yaml:"output"`
	Assets   AssetsConfig   `yaml:"assets"`
	Branding BrandingConfig `yaml:"branding"`
	OCR      OCRConfig      `yaml:"ocr"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

type OutputConfig struct {
	Dir string   `yaml:"dir"`
	S3  S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	PathStyle       bool   `yaml:"path_style"`
}

// AssetsConfig locates logos and slide icons. S3 lookups reuse the client
// settings of output.s3.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
	S3  struct {
		Bucket string `yaml:"bucket"`
		Prefix string `yaml:"prefix"`
	} `yaml:"s3"`
}

// BrandingConfig holds default branding. Colors are hex strings; unset
// colors are randomized.
type BrandingConfig struct {
	BrandText  string  `yaml:"brand_text"`
	Logo       string  `yaml:"logo"`
	Primary    string  `yaml:"primary"`
	Accent     string  `yaml:"accent"`
	Background string  `yaml:"background"`
	Seed       *uint64 `yaml:"seed"`
}

type OCRConfig struct {
	Languages []string `yaml:"languages"`
}

type LogConfig struct {
	Level string `yaml:"level"` // info | debug
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        defaultAddr,
			MaxUploadMB: defaultMaxUploadMB,
		},
		Output: OutputConfig{Dir: defaultOutputDir},
		Log:    LogConfig{Level: defaultLogLevel},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := storage.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("NOTEDECK_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if dir := os.Getenv("NOTEDECK_OUTPUT_DIR"); dir != "" {
		c.Output.Dir = dir
	}
	if bucket := os.Getenv("NOTEDECK_S3_BUCKET"); bucket != "" {
		c.Output.S3.Bucket = bucket
	}
}

// ValidLogLevels lists the accepted log.level values.
var ValidLogLevels = []string{"info", "debug"}

// Validate checks field values. Errors name the offending field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Output.Dir == "" && c.Output.S3.Bucket == "" {
		return errors.New("output.dir or output.s3.bucket must be set")
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Log.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log.level: %s (valid: %v)", c.Log.Level, ValidLogLevels)
	}

	if _, err := c.BrandingOptions(); err != nil {
		return err
	}
	return nil
}

// BrandingOptions converts the branding section.
func (c *Config) BrandingOptions() (branding.Options, error) {
	opts := branding.Options{
		Logo:      c.Branding.Logo,
		BrandText: c.Branding.BrandText,
	}
	for _, f := range []struct {
		field string
		hex   string
		dst   **model.RGB
	}{
		{"branding.primary", c.Branding.Primary, &opts.Primary},
		{"branding.accent", c.Branding.Accent, &opts.Accent},
		{"branding.background", c.Branding.Background, &opts.Background},
	} {
		if f.hex == "" {
			continue
		}
		rgb, err := model.ParseHex(f.hex)
		if err != nil {
			return branding.Options{}, fmt.Errorf("%s: %w", f.field, err)
		}
		*f.dst = &rgb
	}
	return opts, nil
}

// S3Options converts output.s3.
func (c *Config) S3Options() storage.S3Options {
	s := c.Output.S3
	return storage.S3Options{
		Bucket:          s.Bucket,
		Region:          s.Region,
		Endpoint:        s.Endpoint,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
		Prefix:          s.Prefix,
		PathStyle:       s.PathStyle,
	}
}

// Store returns the output sink: S3 when a bucket is configured, the local
// output directory otherwise.
func (c *Config) Store() (storage.Store, error) {
	if c.Output.S3.Bucket != "" {
		return storage.NewS3Store(c.S3Options())
	}
	return storage.NewLocalStore(c.Output.Dir), nil
}

// Resolver returns the asset resolver: the assets directory, followed by
// the assets bucket when one is configured.
func (c *Config) Resolver() assets.Resolver {
	chain := assets.Chain{assets.DirResolver{Root: c.Assets.Dir}}
	if c.Assets.S3.Bucket != "" {
		chain = append(chain, assets.S3Resolver{
			Client: storage.NewS3Client(c.S3Options()),
			Bucket: c.Assets.S3.Bucket,
			Prefix: c.Assets.S3.Prefix,
		})
	}
	return chain
}

// OCROptions converts the ocr section.
func (c *Config) OCROptions() ocr.Options {
	return ocr.Options{Languages: c.OCR.Languages}
}

// Debug reports whether debug logging is configured.
func (c *Config) Debug() bool {
	return c.Log.Level == "debug"
}
