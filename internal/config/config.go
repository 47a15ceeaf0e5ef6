package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile           = ".env"
	defaultPort              = "8080"
	defaultOrigin            = "http://localhost:8080"
	defaultSiteName          = "Finite Field Labs"
	defaultOGImage           = "/assets/og-default.png"
	defaultEnvironment       = "local"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultLogLevel          = "info"
	defaultExportConcurrency = 8
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Environment string
	Dev         bool
	Server      ServerConfig
	Site        SiteConfig
	Analytics   AnalyticsConfig
	Log         LogConfig
	Export      ExportConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	// TemplatesDir, when set in dev mode, is reparsed on each request.
	TemplatesDir string
}

// SiteConfig holds the settings canonical URLs and social cards derive from.
type SiteConfig struct {
	Origin      string
	Name        string
	OGImage     string
	TwitterSite string
}

// AnalyticsConfig carries optional tag identifiers rendered into the layout.
type AnalyticsConfig struct {
	GAMeasurementID string
	GTMContainerID  string
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string
}

// ExportConfig tunes static export.
type ExportConfig struct {
	Concurrency int
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string { return ":" + c.Server.Port }

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// Cloud Run injects PORT; the prefixed key wins when both are set.
	port := stringWithDefault(lookup, "PORT", defaultPort)

	cfg := Config{
		Environment: stringWithDefault(lookup, "LABS_WEB_ENV", defaultEnvironment),
		Dev:         boolWithDefault(lookup, "LABS_WEB_DEV", false),
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, "LABS_WEB_PORT", port),
			ReadTimeout:     durationWithDefault(lookup, "LABS_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "LABS_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "LABS_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "LABS_WEB_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
			TemplatesDir:    strings.TrimSpace(stringWithDefault(lookup, "LABS_WEB_TEMPLATES_DIR", "")),
		},
		Site: SiteConfig{
			Origin:      strings.TrimRight(strings.TrimSpace(stringWithDefault(lookup, "LABS_WEB_ORIGIN", defaultOrigin)), "/"),
			Name:        strings.TrimSpace(stringWithDefault(lookup, "LABS_WEB_SITE_NAME", defaultSiteName)),
			OGImage:     strings.TrimSpace(stringWithDefault(lookup, "LABS_WEB_OG_IMAGE", defaultOGImage)),
			TwitterSite: normalizeHandle(stringWithDefault(lookup, "LABS_WEB_TWITTER_SITE", "")),
		},
		Analytics: AnalyticsConfig{
			GAMeasurementID: strings.TrimSpace(stringWithDefault(lookup, "LABS_WEB_GA_MEASUREMENT_ID", "")),
			GTMContainerID:  strings.TrimSpace(stringWithDefault(lookup, "LABS_WEB_GTM_CONTAINER_ID", "")),
		},
		Log: LogConfig{
			Level: strings.ToLower(strings.TrimSpace(stringWithDefault(lookup, "LABS_WEB_LOG_LEVEL", defaultLogLevel))),
		},
		Export: ExportConfig{
			Concurrency: intWithDefault(lookup, "LABS_WEB_EXPORT_CONCURRENCY", defaultExportConcurrency),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var invalid []string

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		invalid = append(invalid, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		invalid = append(invalid, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		invalid = append(invalid, "Server.WriteTimeout")
	}
	if cfg.Server.IdleTimeout <= 0 {
		invalid = append(invalid, "Server.IdleTimeout")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		invalid = append(invalid, "Server.ShutdownTimeout")
	}
	if u, err := url.Parse(cfg.Site.Origin); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || (u.Path != "" && u.Path != "/") {
		invalid = append(invalid, "Site.Origin")
	}
	if cfg.Site.Name == "" {
		invalid = append(invalid, "Site.Name")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		invalid = append(invalid, "Log.Level")
	}
	if cfg.Export.Concurrency <= 0 {
		invalid = append(invalid, "Export.Concurrency")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func normalizeHandle(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "@") {
		return v
	}
	return "@" + v
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
