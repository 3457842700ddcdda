package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "LISTING_DASHBOARD_CONFIG"
	sourceURLEnv    = "LISTING_DASHBOARD_URL"
	cacheFileEnv    = "LISTING_DASHBOARD_CACHE"
	logLevelEnv     = "LISTING_DASHBOARD_LOG_LEVEL"
	metricsFileEnv  = "LISTING_DASHBOARD_METRICS"
	defaultTimeout  = 15 * time.Second
	defaultUA       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultLanguage = "en-IN,en;q=0.9"
)

// Config holds high-level settings required across the application.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Paths   PathsConfig   `yaml:"paths"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig describes the single page to acquire and how to parse it.
type SourceConfig struct {
	URL            string        `yaml:"url"`
	BaseURL        string        `yaml:"baseUrl"`
	Profile        string        `yaml:"profile"`
	UserAgent      string        `yaml:"userAgent"`
	AcceptLanguage string        `yaml:"acceptLanguage"`
	Timeout        time.Duration `yaml:"timeout"`
}

// PathsConfig lists every artifact the pipeline reads or writes.
// An empty Metrics path disables the metrics textfile.
type PathsConfig struct {
	Cache   string `yaml:"cache"`
	CSV     string `yaml:"csv"`
	HTML    string `yaml:"html"`
	Metrics string `yaml:"metrics"`
}

// OutputConfig tweaks the generated artifacts.
type OutputConfig struct {
	CSVBOM bool   `yaml:"csvBom"`
	Title  string `yaml:"title"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration from path (or the env-provided path) and applies environment overrides.
// A missing or broken file falls back to defaults.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		} else if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
			log.Printf("config: cannot merge %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func readFile(path string) (Config, error) {
	var fileCfg Config
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileCfg, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return fileCfg, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return fileCfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(sourceURLEnv); v != "" {
		c.Source.URL = v
	}

	if v := os.Getenv(cacheFileEnv); v != "" {
		c.Paths.Cache = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(metricsFileEnv); v != "" {
		c.Paths.Metrics = v
	}
}

func defaultConfig() Config {
	return Config{
		Source: SourceConfig{
			URL:            "https://www.amazon.in/s?k=ram+8gb+ddr4",
			BaseURL:        "https://www.amazon.in",
			Profile:        "amazon",
			UserAgent:      defaultUA,
			AcceptLanguage: defaultLanguage,
			Timeout:        defaultTimeout,
		},
		Paths: PathsConfig{
			Cache: "data/input/productpage.html",
			CSV:   "data/output/products.csv",
			HTML:  "data/output/products.html",
		},
		Output: OutputConfig{
			Title: "Product Analytics Dashboard",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
