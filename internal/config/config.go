package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ExportDir     string `toml:"export_dir"`
	TextExport    string `toml:"text_export"`
	MessagesJSON  string `toml:"messages_json"`
	EndpointsJSON string `toml:"endpoints_json"`
	OutputPath    string `toml:"output_path"`
	MediaPrefix   string `toml:"media_prefix"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
}

// Path returns the location of the config file under home.
func Path(home string) string {
	return filepath.Join(home, ".config", "skar", "config.toml")
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(Path(home), home)
}

// LoadFrom reads cfgPath over the defaults. A missing file is not an error.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := Defaults(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.ExportDir = expandHome(cfg.ExportDir, home)
	cfg.OutputPath = expandHome(cfg.OutputPath, home)
	cfg.TextExport = cfg.resolve(cfg.TextExport, home)
	cfg.MessagesJSON = cfg.resolve(cfg.MessagesJSON, home)
	cfg.EndpointsJSON = cfg.resolve(cfg.EndpointsJSON, home)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

func Defaults(home string) *Config {
	exportDir := filepath.Join(home, "skype-export")
	return &Config{
		ExportDir:     exportDir,
		TextExport:    "skype_messages.txt",
		MessagesJSON:  "messages.json",
		EndpointsJSON: "endpoints.json",
		OutputPath:    filepath.Join(exportDir, "processed_data.json"),
		MediaPrefix:   "media/",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output_path is empty")
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log_format: %s", c.LogFormat)
	}
	return nil
}

// resolve expands ~ and anchors relative input names at ExportDir.
func (c *Config) resolve(path, home string) string {
	if path == "" {
		return ""
	}
	path = expandHome(path, home)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ExportDir, path)
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
