package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/mrnavastar/mclaunch/api"
	"github.com/mrnavastar/mclaunch/util"
	"gopkg.in/yaml.v3"
)

type Config struct {
	GameDir  string `yaml:"game_dir"`
	JavaPath string `yaml:"java_path"`

	Memory   MemoryConfig   `yaml:"memory"`
	Launcher LauncherConfig `yaml:"launcher"`
	Network  NetworkConfig  `yaml:"network"`
	Assets   AssetsConfig   `yaml:"assets"`
	Crash    CrashConfig    `yaml:"crash"`
	Hosts    api.Hosts      `yaml:"hosts"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type MemoryConfig struct {
	Min string `yaml:"min"`
	Max string `yaml:"max"`
}

// LauncherConfig is what the game sees as ${launcher_name} and ${launcher_version}.
type LauncherConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type NetworkConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

type AssetsConfig struct {
	Concurrency int `yaml:"concurrency"`
}

type CrashConfig struct {
	FreshnessWindow string `yaml:"freshness_window"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

func DefaultConfig() *Config {
	return &Config{
		GameDir: DefaultGameDir(),
		Memory: MemoryConfig{
			Min: "1G",
			Max: "2G",
		},
		Launcher: LauncherConfig{
			Name:    "mclaunch",
			Version: "0.1.0",
		},
		Network: NetworkConfig{
			Timeout:   "60s",
			UserAgent: "mclaunch/0.1.0",
		},
		Assets: AssetsConfig{
			Concurrency: 50,
		},
		Crash: CrashConfig{
			FreshnessWindow: "300s",
		},
		Hosts: api.DefaultHosts(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultGameDir is the conventional per-OS game root.
func DefaultGameDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ".minecraft")
		}
		return filepath.Join(home, "AppData", "Roaming", ".minecraft")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(home, ".minecraft")
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "mclaunch.yaml"
	}
	return filepath.Join(dir, "mclaunch", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: config %s: %w", util.ErrParse, path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("MCLAUNCH_GAME_DIR"); dir != "" {
		c.GameDir = dir
	}
	if java := os.Getenv("MCLAUNCH_JAVA"); java != "" {
		c.JavaPath = java
	}
	if level := os.Getenv("MCLAUNCH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Network.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

func (c *Config) GetCrashWindow() time.Duration {
	d, err := time.ParseDuration(c.Crash.FreshnessWindow)
	if err != nil {
		return 300 * time.Second
	}
	return d
}

func (c *Config) GetAssetConcurrency() int {
	if c.Assets.Concurrency <= 0 {
		return 50
	}
	return c.Assets.Concurrency
}
