package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// FileName is the project configuration file looked up in the project root.
const FileName = "vaultdesk.json"

// EnvPrefix prefixes environment overrides, e.g. VAULTDESK_LOGGING_LEVEL.
const EnvPrefix = "VAULTDESK"

// Config represents the full vaultdesk.json schema.
type Config struct {
	Name       string        `json:"name" mapstructure:"name"`
	Version    string        `json:"version" mapstructure:"version"`
	MarketFile string        `json:"marketFile" mapstructure:"marketFile"`
	DefaultIlk string        `json:"defaultIlk" mapstructure:"defaultIlk"`
	Logging    LoggingConfig `json:"logging" mapstructure:"logging"`
	Session    SessionConfig `json:"session" mapstructure:"session"`
	Display    DisplayConfig `json:"display" mapstructure:"display"`
}

// LoggingConfig controls the log sink.
type LoggingConfig struct {
	Level      string `json:"level" mapstructure:"level"`
	File       string `json:"file" mapstructure:"file"`
	MaxSizeMB  int    `json:"maxSizeMB" mapstructure:"maxSizeMB"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays" mapstructure:"maxAgeDays"`
}

// SessionConfig seeds the simulated wallet and chain.
type SessionConfig struct {
	// Owner is the wallet opening the vault.
	Owner string `json:"owner" mapstructure:"owner"`
	// ProxyAddress is an already deployed proxy. Empty means the wizard
	// starts with the proxy phase.
	ProxyAddress string `json:"proxyAddress" mapstructure:"proxyAddress"`
	// Allowance is the token allowance already granted to the proxy.
	Allowance string `json:"allowance" mapstructure:"allowance"`
	// ChainDelayMs is the simulated time between approval and receipt.
	ChainDelayMs int `json:"chainDelayMs" mapstructure:"chainDelayMs"`
	// FailStages lists failure stages to hit once before succeeding,
	// e.g. "allowanceFailure".
	FailStages   []string `json:"failStages" mapstructure:"failStages"`
	FirstVaultID int      `json:"firstVaultId" mapstructure:"firstVaultId"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	PercentPrecision int  `json:"percentPrecision" mapstructure:"percentPrecision"`
	NoColor          bool `json:"noColor" mapstructure:"noColor"`
}

// Default returns the configuration used when a key is absent.
func Default() Config {
	return Config{
		Name:       "vaultdesk",
		Version:    "1.0.0",
		MarketFile: "markets.json",
		DefaultIlk: "ETH-A",
		Logging: LoggingConfig{
			Level:      "info",
			File:       filepath.Join("logs", "vaultdesk.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Session: SessionConfig{
			Owner:        "0x00000000000000000000000000000000000000b0",
			ChainDelayMs: 1500,
			FirstVaultID: 1,
		},
		Display: DisplayConfig{
			PercentPrecision: 2,
		},
	}
}

// singleton holds the global loaded config and the project root path.
var (
	globalCfg  *Config
	globalRoot string
	globalFile string
	mu         sync.RWMutex
)

// newViper builds a viper instance carrying the defaults and environment
// overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("name", d.Name)
	v.SetDefault("version", d.Version)
	v.SetDefault("marketFile", d.MarketFile)
	v.SetDefault("defaultIlk", d.DefaultIlk)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.maxSizeMB", d.Logging.MaxSizeMB)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)
	v.SetDefault("logging.maxAgeDays", d.Logging.MaxAgeDays)
	v.SetDefault("session.owner", d.Session.Owner)
	v.SetDefault("session.proxyAddress", d.Session.ProxyAddress)
	v.SetDefault("session.allowance", d.Session.Allowance)
	v.SetDefault("session.chainDelayMs", d.Session.ChainDelayMs)
	v.SetDefault("session.failStages", []string{})
	v.SetDefault("session.firstVaultId", d.Session.FirstVaultID)
	v.SetDefault("display.percentPrecision", d.Display.PercentPrecision)
	v.SetDefault("display.noColor", d.Display.NoColor)
	return v
}

// Load reads vaultdesk.json from the given project root directory. It
// caches the result so that subsequent calls to Get() return immediately.
func Load(projectRoot string) (*Config, error) {
	return LoadFile(filepath.Join(projectRoot, FileName))
}

// LoadFile reads the config at path. The directory holding the file
// becomes the project root.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	mu.Lock()
	globalCfg = &cfg
	globalRoot = root
	globalFile = filepath.Join(root, filepath.Base(path))
	mu.Unlock()

	return &cfg, nil
}

// LoadDefaults installs the defaults plus environment overrides without a
// config file, rooted at dir.
func LoadDefaults(dir string) (*Config, error) {
	v := newViper()
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}

	mu.Lock()
	globalCfg = &cfg
	globalRoot = dir
	globalFile = filepath.Join(dir, FileName)
	mu.Unlock()

	return &cfg, nil
}

// Get returns the cached global config. It panics if Load has not been called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()

	if globalCfg == nil {
		panic("config.Get() called before config.Load()")
	}
	return globalCfg
}

// Root returns the project root directory set during Load.
func Root() string {
	mu.RLock()
	defer mu.RUnlock()
	return globalRoot
}

// Save writes the provided config back to the file it was loaded from, or
// to vaultdesk.json in the project root after LoadDefaults.
func Save(cfg *Config) error {
	mu.RLock()
	cfgPath := globalFile
	mu.RUnlock()

	if cfgPath == "" {
		return fmt.Errorf("cannot save: project root not set (call Load first)")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(cfgPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(cfgPath), err)
	}

	mu.Lock()
	globalCfg = cfg
	mu.Unlock()

	return nil
}

// Resolve makes a config-relative path absolute against the project root.
func Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(Root(), path)
}
