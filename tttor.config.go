package tttor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration. It is built once at startup and
// passed to NewServiceFromConfig; the expansion engine itself needs none of it.
type Config struct {
	Store       StoreConfig `yaml:"store"`
	BackupDir   string      `yaml:"backup_dir"`
	MacroPrefix string      `yaml:"macro_prefix"`
}

// StoreConfig selects a registered store driver and its connection string.
type StoreConfig struct {
	Driver string `yaml:"driver" hcl:"driver,optional"`
	DSN    string `yaml:"dsn" hcl:"dsn,optional"`
}

// hclConfig mirrors Config for HCL files, where the store block is optional.
type hclConfig struct {
	Store       *StoreConfig `hcl:"store,block"`
	BackupDir   string       `hcl:"backup_dir,optional"`
	MacroPrefix string       `hcl:"macro_prefix,optional"`
}

// DefaultConfig returns a configuration with defaults applied.
func DefaultConfig() *Config {
	return &Config{MacroPrefix: DefaultMacroPrefix}
}

// LoadConfig reads a YAML (.yaml, .yml) or HCL (.hcl) config file and overlays
// the environment. The result is not validated.
func LoadConfig(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigFileError(ErrMsgConfigRead, path, err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ConfigExtYAML, ConfigExtYML:
		if err := yaml.Unmarshal(src, cfg); err != nil {
			return nil, NewConfigFileError(ErrMsgConfigDecode, path, err)
		}
	case ConfigExtHCL:
		var hc hclConfig
		if err := hclsimple.Decode(path, src, nil, &hc); err != nil {
			return nil, NewConfigFileError(ErrMsgConfigDecode, path, err)
		}
		if hc.Store != nil {
			cfg.Store = *hc.Store
		}
		cfg.BackupDir = hc.BackupDir
		if hc.MacroPrefix != "" {
			cfg.MacroPrefix = hc.MacroPrefix
		}
	default:
		return nil, NewConfigFileError(ErrMsgConfigFormat, path, nil)
	}

	if cfg.MacroPrefix == "" {
		cfg.MacroPrefix = DefaultMacroPrefix
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadConfigFromEnv builds a configuration from defaults and the environment only.
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields with any set TTTOR_* environment variables.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvStoreDriver); ok && v != "" {
		c.Store.Driver = v
	}
	if v, ok := os.LookupEnv(EnvStoreDSN); ok && v != "" {
		c.Store.DSN = v
	}
	if v, ok := os.LookupEnv(EnvBackupDir); ok && v != "" {
		c.BackupDir = v
	}
	if v, ok := os.LookupEnv(EnvMacroPrefix); ok && v != "" {
		c.MacroPrefix = v
	}
}

// Validate checks that the configuration can be used to build a Service.
func (c *Config) Validate() error {
	if c.Store.Driver == "" {
		return NewConfigError(ErrMsgConfigNoDriver, "store.driver")
	}
	if !IsStoreDriverRegistered(c.Store.Driver) {
		return NewConfigError(ErrMsgConfigUnknownStore+": "+c.Store.Driver, "store.driver")
	}
	if c.BackupDir == "" {
		return NewConfigError(ErrMsgConfigNoBackupDir, "backup_dir")
	}
	if err := checkBackupDir(c.BackupDir); err != nil {
		return NewConfigError(ErrMsgConfigBackupDir+": "+c.BackupDir, "backup_dir")
	}
	if c.MacroPrefix == "" {
		return NewConfigError(ErrMsgConfigEmptyPrefix, "macro_prefix")
	}
	return nil
}
