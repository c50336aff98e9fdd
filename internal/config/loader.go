package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/uf46yr/htop/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".htop.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/htop"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. HTOP_INTERVAL=5s.
	EnvPrefix = "HTOP"
)

// Load reads config from the specified path, applying defaults and
// HTOP_* environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Check the path passed to --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .htop.yaml in current directory
// 3. ~/.config/htop/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads a .env file if present, then the config found via Find.
// With no config file the defaults plus environment overrides are returned.
func LoadOrDefault(explicit string) (*Config, string, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	cfg.Log.File = ExpandTilde(cfg.Log.File)
	return cfg, nil
}

// setDefaults registers every key with viper so environment overrides
// reach keys that the config file does not mention.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("version", d.Version)
	v.SetDefault("interval", d.Interval)
	v.SetDefault("sample_timeout", d.SampleTimeout)
	v.SetDefault("view", d.View)
	v.SetDefault("sort", d.Sort)
	v.SetDefault("plain", d.Plain)

	thresholds := map[string]ThresholdValues{
		"cpu":            d.Thresholds.CPU,
		"memory":         d.Thresholds.Memory,
		"disk":           d.Thresholds.Disk,
		"temperature":    d.Thresholds.Temperature,
		"battery":        d.Thresholds.Battery,
		"process_cpu":    d.Thresholds.ProcessCPU,
		"process_memory": d.Thresholds.ProcessMemory,
	}
	for name, tv := range thresholds {
		v.SetDefault("thresholds."+name+".warning", tv.Warning)
		v.SetDefault("thresholds."+name+".critical", tv.Critical)
	}

	v.SetDefault("layout.min_rows", d.Layout.MinRows)
	v.SetDefault("layout.min_cols", d.Layout.MinCols)
	v.SetDefault("layout.plain_rows", d.Layout.PlainRows)
	v.SetDefault("layout.plain_cols", d.Layout.PlainCols)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}
