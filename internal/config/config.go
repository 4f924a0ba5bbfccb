package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	appName    = "passgrip"
	envPrefix  = "PASSGRIP"
	configName = "config.toml"
)

// Config keys, shared by the TOML file, PASSGRIP_* variables and flags
const (
	KeyStoreDir            = "store_dir"
	KeyCodec               = "codec"
	KeyPollInterval        = "poll_interval"
	KeyWatchDebounce       = "watch_debounce"
	KeyClipboardMode       = "clipboard"
	KeyClipboardClearAfter = "clipboard_clear_after"
	KeyLogFile             = "log_file"
	KeyLogLevel            = "log_level"
)

// Accepted values
const (
	CodecPlain      = "plain"
	CodecSealed     = "sealed"
	ClipboardSystem = "system"
	ClipboardOSC52  = "osc52"
)

// Config represents the application configuration
type Config struct {
	StoreDir            string        `mapstructure:"store_dir"`
	Codec               string        `mapstructure:"codec"`
	PollInterval        time.Duration `mapstructure:"poll_interval"`
	WatchDebounce       time.Duration `mapstructure:"watch_debounce"`
	ClipboardMode       string        `mapstructure:"clipboard"`
	ClipboardClearAfter time.Duration `mapstructure:"clipboard_clear_after"`
	LogFile             string        `mapstructure:"log_file"`
	LogLevel            string        `mapstructure:"log_level"`
}

// fileConfig is the on-disk TOML layout; durations are written as strings
type fileConfig struct {
	StoreDir            string `toml:"store_dir"`
	Codec               string `toml:"codec"`
	PollInterval        string `toml:"poll_interval"`
	WatchDebounce       string `toml:"watch_debounce"`
	ClipboardMode       string `toml:"clipboard"`
	ClipboardClearAfter string `toml:"clipboard_clear_after"`
	LogFile             string `toml:"log_file"`
	LogLevel            string `toml:"log_level"`
}

// Flags maps flag names to config keys
var Flags = map[string]string{
	"store":         KeyStoreDir,
	"codec":         KeyCodec,
	"poll-interval": KeyPollInterval,
	"clipboard":     KeyClipboardMode,
	"clear-after":   KeyClipboardClearAfter,
	"log-file":      KeyLogFile,
	"log-level":     KeyLogLevel,
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		StoreDir:            DefaultStoreDir(),
		Codec:               CodecPlain,
		PollInterval:        100 * time.Millisecond,
		WatchDebounce:       150 * time.Millisecond,
		ClipboardMode:       ClipboardSystem,
		ClipboardClearAfter: 45 * time.Second,
		LogFile:             DefaultLogFile(),
		LogLevel:            "info",
	}
}

// DefaultStoreDir honours PASSWORD_STORE_DIR and falls back to ~/.password-store
func DefaultStoreDir() string {
	if dir := os.Getenv("PASSWORD_STORE_DIR"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".password-store")
}

// DefaultPath returns $XDG_CONFIG_HOME/passgrip/config.toml
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, appName, configName)
}

// DefaultLogFile returns $XDG_STATE_HOME/passgrip/passgrip.log, or a file
// in the user cache directory when XDG_STATE_HOME is unset
func DefaultLogFile() string {
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, appName, appName+".log")
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, appName, appName+".log")
}

// Load layers defaults, the TOML file, PASSGRIP_* variables and flags, in
// increasing precedence. An empty path means DefaultPath; a missing
// default file is not an error, a missing explicit file is.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v, flags)
}

// FromEnv is Load without the config file layer
func FromEnv(flags *pflag.FlagSet) (*Config, error) {
	return decode(newViper(), flags)
}

func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault(KeyStoreDir, def.StoreDir)
	v.SetDefault(KeyCodec, def.Codec)
	v.SetDefault(KeyPollInterval, def.PollInterval)
	v.SetDefault(KeyWatchDebounce, def.WatchDebounce)
	v.SetDefault(KeyClipboardMode, def.ClipboardMode)
	v.SetDefault(KeyClipboardClearAfter, def.ClipboardClearAfter)
	v.SetDefault(KeyLogFile, def.LogFile)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	return v
}

func decode(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Only flags the user actually set override the layers above
	if flags != nil {
		for name, key := range Flags {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.StoreDir = expandHome(cfg.StoreDir)
	cfg.LogFile = expandHome(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the application cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.StoreDir == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", KeyStoreDir))
	}
	switch c.Codec {
	case CodecPlain, CodecSealed:
	default:
		errs = append(errs, fmt.Errorf("unknown %s %q (want %s or %s)", KeyCodec, c.Codec, CodecPlain, CodecSealed))
	}
	switch c.ClipboardMode {
	case ClipboardSystem, ClipboardOSC52:
	default:
		errs = append(errs, fmt.Errorf("unknown %s mode %q (want %s or %s)", KeyClipboardMode, c.ClipboardMode, ClipboardSystem, ClipboardOSC52))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyPollInterval))
	}
	if c.WatchDebounce < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyWatchDebounce))
	}
	if c.ClipboardClearAfter < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyClipboardClearAfter))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s: %w", KeyLogLevel, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Save writes cfg as TOML to path
func Save(path string, cfg *Config) error {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(fileConfig{
		StoreDir:            cfg.StoreDir,
		Codec:               cfg.Codec,
		PollInterval:        cfg.PollInterval.String(),
		WatchDebounce:       cfg.WatchDebounce.String(),
		ClipboardMode:       cfg.ClipboardMode,
		ClipboardClearAfter: cfg.ClipboardClearAfter.String(),
		LogFile:             cfg.LogFile,
		LogLevel:            cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
