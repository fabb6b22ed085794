package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/introvert"
	rosterFile = "accounts.toml"

	// EnvPrefix namespaces every environment override, e.g.
	// INTROVERT_SWARM_JOIN_DELAY.
	EnvPrefix = "INTROVERT"
	// DestinationEnv names the account everybody else visits.
	DestinationEnv = "INTROVERT_ISLAND"
	// AccountEnvPrefix marks environment variables holding one account name
	// each.
	AccountEnvPrefix = "INTROVERT_ACCOUNT"

	DefaultHost      = "mc.hypixel.net"
	DefaultJoinDelay = 5 * time.Second
)

type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Swarm  SwarmConfig  `mapstructure:"swarm"`
	Roster RosterConfig `mapstructure:"roster"`
}

type LoggerConfig struct {
	Level       string      `mapstructure:"level"`
	Format      string      `mapstructure:"format"`
	ServiceName string      `mapstructure:"service_name"`
	AddSource   bool        `mapstructure:"add_source"`
	LogFile     string      `mapstructure:"log_file"`
	MaxSize     int         `mapstructure:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups"`
	MaxAge      int         `mapstructure:"max_age"`
	Compress    bool        `mapstructure:"compress"`
	Colors      ColorConfig `mapstructure:"colors"`
}

// ColorConfig maps log levels to terminal colour names.
type ColorConfig struct {
	Debug string `mapstructure:"debug"`
	Info  string `mapstructure:"info"`
	Warn  string `mapstructure:"warn"`
	Error string `mapstructure:"error"`
}

type SwarmConfig struct {
	Destination string        `mapstructure:"destination"`
	JoinDelay   time.Duration `mapstructure:"join_delay"`
	Host        string        `mapstructure:"host"`
}

type RosterConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads the optional config file under $HOME/.config/introvert and
// applies environment overrides on top of the defaults.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	SetDefaults(v, dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("swarm.destination", DestinationEnv); err != nil {
		return Config{}, fmt.Errorf("bind destination env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Swarm.Destination = strings.TrimSpace(cfg.Swarm.Destination)
	if cfg.Roster.Path == "" {
		return Config{}, errors.New("roster path is empty")
	}
	cfg.Roster.Path, err = filepath.Abs(cfg.Roster.Path)
	if err != nil {
		return Config{}, fmt.Errorf("resolve roster path: %w", err)
	}

	return cfg, nil
}

func SetDefaults(v *viper.Viper, dir string) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "introvert")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	v.SetDefault("swarm.destination", "")
	v.SetDefault("swarm.join_delay", DefaultJoinDelay)
	v.SetDefault("swarm.host", DefaultHost)

	v.SetDefault("roster.path", filepath.Join(dir, rosterFile))
}

// EnvAccounts returns the account names declared through
// INTROVERT_ACCOUNT* variables, ordered by variable name.
func EnvAccounts(environ []string) []string {
	type entry struct {
		key   string
		value string
	}

	entries := make([]entry, 0)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, AccountEnvPrefix) {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		entries = append(entries, entry{key: key, value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.value)
	}
	return names
}
