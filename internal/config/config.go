package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

const envPrefix = "MINES"

type GameConfig struct {
	Size           int  `mapstructure:"size"`
	MineCount      int  `mapstructure:"mine_count"`
	FirstClickSafe bool `mapstructure:"first_click_safe"`
}

func (g GameConfig) Params() mines.GameParams {
	return mines.GameParams{
		Size:           g.Size,
		MineCount:      g.MineCount,
		FirstClickSafe: g.FirstClickSafe,
	}
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

type TicketConfig struct {
	Secret   string        `mapstructure:"secret"`
	Lifetime time.Duration `mapstructure:"lifetime"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type Config struct {
	Mode   string       `mapstructure:"mode"`
	Game   GameConfig   `mapstructure:"game"`
	Server ServerConfig `mapstructure:"server"`
	Ticket TicketConfig `mapstructure:"ticket"`
	Log    LogConfig    `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	def := mines.DefaultParams()

	v.SetDefault("mode", "production")

	v.SetDefault("game.size", def.Size)
	v.SetDefault("game.mine_count", def.MineCount)
	v.SetDefault("game.first_click_safe", def.FirstClickSafe)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.session_ttl", 30*time.Minute)
	v.SetDefault("server.sweep_interval", time.Minute)
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("ticket.secret", "")
	v.SetDefault("ticket.lifetime", 24*time.Hour)

	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Load reads the configuration from, in increasing order of precedence,
// built-in defaults, the file at path (skipped when path is empty),
// MINES_* environment variables and the flags named in bindings. The keys
// of bindings are config keys such as "server.addr", the values are flag
// names in flags.
func Load(path string, flags *pflag.FlagSet, bindings map[string]string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range bindings {
			flag := flags.Lookup(name)
			if flag == nil {
				return nil, fmt.Errorf("no flag %q to bind %s to", name, key)
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	return &config, nil
}

func (c Config) Validate() error {
	if c.Mode != "development" && c.Mode != "production" {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if err := c.Game.Params().Validate(); err != nil {
		return err
	}
	if c.Server.ShutdownTimeout < 0 || c.Server.SessionTTL < 0 ||
		c.Server.SweepInterval < 0 || c.Ticket.Lifetime < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                    c.Mode,
		"game_params":             c.Game.Params().String(),
		"server_addr":             c.Server.Addr,
		"server_shutdown_timeout": c.Server.ShutdownTimeout.String(),
		"server_session_ttl":      c.Server.SessionTTL.String(),
		"server_sweep_interval":   c.Server.SweepInterval.String(),
		"server_allowed_origins":  strings.Join(c.Server.AllowedOrigins, ","),
		"ticket_secret_set":       c.Ticket.Secret != "",
		"ticket_lifetime":         c.Ticket.Lifetime.String(),
		"log_file":                c.Log.File,
	}
}
