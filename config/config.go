package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/foomo/editor-prevnext/render"
)

const EnvPrefix = "EDITORNAV"

type Config struct {
	Log      Log            `mapstructure:"log"`
	Store    Store          `mapstructure:"store"`
	Resolver Resolver       `mapstructure:"resolver"`
	Render   render.Options `mapstructure:"render"`
	Admin    Admin          `mapstructure:"admin"`
	MCP      MCP            `mapstructure:"mcp"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type Store struct {
	Driver      string `mapstructure:"driver"` // sqlite, mysql or postgres
	DSN         string `mapstructure:"dsn"`
	TablePrefix string `mapstructure:"tablePrefix"`
}

type Resolver struct {
	// MaxParentDepth is the longest parent chain followed. Longer chains keep
	// the original id.
	MaxParentDepth int    `mapstructure:"maxParentDepth"`
	Status         string `mapstructure:"status"`
}

type Admin struct {
	Addr     string `mapstructure:"addr"`
	BasePath string `mapstructure:"basePath"`
	// Upstream is the host admin the reverse proxy forwards to.
	Upstream      string   `mapstructure:"upstream"`
	Container     string   `mapstructure:"container"`
	Types         []string `mapstructure:"types"`
	ExcludedTypes []string `mapstructure:"excludedTypes"`
}

type MCP struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func setDefaults(v *viper.Viper) {
	renderDefaults := render.DefaultOptions()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "file:editornav.db")
	v.SetDefault("store.tablePrefix", "wp_")
	v.SetDefault("resolver.maxParentDepth", 8)
	v.SetDefault("resolver.status", "publish")
	v.SetDefault("render.editPath", renderDefaults.EditPath)
	v.SetDefault("render.containerId", renderDefaults.ContainerID)
	v.SetDefault("render.containerClass", renderDefaults.ContainerClass)
	v.SetDefault("render.buttonClass", renderDefaults.ButtonClass)
	v.SetDefault("render.nextLabel", renderDefaults.NextLabel)
	v.SetDefault("render.previousLabel", renderDefaults.PreviousLabel)
	v.SetDefault("admin.addr", ":8080")
	v.SetDefault("admin.basePath", "/editor")
	v.SetDefault("admin.upstream", "")
	v.SetDefault("admin.container", "#wpbody-content .wrap h2")
	v.SetDefault("admin.types", []string{})
	v.SetDefault("admin.excludedTypes", []string{"attachment", "revision", "nav_menu_item"})
	v.SetDefault("mcp.enabled", true)
	v.SetDefault("mcp.endpoint", "/mcp")
}

// Load reads defaults, the optional .env file, the config file and
// EDITORNAV_* environment variables, in increasing precedence. Without an
// explicit cfgFile a missing ./config.yaml is not an error.
func Load(cfgFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &cfg, nil
}
