package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config describes the top-level application configuration loaded from YAML and ENV.
type Config struct {
	Version string        `mapstructure:"version"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	Project ProjectConfig `mapstructure:"project"`
	Maven   MavenConfig   `mapstructure:"maven"`
	Git     GitConfig     `mapstructure:"git"`
	Tools   ToolsConfig   `mapstructure:"tools"`
}

// LoggingConfig controls logger behaviour.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// ServerConfig describes daemon settings.
type ServerConfig struct {
	Addr           string `mapstructure:"addr"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MCPEnabled     bool   `mapstructure:"mcp_enabled"`
	Transport      string `mapstructure:"transport"` // connect or http
}

// ProjectConfig points at the target project the tools operate on.
type ProjectConfig struct {
	Dir            string `mapstructure:"dir"`             // base directory; tool dir args resolve under it
	CoverageReport string `mapstructure:"coverage_report"` // artifact path relative to a project dir
}

// MavenConfig controls the external build tool invocation.
type MavenConfig struct {
	Command        string   `mapstructure:"command"`
	Args           []string `mapstructure:"args"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
}

// GitConfig controls version-control tool invocations.
type GitConfig struct {
	Command   string `mapstructure:"command"`
	PRCommand string `mapstructure:"pr_command"`
	Remote    string `mapstructure:"remote"`
	AllowPush bool   `mapstructure:"allow_push"`
}

// ToolsConfig configures tool behaviour.
type ToolsConfig struct {
	AllowExec          bool     `mapstructure:"allow_exec"`
	AllowGit           bool     `mapstructure:"allow_git"`
	ExecTimeoutSeconds int      `mapstructure:"exec_timeout_seconds"`
	AllowedCommands    []string `mapstructure:"allowed_commands"`
	DeniedCommands     []string `mapstructure:"denied_commands"`
}

// Load reads configuration from the provided path or defaults to configs/config.yaml.
// Environment variables override file values (prefix: SE333_, dots replaced with underscores).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SE333")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && path == "" {
			v.SetConfigName("config.example")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults populates sensible defaults for optional fields.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.addr", "127.0.0.1:6060")
	v.SetDefault("server.metrics_enabled", true)
	v.SetDefault("server.mcp_enabled", true)
	v.SetDefault("server.transport", "connect")

	v.SetDefault("project.dir", ".")
	v.SetDefault("project.coverage_report", "target/site/jacoco/jacoco.xml")

	v.SetDefault("maven.command", "mvn")
	v.SetDefault("maven.args", []string{"-q", "-e", "test"})
	v.SetDefault("maven.timeout_seconds", 600)

	v.SetDefault("git.command", "git")
	v.SetDefault("git.pr_command", "gh")
	v.SetDefault("git.remote", "")
	v.SetDefault("git.allow_push", true)

	v.SetDefault("tools.allow_exec", true)
	v.SetDefault("tools.allow_git", true)
	v.SetDefault("tools.exec_timeout_seconds", 120)
}

// Validate performs basic sanity checks on configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}

	switch strings.ToLower(strings.TrimSpace(c.Server.Transport)) {
	case "", "connect", "http":
	default:
		return fmt.Errorf("server.transport must be one of connect or http, got %q", c.Server.Transport)
	}

	if strings.TrimSpace(c.Project.Dir) == "" {
		return errors.New("project.dir must be set")
	}

	if strings.TrimSpace(c.Project.CoverageReport) == "" {
		return errors.New("project.coverage_report must be set")
	}

	if strings.TrimSpace(c.Maven.Command) == "" {
		return errors.New("maven.command must be set")
	}

	if c.Maven.TimeoutSeconds <= 0 {
		return errors.New("maven.timeout_seconds must be > 0")
	}

	if strings.TrimSpace(c.Git.Command) == "" {
		return errors.New("git.command must be set")
	}

	if strings.TrimSpace(c.Git.PRCommand) == "" {
		return errors.New("git.pr_command must be set")
	}

	if c.Tools.ExecTimeoutSeconds <= 0 {
		return errors.New("tools.exec_timeout_seconds must be > 0")
	}

	return nil
}
