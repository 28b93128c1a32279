package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything Autiplay reads from config.toml.
type Config struct {
	Profile  string
	Theme    string
	DBPath   string
	SoundDir string
	LogPath  string
	LogLevel string
	Player   []string // explicit player command; the sound file is appended
	SSH      SSHConfig

	// SourcePath is the resolved config file location, whether or not it exists.
	SourcePath string
}

// SSHConfig configures `autiplay serve`.
type SSHConfig struct {
	Host        string
	Port        int
	HostKeyPath string
	IdleTimeout time.Duration
	MaxSessions int // zero disables the limit
}

const (
	defaultConfigPath  = "~/.config/autiplay/config.toml"
	defaultProfile     = "local"
	defaultTheme       = ThemeLight
	defaultDBPath      = "~/.local/share/autiplay/autiplay.db"
	defaultSoundDir    = "~/.local/share/autiplay/sounds"
	defaultLogPath     = "~/.local/state/autiplay/autiplay.log"
	defaultLogLevel    = "info"
	defaultSSHHost     = "127.0.0.1"
	defaultSSHPort     = 23234
	defaultHostKeyPath = "~/.local/share/autiplay/host_ed25519"
	defaultIdleTimeout = 10 * time.Minute
	defaultMaxSessions = 8
)

// Theme names accepted by the theme key.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type rawConfig struct {
	Profile  string   `toml:"profile"`
	Theme    string   `toml:"theme"`
	DBPath   string   `toml:"db_path"`
	SoundDir string   `toml:"sound_dir"`
	LogPath  string   `toml:"log_path"`
	LogLevel string   `toml:"log_level"`
	Player   []string `toml:"player"`
	SSH      struct {
		Host        string `toml:"host"`
		Port        int    `toml:"port"`
		HostKeyPath string `toml:"host_key_path"`
		IdleTimeout string `toml:"idle_timeout"`
		MaxSessions *int   `toml:"max_sessions"`
	} `toml:"ssh"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Profile:  defaultProfile,
		Theme:    defaultTheme,
		DBPath:   mustExpand(defaultDBPath),
		SoundDir: mustExpand(defaultSoundDir),
		LogPath:  mustExpand(defaultLogPath),
		LogLevel: defaultLogLevel,
		SSH: SSHConfig{
			Host:        defaultSSHHost,
			Port:        defaultSSHPort,
			HostKeyPath: mustExpand(defaultHostKeyPath),
			IdleTimeout: defaultIdleTimeout,
			MaxSessions: defaultMaxSessions,
		},
	}
}

// Load locates and parses the Autiplay config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.SourcePath = resolved

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if profile := strings.TrimSpace(raw.Profile); profile != "" {
		cfg.Profile = profile
	}
	if theme := strings.ToLower(strings.TrimSpace(raw.Theme)); theme != "" {
		if theme != ThemeLight && theme != ThemeDark {
			return Config{}, fmt.Errorf("parse config: theme must be %q or %q, got %q", ThemeLight, ThemeDark, raw.Theme)
		}
		cfg.Theme = theme
	}
	cfg.DBPath = pathOrDefault(raw.DBPath, cfg.DBPath)
	cfg.SoundDir = pathOrDefault(raw.SoundDir, cfg.SoundDir)
	cfg.LogPath = pathOrDefault(raw.LogPath, cfg.LogPath)
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}
	cfg.Player = trimArgs(raw.Player)

	if host := strings.TrimSpace(raw.SSH.Host); host != "" {
		cfg.SSH.Host = host
	}
	if raw.SSH.Port != 0 {
		if raw.SSH.Port < 1 || raw.SSH.Port > 65535 {
			return Config{}, fmt.Errorf("parse config: ssh.port must be between 1 and 65535")
		}
		cfg.SSH.Port = raw.SSH.Port
	}
	cfg.SSH.HostKeyPath = pathOrDefault(raw.SSH.HostKeyPath, cfg.SSH.HostKeyPath)
	if idle := strings.TrimSpace(raw.SSH.IdleTimeout); idle != "" {
		d, err := time.ParseDuration(idle)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: ssh.idle_timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse config: ssh.idle_timeout must be greater than 0")
		}
		cfg.SSH.IdleTimeout = d
	}
	if raw.SSH.MaxSessions != nil {
		if *raw.SSH.MaxSessions < 0 {
			return Config{}, fmt.Errorf("parse config: ssh.max_sessions must not be negative")
		}
		cfg.SSH.MaxSessions = *raw.SSH.MaxSessions
	}

	return cfg, nil
}

// Dark reports whether sessions start with the dark theme.
func (c Config) Dark() bool {
	return c.Theme == ThemeDark
}

// SoundPath returns the file played for the named ambient sound.
func (c Config) SoundPath(name string) string {
	dir := c.SoundDir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultSoundDir)
	}
	return filepath.Join(dir, name+".mp3")
}

func pathOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return mustExpand(value)
}

func trimArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if arg = strings.TrimSpace(arg); arg != "" {
			out = append(out, arg)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
