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

// Config captures the fields gantry reads from its config file.
type Config struct {
	// APIBind is the farmd API address, host:port or a full URL. Empty
	// means the file did not set one; the caller discovers farmd or falls
	// back to DefaultAPIBind.
	APIBind string
	// Printer is the preferred printer id. Empty means the first printer
	// farmd lists.
	Printer string
	// PollSeconds is the status poll interval.
	PollSeconds int
	// Stream enables the websocket status feed alongside polling.
	Stream bool
}

const (
	defaultConfigPath  = "~/.config/gantry/config.toml"
	defaultPollSeconds = 2
)

// DefaultAPIBind is where farmd listens when nothing else is configured or
// discovered.
const DefaultAPIBind = "127.0.0.1:7465"

// Load locates and parses the gantry config, falling back to defaults when
// missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{PollSeconds: defaultPollSeconds, Stream: true}

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

	var raw struct {
		APIBind     string `toml:"api_bind"`
		Printer     string `toml:"printer"`
		PollSeconds int    `toml:"poll_seconds"`
		Stream      *bool  `toml:"stream"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBind = strings.TrimSpace(raw.APIBind)
	cfg.Printer = strings.TrimSpace(raw.Printer)

	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if raw.Stream != nil {
		cfg.Stream = *raw.Stream
	}

	return cfg, nil
}

// PollInterval returns the poll interval as a duration, never below one
// second.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds < 1 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
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
