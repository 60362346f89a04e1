package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

// Config captures the fields the dashboard needs.
type Config struct {
	APIBase     string
	SocketURL   string
	Timezone    string
	TickSeconds int
	ExportDir   string
	LogPath     string
}

const (
	defaultConfigPath  = "~/.config/intalksdash/config.toml"
	defaultAPIBase     = "127.0.0.1:8000"
	defaultTickSeconds = 30
	defaultExportDir   = "~/Downloads"
	defaultLogPath     = "~/.local/state/intalksdash/intalksdash.log"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

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
		APIBase     string `toml:"api_base"`
		SocketURL   string `toml:"socket_url"`
		Timezone    string `toml:"timezone"`
		TickSeconds int    `toml:"tick_seconds"`
		ExportDir   string `toml:"export_dir"`
		LogPath     string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.SocketURL); v != "" {
		cfg.SocketURL = v
	}
	if v := strings.TrimSpace(raw.Timezone); v != "" {
		cfg.Timezone = v
	}
	if raw.TickSeconds > 0 {
		cfg.TickSeconds = raw.TickSeconds
	}
	if v := strings.TrimSpace(raw.ExportDir); v != "" {
		cfg.ExportDir = v
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = v
	}

	cfg.SocketURL = resolveSocketURL(cfg.APIBase, cfg.SocketURL)
	cfg.ExportDir = mustExpand(cfg.ExportDir)
	cfg.LogPath = mustExpand(cfg.LogPath)
	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBase:     defaultAPIBase,
		Timezone:    timeutil.DefaultZone,
		TickSeconds: defaultTickSeconds,
		ExportDir:   mustExpand(defaultExportDir),
		LogPath:     mustExpand(defaultLogPath),
	}
}

// resolveSocketURL derives the push endpoint from the API base when the
// config does not name one explicitly.
func resolveSocketURL(apiBase, socketURL string) string {
	if socketURL != "" {
		return socketURL
	}
	host := strings.TrimSpace(apiBase)
	if host == "" {
		host = defaultAPIBase
	}
	if strings.Contains(host, "://") {
		if u, err := url.Parse(host); err == nil && u.Host != "" {
			host = u.Host
		}
	}
	return "ws://" + host + "/socket"
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
