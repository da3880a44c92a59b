// Package config загружает YAML конфигурацию клиента и сервера.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Config - корневая структура конфигурации приложения
type Config struct {
	Logger LoggerConfig `yaml:"logger"`
	Client ClientConfig `yaml:"client"`
	Server ServerConfig `yaml:"server"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type ClientConfig struct {
	DBPath         string        `yaml:"db_path"`
	ServerURL      string        `yaml:"server_url"`
	WSURL          string        `yaml:"ws_url"` // пусто: выводится из server_url
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RetryInterval  time.Duration `yaml:"retry_interval"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type ServerConfig struct {
	HTTPAddr          string        `yaml:"http_addr"`
	DBPath            string        `yaml:"db_path"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// Default returns a baseline development config.
func Default() Config {
	return Config{
		Logger: LoggerConfig{
			Level: "INFO",
			JSON:  false,
		},
		Client: ClientConfig{
			DBPath:         "usersync-client.db",
			ServerURL:      "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
			RetryInterval:  2 * time.Second,
			ConnectTimeout: 3 * time.Second,
		},
		Server: ServerConfig{
			HTTPAddr:          ":8080",
			DBPath:            "usersync.db",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
	}
}

// Load читает конфиг из YAML файла поверх Default().
// Если файл не найден, возвращается Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("config file not found, using default config", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate проверяет адреса и таймауты
func (c Config) Validate() error {
	var errs []error

	if _, err := ParseLevel(c.Logger.Level); err != nil {
		errs = append(errs, err)
	}

	if err := validateURL("client.server_url", c.Client.ServerURL, "http", "https"); err != nil {
		errs = append(errs, err)
	}
	if c.Client.WSURL != "" {
		if err := validateURL("client.ws_url", c.Client.WSURL, "ws", "wss"); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Client.DBPath == "" {
		errs = append(errs, errors.New("client.db_path is required"))
	}

	for name, d := range map[string]time.Duration{
		"client.request_timeout":     c.Client.RequestTimeout,
		"client.retry_interval":      c.Client.RetryInterval,
		"client.connect_timeout":     c.Client.ConnectTimeout,
		"server.read_header_timeout": c.Server.ReadHeaderTimeout,
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	if c.Server.HTTPAddr == "" {
		errs = append(errs, errors.New("server.http_addr is required"))
	}
	if c.Server.DBPath == "" {
		errs = append(errs, errors.New("server.db_path is required"))
	}

	return errors.Join(errs...)
}

// SignalURL returns WebSocket endpoint of the server
func (c ClientConfig) SignalURL() string {
	if c.WSURL != "" {
		return c.WSURL
	}

	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String()
}

func validateURL(name, raw string, schemes ...string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s must be %s URL, got %q", name, strings.Join(schemes, "/"), raw)
}
