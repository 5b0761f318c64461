// Package config handles viewer and server configuration.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Catalog CatalogConfig `yaml:"catalog"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds the camera and walking settings handed to clients.
type ViewerConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FOV          float32 `yaml:"fov"` // vertical, degrees
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
	EyeHeight    float32 `yaml:"eye_height"`
	DefaultScene string  `yaml:"default_scene"`
	MinZoom      float32 `yaml:"min_zoom"`
	MaxZoom      float32 `yaml:"max_zoom"`
	WalkSpeed    float32 `yaml:"walk_speed"` // meters per second
}

// CatalogConfig selects the scene catalog.
type CatalogConfig struct {
	Path  string `yaml:"path"` // empty uses the built-in catalog
	Watch bool   `yaml:"watch"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:        1280,
			Height:       720,
			FOV:          75,
			Near:         0.1,
			Far:          1000,
			EyeHeight:    1.6,
			DefaultScene: "caltonHill",
			MinZoom:      1,
			MaxZoom:      4,
			WalkSpeed:    1.2,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	v := c.Viewer
	if v.Width <= 0 || v.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewer: size %dx%d", v.Width, v.Height))
	}
	if v.FOV <= 0 || v.FOV >= 180 {
		errs = append(errs, fmt.Errorf("viewer: fov %v outside (0, 180)", v.FOV))
	}
	if v.Near <= 0 || v.Far <= v.Near {
		errs = append(errs, fmt.Errorf("viewer: clip planes %v..%v", v.Near, v.Far))
	}
	if v.MinZoom <= 0 || v.MaxZoom < v.MinZoom {
		errs = append(errs, fmt.Errorf("viewer: zoom range %v..%v", v.MinZoom, v.MaxZoom))
	}
	if c.Catalog.Watch && c.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog: watch needs a catalog path"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server: empty address"))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}
