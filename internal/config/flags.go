package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagAddr    = flag.String("addr", "", "HTTP listen address")
	flagCatalog = flag.String("catalog", "", "Scene catalog file (YAML or TOML)")
	flagWatch   = flag.Bool("watch", false, "Reload the catalog when it changes")
	flagScene   = flag.String("scene", "", "Scene opened by default")
	flagWidth   = flag.Int("width", 0, "Viewport width")
	flagHeight  = flag.Int("height", 0, "Viewport height")
	flagFOV     = flag.Float64("fov", 0, "Vertical field of view in degrees")
	flagSave    = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagCatalog != "" {
		cfg.Catalog.Path = *flagCatalog
	}
	if *flagWatch {
		cfg.Catalog.Watch = true
	}
	if *flagScene != "" {
		cfg.Viewer.DefaultScene = *flagScene
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	if *flagFOV > 0 {
		cfg.Viewer.FOV = float32(*flagFOV)
	}
}
