// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/Meowchestra/MidiEditor-sub001/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // Embed logger config under [logger] table
	Editor EditorConfig  `toml:"editor"` // Editor-specific settings
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	MagnetEnabled   bool `toml:"magnet"`           // snap gestures to the grid
	GridDivision    int  `toml:"grid_division"`    // grid lines per quarter note
	DefaultVelocity int  `toml:"default_velocity"` // velocity for newly created notes
	DefaultNote     int  `toml:"default_note_len"` // length in ticks for click-created notes
	EdgeMargin      int  `toml:"edge_margin"`      // resize hit-zone width in cells
	MaxUndo         int  `toml:"max_undo"`         // history cap, oldest actions evicted first
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			MagnetEnabled:   true,
			GridDivision:    DefaultGridDivision,
			DefaultVelocity: DefaultVelocity,
			DefaultNote:     DefaultNoteTicks,
			EdgeMargin:      DefaultEdgeMargin,
			MaxUndo:         DefaultMaxUndo,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file.
// It returns the loaded config and an error (nil if file not found or loaded successfully).
func loadFromFile(filePath string, verbose bool) (*Config, error) {
	cfg := &Config{} // Start empty, we'll merge later
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return cfg, nil // File not found is not an error here
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.GridDivision <= 0 {
		c.Editor.GridDivision = defaults.Editor.GridDivision
	}
	if c.Editor.DefaultVelocity <= 0 || c.Editor.DefaultVelocity > 127 {
		c.Editor.DefaultVelocity = defaults.Editor.DefaultVelocity
	}
	if c.Editor.DefaultNote <= 0 {
		c.Editor.DefaultNote = defaults.Editor.DefaultNote
	}
	if c.Editor.EdgeMargin < 0 {
		c.Editor.EdgeMargin = defaults.Editor.EdgeMargin
	}
	if c.Editor.MaxUndo <= 0 {
		c.Editor.MaxUndo = defaults.Editor.MaxUndo
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		// During initial load, avoid logging as logger isn't initialized yet
		verbose := false

		cfg := NewDefaultConfig() // Start with defaults

		// Determine effective config file path
		effectivePath := configFilePath
		if effectivePath == "" { // If flag not set, try default location
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			} else {
				effectivePath = "" // Cannot load default path
			}
		}

		// Load from file if path is determined
		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath, verbose)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				if fileCfg.Logger.LogLevel != "" {
					cfg.Logger = fileCfg.Logger
				}
				if fileCfg.Editor.GridDivision > 0 {
					cfg.Editor.GridDivision = fileCfg.Editor.GridDivision
				}
				if fileCfg.Editor.DefaultVelocity > 0 {
					cfg.Editor.DefaultVelocity = fileCfg.Editor.DefaultVelocity
				}
				if fileCfg.Editor.DefaultNote > 0 {
					cfg.Editor.DefaultNote = fileCfg.Editor.DefaultNote
				}
				if fileCfg.Editor.MaxUndo > 0 {
					cfg.Editor.MaxUndo = fileCfg.Editor.MaxUndo
				}
				cfg.Editor.MagnetEnabled = fileCfg.Editor.MagnetEnabled
				cfg.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
			}
		}

		// Apply flag overrides (if flags were parsed)
		if flags != nil {
			flags.ApplyOverrides(cfg, verbose)
		}

		cfg.validate()

		loadedConfig = cfg // Store globally
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		// This indicates a programming error - LoadConfig should be called in main.
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
