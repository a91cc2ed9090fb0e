// cmd/midiroll/main.go
package main

import (
	"fmt"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"
	"path/filepath"

	"github.com/Meowchestra/MidiEditor-sub001/internal/app"
	"github.com/Meowchestra/MidiEditor-sub001/internal/config"
	"github.com/Meowchestra/MidiEditor-sub001/internal/logger"
)

func main() {
	// --- Flag Parsing ---
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		os.Exit(0)
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	logWriter := os.Stderr
	logFilePath := cfg.Logger.LogFilePath
	if logFilePath == "" {
		cacheDir, err := os.UserCacheDir()
		if err == nil {
			logFilePath = filepath.Join(cacheDir, config.ConfigDirName, config.DefaultLogFileName)
		}
	}
	if logFilePath != "" && logFilePath != "-" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err == nil {
			f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
			if err != nil {
				stlog.Fatalf("Failed to open log file '%s': %v", logFilePath, err)
			}
			defer f.Close()
			logWriter = f
		}
	}
	logger.Init(cfg.Logger.Level(), logWriter)

	logger.Infof("Starting %s %s", config.AppName, config.Version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Create and Run App ---
	rollApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := rollApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
	os.Exit(0)
}
