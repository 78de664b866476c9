package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"laserpuzzle/internal/game"
	"laserpuzzle/internal/injector"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file; missing means defaults")
	scene := flag.String("scene", "", "scene name or path, overriding the config")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		// Detect "go run" by checking if executable is in a temp/go-build directory
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	path := *configPath
	if _, err := os.Stat(path); err != nil {
		path = ""
	}

	app, cleanup, err := injector.InitializeApp(injector.ConfigPath(path), injector.SceneOverride(*scene), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "laserpuzzle: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	app.Logger.Info("starting", zap.String("scene", app.Config.Scene.Path))
	game.New(app).Run()
}
