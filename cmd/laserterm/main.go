package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"laserpuzzle/internal/control"
	"laserpuzzle/internal/injector"
	"laserpuzzle/internal/termview"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file; missing means defaults")
	scene := flag.String("scene", "", "scene name or path, overriding the config")
	logFile := flag.String("log", "laserterm.log", "log file; the terminal is taken by the view")
	flag.Parse()

	path := *configPath
	if _, err := os.Stat(path); err != nil {
		path = ""
	}

	app, cleanup, err := injector.InitializeApp(
		injector.ConfigPath(path), injector.SceneOverride(*scene), injector.LogFile(*logFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "laserterm: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		app.Logger.Error("open terminal", zap.Error(err))
		fmt.Fprintf(os.Stderr, "laserterm: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		app.Logger.Error("init terminal", zap.Error(err))
		fmt.Fprintf(os.Stderr, "laserterm: %v\n", err)
		return
	}
	defer screen.Fini()

	app.Start()
	view := termview.New(screen, app.World, control.New(app.Puzzle))
	view.Feed = app.Feed

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		if err := app.ServeFeed(ctx); err != nil {
			app.Logger.Warn("status feed stopped", zap.Error(err))
		}
	}()

	app.Logger.Info("terminal view started", zap.String("scene", app.Config.Scene.Path))
	view.Run(ctx)
}
