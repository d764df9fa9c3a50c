package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"mazerunner/internal/config"
	"mazerunner/internal/tty"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to the JSON config")
	mazePath := flag.String("maze", "", "maze file (overrides the config)")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// The screen owns the terminal, so logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(*configPath, *mazePath); err != nil {
		fmt.Fprintf(os.Stderr, "mazerunner-tty: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, mazePath string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if mazePath != "" {
		cfg.Maze.Path = mazePath
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	app, err := tty.NewApp(screen, cfg)
	if err != nil {
		return err
	}

	if cfg.Assets.Music != "" {
		music, err := tty.PlayMusic(cfg.Assets.Music, cfg.Assets.MusicVolume)
		if err != nil {
			log.Printf("music disabled: %v", err)
		} else {
			defer music.Close()
			app.Music = music
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Printf("Exited after %d frames", app.Frames())
	return nil
}
