package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"mazerunner/internal/config"
	"mazerunner/internal/game"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to the JSON config")
	mazePath := flag.String("maze", "", "maze file (overrides the config)")
	flag.Parse()

	// Paths given on the command line are relative to where we were started.
	flag.Visit(func(f *flag.Flag) {
		if abs, err := filepath.Abs(f.Value.String()); err == nil {
			f.Value.Set(abs)
		}
	})

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *mazePath != "" {
		cfg.Maze.Path = *mazePath
	}

	g, err := game.New(cfg, *configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := g.Run(); err != nil {
		log.Fatalf("%v", err)
	}
}
