// Command lifttrack-mcp serves the workout data over MCP on stdio.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/lifttrack/internal/config"
	ltmcp "github.com/claude/lifttrack/internal/mcp"
	"github.com/claude/lifttrack/internal/planner"
	"github.com/claude/lifttrack/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	dbPath := flag.String("db", "", "database path (overrides config)")
	flag.Parse()

	// Stdout carries the MCP protocol; logs must go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	pl := planner.New(db, log)
	srv := ltmcp.New(db, pl, Version, log)

	log.Info("LiftTrack MCP server starting", "version", Version, "db", cfg.Database.Path)
	if err := server.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
