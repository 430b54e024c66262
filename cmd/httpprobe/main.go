package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/httpprobe/httpprobe/pkg/server"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: built-in defaults)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	verbose := flag.Bool("verbose", false, "log tool calls")
	flag.Parse()

	if err := run(*configPath, *envFile, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envFile string, verbose bool) error {
	if err := loadDotEnv(envFile); err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = server.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	// Stdout belongs to the MCP transport, so logs go to stderr.
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	srv, err := server.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("serving MCP on stdio", "name", cfg.Name, "version", cfg.Version)

	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// loadDotEnv loads environment variables from the given file. A missing file
// is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
