package main

import (
	"fmt"
	"log/slog"
	"os"

	app "github.com/arcadebit/tictactoe-server/internal"
	"github.com/arcadebit/tictactoe-server/internal/config"
)

const defaultConfigPath = "config.json"

// main - is the entry point of the server. It initializes the
// configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		logger.Error("app run failed", "error", err)
		os.Exit(1)
	}
}

// initialize config; the path comes from the first CLI argument.
func initConfig() *config.Config {
	path := defaultConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	conf, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return conf
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
