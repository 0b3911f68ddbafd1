package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	app "github.com/rocketscienceinc/tictactoe-lobby/internal"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig(os.Args[1:])
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config. Flags take precedence over the file and the environment.
func initConfig(args []string) *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	flags := pflag.NewFlagSet("tictactoe-lobby", pflag.ContinueOnError)
	path := flags.StringP("config", "c", filepath.Join(baseDir, "config.yml"), "path to the yaml config file")
	addr := flags.StringP("addr", "a", "", "TCP listen address, e.g. :8080")
	logLevel := flags.StringP("log-level", "l", "", "debug, info, warn or error")

	err = flags.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}

	if err != nil {
		panic(fmt.Errorf("failed to parse flags: %w", err))
	}

	conf := config.MustLoad(*path)

	if flags.Changed("addr") {
		conf.TCPAddr = *addr
	}

	if flags.Changed("log-level") {
		conf.LogLevel = *logLevel
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
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
