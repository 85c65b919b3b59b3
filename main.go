package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"travelbook/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "travelbook",
		Short:         "Flight, hotel and package search API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	load := func() (*config.Config, *log.Logger, error) {
		dotenv := config.LoadDotEnv()
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		logger := newLogger(cfg.LogLevel, verbose)
		if !dotenv {
			logger.Info("no .env file found, using environment variables")
		}
		return cfg, logger, nil
	}

	root.AddCommand(serveCommand(load), airportsCommand(load))
	root.RunE = serveCommand(load).RunE
	return root
}

func newLogger(level string, verbose bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           lvl,
	})
}
