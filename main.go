package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-home-io/ttlock/server"
	"github.com/go-home-io/ttlock/settings"
	"github.com/go-home-io/ttlock/systems/logger"
	"github.com/go-home-io/ttlock/worker"
	"github.com/jessevdk/go-flags"
)

const (
	// Max time given to the hub API server for a graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flags.ErrHelp == flagsErr.Type {
			os.Exit(0)
		}

		os.Exit(1)
	}

	s, err := settings.Load(options)
	if err != nil {
		logger.NewLoggerProvider(&logger.ConstructLogger{LevelOverride: options.LogLevel}).
			Fatal("Failed to load configuration", err)
		return
	}

	if delay := s.BridgeSettings().DelayedStart; delay > 0 {
		s.SystemLogger().Info("Delaying start", "seconds", strconv.Itoa(delay))
		time.Sleep(time.Duration(delay) * time.Second)
	}

	s.SystemLogger().Info("Starting ttlock bridge")

	srv := server.NewServer(s)
	srv.Start()

	wkr := worker.NewWorker(s)
	wkr.Start()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	s.SystemLogger().Info("Received stop command, exiting")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	srv.Stop(ctx)
	wkr.Stop()
	s.Cron().Stop()
	s.Locks().Unload()
	s.FanOut().Close()
}
