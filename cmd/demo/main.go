package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/demo"
	"github.com/tomz197/rigid2d/internal/loop"
)

func main() {
	// Raw mode owns the terminal, so logs go to stderr and stay quiet unless
	// asked for.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "rigid2d",
		ReportTimestamp: true,
		Level:           log.WarnLevel,
	})
	if lvl := config.GetEnv(config.EnvLogLevel, ""); lvl != "" {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			logger.Fatal("invalid log level", "value", lvl, "err", err)
		}
		logger.SetLevel(level)
	}

	name := config.GetEnv(config.EnvDemo, demo.Registry[0].Name)
	index, ok := demo.Lookup(name)
	if !ok {
		logger.Fatal("unknown demo", "name", name)
	}
	seed := config.GetEnvInt64(config.EnvSeed, time.Now().UnixNano())

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}
	restore := func() { _ = term.Restore(fd, oldState) }

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Logger: logger,
		Demo:   index,
		Seed:   uint64(seed),
	})
	restore()
	if err != nil {
		logger.Error("demo error", "err", err)
		os.Exit(1)
	}
}
