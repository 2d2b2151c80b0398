package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/demo"
	"github.com/tomz197/rigid2d/internal/draw"
	"github.com/tomz197/rigid2d/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "rigid2d-ssh",
		ReportTimestamp: true,
	})
	if lvl := config.GetEnv(config.EnvLogLevel, ""); lvl != "" {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			logger.Fatal("invalid log level", "value", lvl, "err", err)
		}
		logger.SetLevel(level)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	startDemo, ok := demo.Lookup(config.GetEnv(config.EnvDemo, demo.Registry[0].Name))
	if !ok {
		logger.Fatal("unknown demo", "name", config.GetEnv(config.EnvDemo, ""))
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &demoServer{
		ctx:       ctx,
		logger:    logger,
		startDemo: startDemo,
		baseSeed:  uint64(config.GetEnvInt64(config.EnvSeed, time.Now().UnixNano())),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Frames are small and frequent; don't batch them.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "sessions", srv.active.Load())

	// Sessions watch ctx and return on their own.
	cancel()
	srv.wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownGrace)
	defer shutdownCancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// demoServer runs one independent demo per SSH session.
type demoServer struct {
	ctx       context.Context
	logger    *log.Logger
	startDemo int
	baseSeed  uint64
	sessions  atomic.Uint64
	active    atomic.Int64
	wg        sync.WaitGroup
}

func (d *demoServer) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		d.wg.Add(1)
		defer d.wg.Done()
		d.active.Add(1)
		defer d.active.Add(-1)

		id := d.sessions.Add(1)
		logger := d.logger.With("user", sess.User(), "session", id)
		logger.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		size := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				size.update(win.Width, win.Height)
			}
		}()

		// Stop on server shutdown or when the client goes away.
		ctx, cancel := context.WithCancel(d.ctx)
		defer cancel()
		go func() {
			select {
			case <-sess.Context().Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: size.getSize,
			Logger:       logger,
			Demo:         d.startDemo,
			Seed:         d.baseSeed + id,
			IdleTimeout:  config.IdleTimeout,
		})
		if err != nil {
			logger.Error("session error", "err", err)
		}
		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker follows the terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
