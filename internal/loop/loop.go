// Package loop runs a demo in a terminal with the Input → Update → Tick → Draw
// cycle.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rigid2d/internal/body"
	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/demo"
	"github.com/tomz197/rigid2d/internal/draw"
	"github.com/tomz197/rigid2d/internal/input"
)

// Options configures a run.
type Options struct {
	// TermSizeFunc reports the terminal size. Defaults to stdout's size.
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	// Demo is the index into demo.Registry shown first.
	Demo int
	Seed uint64
	// IdleTimeout ends the run after this long without input. Zero disables
	// it.
	IdleTimeout time.Duration
}

// Run shows demos until the user quits, the input ends, ctx is done, or the
// idle timeout passes.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	s := newSession(w, opts)
	defer s.release()

	stream := input.StartStream(r)

	draw.HideCursor(w)
	draw.ClearScreen(w)
	defer func() {
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()

	lastTime := time.Now()
	lastInput := lastTime
	for {
		frameStart := time.Now()
		dt := min(frameStart.Sub(lastTime).Seconds(), config.MaxTickSeconds)
		lastTime = frameStart

		if ctx.Err() != nil {
			return nil
		}

		in := input.ReadInput(stream)
		if in.Active {
			lastInput = frameStart
		}
		if opts.IdleTimeout > 0 && frameStart.Sub(lastInput) > opts.IdleTimeout {
			s.logger.Info("idle timeout", "demo", s.current.Name())
			return nil
		}
		if !s.step(in, dt) {
			return nil
		}

		if err := s.draw(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		if elapsed := time.Since(frameStart); elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}
}

// session is the per-terminal state of a run.
type session struct {
	logger   *log.Logger
	sizeFunc draw.TermSizeFunc
	rng      *rand.Rand
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	index    int
	current  demo.Demo
}

func newSession(w io.Writer, opts Options) *session {
	s := &session{
		logger:   opts.Logger,
		sizeFunc: opts.TermSizeFunc,
		rng:      demo.NewRand(opts.Seed),
		cw:       draw.NewChunkWriter(w),
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.sizeFunc == nil {
		s.sizeFunc = draw.DefaultTermSizeFunc
	}

	index := opts.Demo
	if index < 0 || index >= len(demo.Registry) {
		index = 0
	}
	s.load(index)

	width, height := s.termSize()
	s.canvas = draw.NewCanvas(width, height-1, config.ViewWidth, config.ViewHeight)
	return s
}

func (s *session) load(index int) {
	if s.current != nil {
		s.current.Release()
	}
	entry := demo.Registry[index]
	s.index = index
	s.current = entry.New(s.rng, s.logger.With("demo", entry.Name))
	s.logger.Info("demo loaded", "demo", entry.Name, "bodies", s.current.Scene().Len())
}

// step applies one frame of input and advances the scene. It reports false
// once the user quits.
func (s *session) step(in input.Input, dt float64) bool {
	if in.Quit {
		return false
	}
	if n := in.Number; n >= 1 && n <= len(demo.Registry) && n-1 != s.index {
		s.load(n - 1)
	}

	s.current.Update(in, dt)
	s.current.Scene().Tick(dt)
	return true
}

// termSize returns the terminal size, keeping at least one canvas row and
// the status line.
func (s *session) termSize() (int, int) {
	width, height, err := s.sizeFunc()
	if err != nil {
		s.logger.Debug("terminal size unavailable", "err", err)
		return 80, 24
	}
	return max(width, 1), max(height, 2)
}

func (s *session) draw() error {
	width, height := s.termSize()
	if width != s.canvas.TerminalWidth() || height-1 != s.canvas.TerminalHeight() {
		s.canvas.Resize(width, height-1)
	}

	draw.ClearScreen(s.cw)
	s.canvas.Clear()
	sc := s.current.Scene()
	for i := range sc.Len() {
		drawBody(s.canvas, sc.Body(i))
	}
	if err := s.canvas.Render(s.cw); err != nil {
		return err
	}

	status := fmt.Sprintf("[%d] %s  %s  (1-%d switch, q quit)",
		s.index+1, s.current.Name(), s.current.Status(), len(demo.Registry))
	if len(status) > width {
		status = status[:width]
	}
	s.cw.WriteAt(1, height, status)
	return s.cw.Flush()
}

func drawBody(c *draw.Canvas, b *body.Body) {
	c.DrawPolygon(b.Shape(), b.Color(), true)
}

func (s *session) release() {
	s.current.Release()
}
