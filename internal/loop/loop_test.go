package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/rigid2d/internal/demo"
	"github.com/tomz197/rigid2d/internal/input"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func TestStepSwitchesDemo(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(&buf, Options{TermSizeFunc: fixedSize(60, 20)})
	defer s.release()

	tests := []struct {
		number int
		want   string
	}{
		{-1, "nbodies"},
		{2, "damping"},
		{9, "damping"},
		{0, "damping"},
		{4, "breakout"},
	}
	for _, tt := range tests {
		if !s.step(input.Input{Number: tt.number}, 0.01) {
			t.Fatal("step stopped without quit")
		}
		if got := s.current.Name(); got != tt.want {
			t.Errorf("after key %d demo = %q, want %q", tt.number, got, tt.want)
		}
	}
}

func TestStepQuit(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(&buf, Options{TermSizeFunc: fixedSize(60, 20)})
	defer s.release()

	if s.step(input.Input{Quit: true, Number: -1}, 0.01) {
		t.Error("step kept running after quit")
	}
}

func TestDrawWritesStatusLine(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(&buf, Options{TermSizeFunc: fixedSize(80, 20), Demo: 2})
	defer s.release()

	if err := s.draw(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[20;1H[3] bounce") {
		t.Errorf("status line missing from output")
	}
	if !strings.Contains(out, "▀") && !strings.Contains(out, "▄") {
		t.Error("no bodies rendered")
	}
	if s.canvas.TerminalHeight() != 19 {
		t.Errorf("canvas rows = %d, want 19", s.canvas.TerminalHeight())
	}
}

func TestDrawFollowsResize(t *testing.T) {
	var buf bytes.Buffer
	w, h := 40, 10
	s := newSession(&buf, Options{TermSizeFunc: func() (int, int, error) { return w, h, nil }})
	defer s.release()

	w, h = 100, 30
	if err := s.draw(); err != nil {
		t.Fatal(err)
	}
	if s.canvas.TerminalWidth() != 100 || s.canvas.TerminalHeight() != 29 {
		t.Errorf("canvas = %dx%d, want 100x29", s.canvas.TerminalWidth(), s.canvas.TerminalHeight())
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), bufio.NewReader(strings.NewReader("")), &buf,
			Options{TermSizeFunc: fixedSize(40, 12), Demo: len(demo.Registry) - 1})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after input ended")
	}
	if !strings.HasSuffix(buf.String(), "\033[?25h") {
		t.Error("cursor not restored")
	}
}

func TestRunStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()

	var buf bytes.Buffer
	if err := Run(ctx, bufio.NewReader(pr), &buf, Options{TermSizeFunc: fixedSize(40, 12)}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
