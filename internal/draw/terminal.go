package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize keeps single writes near a typical MTU so frames stream
// smoothly over SSH.
const maxChunkSize = 1400

// ChunkWriter collects one frame of terminal output and writes it to the
// underlying writer in MTU-sized chunks on Flush.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{bufw: bufio.NewWriterSize(w, 8192)}
}

// MoveCursor appends a cursor position sequence. col and row are 1-based.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends s to the frame.
func (cw *ChunkWriter) WriteString(s string) (int, error) {
	return cw.buf.WriteString(s)
}

// WriteAt writes s starting at the 1-based position (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

var _ io.StringWriter = (*ChunkWriter)(nil)

// Flush writes the buffered frame in chunks and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		if err := cw.bufw.Flush(); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the terminal attached to stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves the cursor home.
func ClearScreen(w io.Writer) {
	io.WriteString(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, "\033[?25h")
}
