// Package terminal puts the controlling terminal into raw mode, decodes key
// presses and paints full-screen frames.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var log = logrus.WithField("module", "terminal")

// ErrTerminalUnavailable is returned by ReadKey when stdin is not an
// interactive terminal, raw mode could not be entered or the tty hung up.
var ErrTerminalUnavailable = errors.New("terminal unavailable")

const (
	enterAltScreen = ansi.SetAltScreenSaveCursorMode + ansi.HideCursor
	leaveAltScreen = ansi.ShowCursor + ansi.ResetAltScreenSaveCursorMode
	homeAndClear   = ansi.CursorHomePosition + ansi.EraseEntireScreen

	// With VTIME set an idle read waits about 100ms. Empty reads that return
	// sooner than this, several times in a row, mean the tty was hung up.
	hangupReadTime = 10 * time.Millisecond
	hangupReads    = 3
)

// Terminal owns stdin/stdout for the lifetime of the dashboard.
type Terminal struct {
	in          io.Reader
	out         *os.File
	fd          int
	interactive bool
	oldState    *term.State

	readBuf    [64]byte
	pending    []byte
	emptyReads int

	mu        sync.Mutex
	closeOnce sync.Once
}

// Open prepares stdin/stdout. When stdin is not a terminal, or raw mode
// fails, the Terminal still draws but ReadKey returns ErrTerminalUnavailable.
func Open() *Terminal {
	t := &Terminal{in: os.Stdin, out: os.Stdout, fd: int(os.Stdin.Fd())}
	if !term.IsTerminal(t.fd) || !term.IsTerminal(int(t.out.Fd())) {
		log.Warn("stdin is not a terminal, keyboard input disabled")
		return t
	}

	state, err := term.MakeRaw(t.fd)
	if err != nil {
		log.WithError(err).Warn("could not enter raw mode, keyboard input disabled")
		return t
	}
	t.oldState = state
	if err := setReadTimeout(t.fd); err != nil {
		log.WithError(err).Warn("could not set read timeout, key reads will block")
	}

	t.interactive = true
	t.write(enterAltScreen)
	return t
}

// ReadKey returns the next key press. It waits at most about 100ms for input
// and returns the zero Key when none arrived.
func (t *Terminal) ReadKey() (Key, error) {
	if !t.interactive {
		return Key{}, ErrTerminalUnavailable
	}
	if k, ok := t.nextPending(); ok {
		return k, nil
	}

	start := time.Now()
	n, err := t.in.Read(t.readBuf[:])
	if n > 0 {
		t.pending = append(t.pending, t.readBuf[:n]...)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return Key{}, err
	}
	if n == 0 && time.Since(start) < hangupReadTime {
		t.emptyReads++
		if t.emptyReads >= hangupReads {
			return Key{}, fmt.Errorf("%w: input closed", ErrTerminalUnavailable)
		}
	} else {
		t.emptyReads = 0
	}
	if k, ok := t.nextPending(); ok {
		return k, nil
	}
	// An unfinished escape sequence followed by silence is the escape key.
	if n == 0 && len(t.pending) > 0 && t.pending[0] == esc {
		t.pending = t.pending[1:]
		return Key{Rune: esc}, nil
	}
	return Key{}, nil
}

func (t *Terminal) nextPending() (Key, bool) {
	k, n := decodeKey(t.pending)
	if n == 0 {
		return Key{}, false
	}
	t.pending = t.pending[n:]
	return k, true
}

// Draw replaces the screen contents with frame, cropped to the terminal
// height.
func (t *Terminal) Draw(frame string) error {
	_, height := t.Size()
	out := cropFrame(frame, height)
	if t.interactive {
		out = homeAndClear + out
	} else {
		out += "\n"
	}
	return t.write(out)
}

// Size returns the terminal width and height, falling back to $COLUMNS and
// $LINES, then 80x24.
func (t *Terminal) Size() (width, height int) {
	if t.out != nil {
		if w, h, err := term.GetSize(int(t.out.Fd())); err == nil && w > 0 {
			return w, h
		}
	}
	width, height = 80, 24
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		width = v
	}
	if v, err := strconv.Atoi(os.Getenv("LINES")); err == nil && v > 0 {
		height = v
	}
	return width, height
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() error {
	var err error
	t.closeOnce.Do(func() {
		if !t.interactive {
			return
		}
		t.write(leaveAltScreen)
		err = term.Restore(t.fd, t.oldState)
	})
	return err
}

func (t *Terminal) write(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.out == nil {
		return nil
	}
	_, err := io.WriteString(t.out, s)
	return err
}

// cropFrame keeps at most height lines and switches to CRLF line endings,
// which raw mode requires.
func cropFrame(frame string, height int) string {
	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\r\n")
}
