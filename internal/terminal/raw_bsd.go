//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

// setReadTimeout makes reads on fd return after at most 100ms (VMIN=0,
// VTIME=1). term.Restore undoes it along with raw mode.
func setReadTimeout(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		return err
	}
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 1
	return unix.IoctlSetTermios(fd, unix.TIOCSETA, termios)
}
