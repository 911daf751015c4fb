package dashboard

import (
	"context"
	"errors"

	"MetalStack/internal/terminal"
)

// KeyReader yields key presses. A zero Key means no key arrived before the
// read timed out.
type KeyReader interface {
	ReadKey() (terminal.Key, error)
}

// InputReader turns key presses into commands for the loop.
type InputReader struct {
	keys KeyReader
	post func(context.Context, Event) bool
}

// NewInputReader creates an InputReader that hands commands to post.
func NewInputReader(keys KeyReader, post func(context.Context, Event) bool) *InputReader {
	return &InputReader{keys: keys, post: post}
}

// Run reads keys until ctx is cancelled. ctx is checked before every read, so
// stopping takes at most one read timeout. If the terminal cannot be read,
// Run posts a single Quit and returns.
func (r *InputReader) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Debug("input reader stopped")
			return
		default:
		}

		k, err := r.keys.ReadKey()
		if err != nil {
			if errors.Is(err, terminal.ErrTerminalUnavailable) {
				log.Info("no interactive terminal, quitting")
			} else {
				log.WithError(err).Warn("key read failed, quitting")
			}
			r.post(ctx, Quit{})
			return
		}
		if k == (terminal.Key{}) {
			continue
		}
		if !r.post(ctx, ParseKey(k)) {
			return
		}
	}
}
