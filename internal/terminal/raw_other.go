//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package terminal

// setReadTimeout is unsupported here; key reads block until a key arrives.
func setReadTimeout(int) error { return nil }
