//go:build linux

package main

import "golang.org/x/sys/unix"

// ttyState snapshots stdin's termios so it can be restored if a signal
// interrupts the REPL while liner has it in raw mode. liner itself restores
// terminal state on a clean Close, but a Ctrl-C received while a background
// "run" is active (liner's Prompt is not on the call stack at all) leaves
// nothing responsible for cooked-mode restoration — this fills that gap.
type ttyState struct {
	fd    int
	saved *unix.Termios
}

// captureTTYState reads the current termios for fd, or returns a state
// whose saved field is nil if fd is not a terminal (e.g. actorsh's stdin is
// a pipe in CI), in which case restore is a no-op.
func captureTTYState(fd int) ttyState {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return ttyState{fd: fd}
	}

	return ttyState{fd: fd, saved: t}
}

// restore reapplies the captured termios, ignoring errors: this is
// best-effort cleanup on a signal path, not a correctness-critical write.
func (s ttyState) restore() {
	if s.saved == nil {
		return
	}

	_ = unix.IoctlSetTermios(s.fd, unix.TCSETS, s.saved)
}
