//go:build !linux

package main

// ttyState is a no-op on non-Linux builds: liner's own raw-mode handling
// already covers macOS/BSD/Windows, and actorsh's extra Ctrl-C-during-run
// guard (tty_unix.go) is a Linux-specific embedded-host affordance.
type ttyState struct{}

func captureTTYState(int) ttyState { return ttyState{} }

func (ttyState) restore() {}
