//go:build !windows

package tui

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchSignals calls onResize for every SIGWINCH and onTerminate once with the
// first SIGTERM, SIGHUP or SIGINT. The returned func stops watching.
func watchSignals(onResize func(), onTerminate func(os.Signal)) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, unix.SIGWINCH, unix.SIGTERM, unix.SIGHUP, unix.SIGINT)
	go func() {
		for {
			select {
			case <-done:
				return
			case sig := <-sigCh:
				if sig == unix.SIGWINCH {
					if onResize != nil {
						onResize()
					}
					continue
				}
				if onTerminate != nil {
					onTerminate(sig)
				}
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

// exitCode is the conventional shell status for death by sig.
func exitCode(sig os.Signal) int {
	if s, ok := sig.(unix.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
