//go:build windows

package tui

import (
	"os"
	"os/signal"
)

// watchSignals calls onTerminate on the first interrupt. Windows has no
// SIGWINCH, so onResize is never called.
func watchSignals(onResize func(), onTerminate func(os.Signal)) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-done:
		case sig := <-sigCh:
			if onTerminate != nil {
				onTerminate(sig)
			}
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

func exitCode(os.Signal) int {
	return 1
}
