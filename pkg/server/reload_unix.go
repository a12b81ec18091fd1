//go:build !windows

package server

import (
	"os"
	"os/signal"
	"syscall"
)

// notifyReload delivers SIGHUP to ch until the returned stop func is called.
// ch is closed on stop so the reload loop exits.
func notifyReload(ch chan os.Signal) func() {
	signal.Notify(ch, syscall.SIGHUP)
	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
