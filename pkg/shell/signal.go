package shell

import (
	"os"
	"os/signal"
)

const sigChanBufferSize = 32

// Starts relaying the signals the shell survives to the log. The returned
// function stops it.
func initSignal() func() {
	sigCh := make(chan os.Signal, sigChanBufferSize)
	signal.Notify(sigCh, survivedSignals...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				logger.Println("signal", signalName(sig))
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
