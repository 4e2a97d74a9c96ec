//go:build unix

package log

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"
)

const stackDumpSignal = syscall.SIGUSR1

// dumpStacksOnSignal writes the stacks of all goroutines to logger each time
// the process receives SIGUSR1, which helps to find out what a long running
// batch is stuck on. It stops once stop is closed.
func dumpStacksOnSignal(logger *logrus.Logger, stop <-chan struct{}) (dumped, finished <-chan struct{}) {
	dumpedCh := make(chan struct{}, 1)
	finishedCh := make(chan struct{})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, stackDumpSignal)

	go func() {
		defer close(finishedCh)
		defer signal.Stop(signals)

		for {
			select {
			case <-signals:
				buf := make([]byte, 1<<20)
				n := runtime.Stack(buf, true)

				logger.
					WithField("goroutines", runtime.NumGoroutine()).
					Infof("Stack dump requested with %s\n%s", stackDumpSignal, buf[:n])

				select {
				case dumpedCh <- struct{}{}:
				default:
				}
			case <-stop:
				return
			}
		}
	}()

	return dumpedCh, finishedCh
}
