package log

import (
	"github.com/sirupsen/logrus"
)

// dumpStacksOnSignal is a no-op, windows has no SIGUSR1
func dumpStacksOnSignal(_ *logrus.Logger, _ <-chan struct{}) (dumped, finished <-chan struct{}) {
	return nil, nil
}
