//go:build !integration && unix

package log

import (
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpStacksOnSignal(t *testing.T) {
	logger, hook := test.NewNullLogger()
	stop := make(chan struct{})

	dumped, finished := dumpStacksOnSignal(logger, stop)

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, proc.Signal(stackDumpSignal))

		select {
		case <-dumped:
		case <-time.After(5 * time.Second):
			require.FailNow(t, "no stack dump logged")
		}
	}

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	entry := entries[1]
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Contains(t, entry.Message, "Stack dump requested with user defined signal 1")
	assert.Contains(t, entry.Message, "TestDumpStacksOnSignal")
	assert.Greater(t, entry.Data["goroutines"], 1)

	close(stop)

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "watcher didn't stop")
	}
}
