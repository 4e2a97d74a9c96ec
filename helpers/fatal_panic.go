package helpers

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

type panicLogHook struct {
	output io.Writer
	levels []logrus.Level
}

func (s *panicLogHook) Levels() []logrus.Level {
	return s.levels
}

func (s *panicLogHook) Fire(e *logrus.Entry) error {
	_, _ = fmt.Fprintln(s.output, e.Message)

	panic(e)
}

// MakeLevelToPanic replaces the hooks of the standard logger with one that
// panics with the *logrus.Entry logged at any of levels. The returned
// function restores the previous hooks.
func MakeLevelToPanic(levels ...logrus.Level) func() {
	logger := logrus.StandardLogger()
	hooks := make(logrus.LevelHooks)

	hooks.Add(&panicLogHook{output: logger.Out, levels: levels})
	oldHooks := logger.ReplaceHooks(hooks)

	return func() {
		logger.ReplaceHooks(oldHooks)
	}
}

func MakeFatalToPanic() func() {
	return MakeLevelToPanic(logrus.FatalLevel)
}

func MakeWarningToPanic() func() {
	return MakeLevelToPanic(logrus.WarnLevel)
}
