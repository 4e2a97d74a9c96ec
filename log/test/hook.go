package test

import (
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// NewHook will create a new global hook that can be used for tests after which
// it will remove when the returned function invoked.
//
// Prefer passing a logger to the code under test where that's possible, every
// global hook added affects all the other users of the standard logger.
func NewHook() (*test.Hook, func()) {
	// Copy all the previous hooks so we revert back to that state.
	oldHooks := logrus.LevelHooks{}
	for level, hooks := range logrus.StandardLogger().Hooks {
		oldHooks[level] = hooks
	}

	newHook := test.NewGlobal()
	return newHook, func() {
		logrus.StandardLogger().ReplaceHooks(oldHooks)
	}
}

// EntriesAt returns the entries the hook captured at level.
func EntriesAt(hook *test.Hook, level logrus.Level) []logrus.Entry {
	var entries []logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == level {
			entries = append(entries, *entry)
		}
	}

	return entries
}
