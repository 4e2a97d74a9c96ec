package cli_helpers

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

// InitCli turns on escape sequence handling for the console, which the
// progress line and the coloured log prefixes are drawn with. A console on
// stderr that refuses it gets plain output instead.
func InitCli() {
	_ = enableVirtualTerminal(windows.Stdout)

	if err := enableVirtualTerminal(windows.Stderr); err != nil {
		logrus.WithError(err).Debugln("Console doesn't handle escape sequences, disabling colours")
		color.NoColor = true
	}
}

func enableVirtualTerminal(handle windows.Handle) error {
	var mode uint32

	// redirected output isn't a console and needs nothing
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return nil
	}

	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return nil
	}

	return windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
}
