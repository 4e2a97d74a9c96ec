package cli_helpers

import (
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"gitlab.com/gitlab-org/bulk-unzipper/common"
)

// LogRuntimePlatform logs the platform details once the command line is
// parsed. Nothing is logged when the app only prints help or its version.
func LogRuntimePlatform(app *cli.App) {
	appBefore := app.Before
	app.Before = func(c *cli.Context) error {
		if c.NArg() > 0 {
			fields := logrus.Fields{
				"os":       runtime.GOOS,
				"arch":     runtime.GOARCH,
				"version":  common.VERSION,
				"revision": common.REVISION,
				"pid":      os.Getpid(),
			}

			logrus.WithFields(fields).Debugln("Runtime platform")
		}

		if appBefore != nil {
			return appBefore(c)
		}
		return nil
	}
}
