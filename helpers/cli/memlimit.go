package cli_helpers

import (
	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// SetupMemoryLimit sets GOMEMLIMIT from the cgroup limit of the process,
// falling back to the system memory, unless the GOMEMLIMIT environment
// variable is already set.
func SetupMemoryLimit(app *cli.App) {
	appBefore := app.Before
	app.Before = func(c *cli.Context) error {
		limit, err := memlimit.SetGoMemLimitWithOpts(
			memlimit.WithProvider(
				memlimit.ApplyFallback(memlimit.FromCgroup, memlimit.FromSystem),
			),
		)
		if err != nil {
			logrus.WithError(err).Debugln("Memory limit not set")
		} else {
			logrus.WithField("limit", limit).Debugln("Memory limit set")
		}

		if appBefore != nil {
			return appBefore(c)
		}
		return nil
	}
}
