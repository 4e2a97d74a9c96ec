package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"dario.cat/mergo"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/urfave/cli"

	"gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/archive"
	_ "gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/archive/fastzip"
	_ "gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/archive/ziplegacy"
	"gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/meter"
	"gitlab.com/gitlab-org/bulk-unzipper/common"
	prometheus_helper "gitlab.com/gitlab-org/bulk-unzipper/helpers/prometheus"
	"gitlab.com/gitlab-org/bulk-unzipper/log"
	"gitlab.com/gitlab-org/bulk-unzipper/unzipper"
)

const (
	warningTitle          = "Warning"
	missingFolderWarning  = "Please select both source and destination folders."
	emptySourceWarning    = "No ZIP files found in the source folder."
	partialFailureWarning = "Some archives could not be extracted"
)

type ExtractCommand struct {
	common.ExtractConfig

	ConfigFile string `short:"c" long:"config" env:"BULK_UNZIPPER_CONFIG" description:"Config file"`

	ui     UI
	output io.Writer
}

// loadConfig merges the config file into the values given as flags or
// environment variables. Values set there win over the file.
func (c *ExtractCommand) loadConfig() (*common.Config, error) {
	config := common.NewConfig()

	if c.ConfigFile != "" {
		if err := config.LoadConfig(c.ConfigFile); err != nil {
			return nil, fmt.Errorf("couldn't load config file %q: %w", c.ConfigFile, err)
		}
	}

	if config.Loaded {
		logrus.WithField("config", c.ConfigFile).Debugln("Loaded config file")
	}

	if err := mergo.Merge(&c.ExtractConfig, config.Extract); err != nil {
		return nil, fmt.Errorf("error while merging flags with config file: %w", err)
	}

	return config, nil
}

func (c *ExtractCommand) getUI() UI {
	if c.ui == nil {
		c.ui = NewTerminalUI(os.Stderr)
	}

	return c.ui
}

func (c *ExtractCommand) getOutput() io.Writer {
	if c.output == nil {
		c.output = os.Stdout
	}

	return c.output
}

func (c *ExtractCommand) Execute(cliCtx *cli.Context) {
	config, err := c.loadConfig()
	if err != nil {
		logrus.WithError(err).Fatalln("Configuration error")
	}

	if err := log.Configuration().ApplyConfig(config); err != nil {
		logrus.WithError(err).Fatalln("Error while setting up logging configuration")
	}

	if err := archive.UseBackend(archive.Zip, c.GetExtractor()); err != nil {
		logrus.WithError(err).Fatalln("Configuration error")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := c.run(ctx); err != nil {
		logrus.WithError(err).Fatalln("Extraction failed")
	}
}

// run returns an error only when the batch could not be started at all for
// a reason the user can't be warned about.
func (c *ExtractCommand) run(ctx context.Context) error {
	ui := c.getUI()

	logrus.WithFields(logrus.Fields{
		"source":      c.Source,
		"destination": c.Destination,
		"extractor":   c.GetExtractor(),
	}).Debugln("Selected folders")

	var logHook *prometheus_helper.LogHook
	if c.MetricsFile != "" {
		logHook = prometheus_helper.NewLogHook()
		logrus.AddHook(logHook)
	}

	metrics := unzipper.NewMetrics()
	runner := &unzipper.Runner{
		Extractor: &unzipper.Extractor{
			MaxDepth: c.GetMaxDepth(),
			Metrics:  metrics,
		},
		Metrics: metrics,
	}

	progress := meter.NewProgress(
		runner.Progress(),
		c.GetPollInterval(),
		meter.CountdownFormat(ui, c.GetPerItemEstimate()),
	)

	var (
		result *unzipper.Result
		err    error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		result, err = runner.Run(ctx, c.Source, c.Destination)
	})
	wg.Wait()

	progress.Close()
	ui.Finish()

	switch {
	case errors.Is(err, unzipper.ErrMissingDirectory):
		ui.Warn(warningTitle, missingFolderWarning)
		return nil
	case errors.Is(err, unzipper.ErrEmptyBatch):
		ui.Warn(warningTitle, emptySourceWarning)
		return nil
	case result == nil:
		return err
	case err != nil:
		logrus.WithError(err).Warningln("Extraction stopped before all archives were processed")
	}

	if !c.NoSummary {
		renderSummary(c.getOutput(), result)
	}

	if failures := result.Err(); failures != nil {
		logrus.WithError(failures).Warningln(partialFailureWarning)
	}

	if c.MetricsFile != "" {
		c.writeMetrics(metrics, logHook)
	}

	return nil
}

func (c *ExtractCommand) writeMetrics(metrics *unzipper.Metrics, logHook *prometheus_helper.LogHook) {
	err := metrics.WriteToTextfile(c.MetricsFile, logHook, common.AppVersion.NewMetricsCollector())
	if err != nil {
		logrus.WithError(err).WithField("file", c.MetricsFile).Errorln("Writing metrics")
		return
	}

	logrus.WithField("file", c.MetricsFile).Debugln("Metrics written")
}

func NewExtractCommand() *ExtractCommand {
	return &ExtractCommand{
		ConfigFile: common.DefaultConfigFile,
	}
}

func init() {
	common.RegisterCommand(
		"extract",
		"extract every zip file of a folder, including the zip files nested in them",
		NewExtractCommand(),
	)
}
