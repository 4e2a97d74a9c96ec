package helpers

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/meter"
	"gitlab.com/gitlab-org/bulk-unzipper/unzipper"
)

const (
	messageOK     = "OK"
	messageFailed = "FAILED"
)

func renderSummary(w io.Writer, result *unzipper.Result) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Archive", "Status", "Entries", "Nested", "Nested failed", "Nested skipped", "Size", "Duration"})
	t.AppendRows(rowsFromTasks(result.Tasks))
	t.AppendSeparator()
	t.AppendRow(totalsRow(result))

	_, _ = fmt.Fprintln(w, t.Render())
}

func rowsFromTasks(tasks []unzipper.TaskResult) []table.Row {
	return lo.Map(tasks, func(task unzipper.TaskResult, _ int) table.Row {
		status := color.New(color.FgGreen).Sprint(messageOK)
		if !task.Success {
			status = color.New(color.FgRed).Sprint(messageFailed)
		}

		return table.Row{
			filepath.Base(task.Path),
			status,
			task.Stats.Entries,
			task.Stats.Nested,
			task.Stats.NestedFailed,
			task.Stats.NestedSkipped,
			meter.FormatBytes(uint64(task.Stats.Size)),
			task.Duration.Round(time.Millisecond),
		}
	})
}

func totalsRow(result *unzipper.Result) table.Row {
	sum := func(fn func(task unzipper.TaskResult) int) int {
		return lo.SumBy(result.Tasks, fn)
	}

	return table.Row{
		fmt.Sprintf("%d/%d processed", result.Completed, result.Total),
		fmt.Sprintf("%d failed", result.Failed),
		sum(func(task unzipper.TaskResult) int { return task.Stats.Entries }),
		sum(func(task unzipper.TaskResult) int { return task.Stats.Nested }),
		sum(func(task unzipper.TaskResult) int { return task.Stats.NestedFailed }),
		sum(func(task unzipper.TaskResult) int { return task.Stats.NestedSkipped }),
		meter.FormatBytes(uint64(lo.SumBy(result.Tasks, func(task unzipper.TaskResult) int64 { return task.Stats.Size }))),
		lo.SumBy(result.Tasks, func(task unzipper.TaskResult) time.Duration { return task.Duration }).Round(time.Millisecond),
	}
}
