package helpers

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/meter"
)

const progressBarWidth = 30

// UI is what an extraction reports to while it runs.
//
//go:generate mockery --name=UI --inpackage
type UI interface {
	meter.Display

	Warn(title, message string)
	Finish()
}

// TerminalUI draws a single, continuously rewritten progress line.
type TerminalUI struct {
	lock sync.Mutex
	out  io.Writer

	bar   *progressbar.ProgressBar
	total int
	label string
	drawn bool
}

func NewTerminalUI(out io.Writer) *TerminalUI {
	return &TerminalUI{out: out}
}

func (u *TerminalUI) Warn(title, message string) {
	u.lock.Lock()
	defer u.lock.Unlock()

	u.breakLine()
	_, _ = fmt.Fprintln(u.out, color.New(color.FgYellow, color.Bold).Sprint(title+":"), message)
}

// SetProgress does nothing until a batch size is known
func (u *TerminalUI) SetProgress(completed, total int) {
	u.lock.Lock()
	defer u.lock.Unlock()

	if total <= 0 {
		return
	}

	if u.bar == nil || !u.drawn || total != u.total {
		u.bar = newProgressBar(u.out, total, u.label)
		u.total = total
	}

	_ = u.bar.Set(min(completed, total))
	u.drawn = true
}

func (u *TerminalUI) SetLabel(text string) {
	u.lock.Lock()
	defer u.lock.Unlock()

	u.label = text
	if !u.drawn {
		return
	}

	// a completed bar no longer renders, so the final label goes on a fresh one
	if u.bar.IsFinished() {
		u.bar = newProgressBar(u.out, u.total, text)
		_ = u.bar.Set(u.total)
		return
	}

	u.bar.Describe(text)
}

// Finish ends the progress line, if one was drawn.
func (u *TerminalUI) Finish() {
	u.lock.Lock()
	defer u.lock.Unlock()

	u.breakLine()
}

func (u *TerminalUI) breakLine() {
	if u.drawn {
		_, _ = fmt.Fprintln(u.out)
		u.drawn = false
	}
}

func newProgressBar(out io.Writer, total int, label string) *progressbar.ProgressBar {
	theme := progressbar.Theme{Saucer: "#", SaucerPadding: "-", BarStart: "[", BarEnd: "]"}
	if !color.NoColor {
		theme.Saucer = "[green]#[reset]"
	}

	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionSetTheme(theme),
		progressbar.OptionEnableColorCodes(!color.NoColor),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowDescriptionAtLineEnd(),
	)
}
