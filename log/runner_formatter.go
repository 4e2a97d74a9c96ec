package log

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type levelStyle struct {
	color  *color.Color
	prefix string
}

var levelStyles = map[logrus.Level]levelStyle{
	logrus.DebugLevel: {color: newColor(color.FgWhite, color.Bold)},
	logrus.WarnLevel:  {color: newColor(color.FgYellow), prefix: "WARNING: "},
	logrus.ErrorLevel: {color: newColor(color.FgRed, color.Bold), prefix: "ERROR: "},
	logrus.FatalLevel: {color: newColor(color.FgRed, color.Bold), prefix: "FATAL: "},
	logrus.PanicLevel: {color: newColor(color.FgRed, color.Bold), prefix: "PANIC: "},
}

// newColor returns a color that is always applied. Whether colors are wanted
// at all is decided by the formatter, not by the terminal detection of the
// color package.
func newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

type RunnerTextFormatter struct {
	// Force disabling colors.
	DisableColors bool

	// The fields are sorted by default for a consistent output.
	DisableSorting bool
}

func (f *RunnerTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)
	f.print(b, entry)
	b.WriteByte('\n')

	return b.Bytes(), nil
}

func (f *RunnerTextFormatter) print(b *bytes.Buffer, entry *logrus.Entry) {
	style := levelStyles[entry.Level]
	paint := func(s string) string {
		if f.DisableColors || style.color == nil {
			return s
		}
		return style.color.Sprint(s)
	}

	indentLength := 50 - len(style.prefix)
	b.WriteString(paint(fmt.Sprintf("%s%-*s", style.prefix, indentLength, entry.Message)))
	b.WriteByte(' ')

	for _, k := range f.prepareKeys(entry) {
		fmt.Fprintf(b, " %s=%v", paint(k), entry.Data[k])
	}
}

func (f *RunnerTextFormatter) prepareKeys(entry *logrus.Entry) []string {
	keys := make([]string, 0, len(entry.Data))

	for k := range entry.Data {
		keys = append(keys, k)
	}

	if !f.DisableSorting {
		sort.Strings(keys)
	}

	return keys
}

func SetRunnerFormatter() {
	logrus.SetFormatter(new(RunnerTextFormatter))
}
