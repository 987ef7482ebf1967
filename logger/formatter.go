package logger

import (
	"bytes"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	resetColorCode         = 0
	defaultFieldSeparator  = " | "
	defaultTimestampFormat = time.RFC3339
)

// LevelNameDisplayMode defines how log level names are displayed.
type LevelNameDisplayMode int

const (
	// ShowAll shows all level names.
	ShowAll LevelNameDisplayMode = iota
	// ShowAboveWarn shows level names for WARN, ERROR, FATAL, PANIC.
	ShowAboveWarn
	// ShowAboveError shows level names for ERROR, FATAL, PANIC.
	ShowAboveError
	// HideAll hides all level names.
	HideAll
)

// Formatter implements logrus.Formatter for the provisioner's console and
// file output.
type Formatter struct {
	// TimestampFormat specifies the format of the timestamp. Default: time.RFC3339.
	TimestampFormat string
	// NoColors disables colorized output (file logs).
	NoColors bool
	// DisableTimestamp disables timestamp output.
	DisableTimestamp bool
	// DisplayLevelName configures which log level names are rendered.
	DisplayLevelName LevelNameDisplayMode
	// HideKeys hides field keys, showing only field values.
	HideKeys bool
	// FieldsDisplayWithOrder lists field keys to render first, in order.
	// Remaining fields follow alphabetically.
	FieldsDisplayWithOrder []string
	// FieldSeparator separates rendered fields. Default: " | ".
	FieldSeparator string
	// DisableCaller disables caller information output.
	DisableCaller bool
	// CustomCallerFormatter overrides the default caller rendering.
	CustomCallerFormatter func(*runtime.Frame) string
}

// Format renders a single log entry.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}

	if !f.DisableTimestamp {
		format := f.TimestampFormat
		if format == "" {
			format = defaultTimestampFormat
		}
		b.WriteString(entry.Time.Format(format))
		b.WriteString(" ")
	}

	if f.showLevel(entry.Level) {
		levelColor := getColorByLevel(entry.Level)
		if !f.NoColors {
			fmt.Fprintf(b, "\x1b[%dm", levelColor)
		}
		levelStr := entry.Level.String()
		if len(levelStr) > 4 {
			levelStr = levelStr[:4]
		}
		fmt.Fprintf(b, "[%s]", strings.ToUpper(levelStr))
		if !f.NoColors {
			fmt.Fprintf(b, "\x1b[%dm", resetColorCode)
		}
		b.WriteString(" ")
	}

	if len(entry.Data) > 0 {
		separator := f.FieldSeparator
		if separator == "" {
			separator = defaultFieldSeparator
		}
		b.WriteString("[")
		f.writeFields(b, entry, separator)
		b.WriteString("] ")
	}

	b.WriteString(entry.Message)

	if !f.DisableCaller && entry.HasCaller() {
		b.WriteString(" ")
		f.writeCaller(b, entry)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *Formatter) showLevel(level logrus.Level) bool {
	switch f.DisplayLevelName {
	case ShowAll:
		return true
	case ShowAboveWarn:
		return level <= logrus.WarnLevel
	case ShowAboveError:
		return level <= logrus.ErrorLevel
	default:
		return false
	}
}

func (f *Formatter) writeFields(b *bytes.Buffer, entry *logrus.Entry, separator string) {
	written := 0
	inOrder := make(map[string]bool)
	for _, field := range f.FieldsDisplayWithOrder {
		value, ok := entry.Data[field]
		if !ok {
			continue
		}
		if written > 0 {
			b.WriteString(separator)
		}
		f.writeKeyValue(b, field, value)
		inOrder[field] = true
		written++
	}

	remaining := make([]string, 0, len(entry.Data))
	for field := range entry.Data {
		if !inOrder[field] {
			remaining = append(remaining, field)
		}
	}
	sort.Strings(remaining)
	for _, field := range remaining {
		if written > 0 {
			b.WriteString(separator)
		}
		f.writeKeyValue(b, field, entry.Data[field])
		written++
	}
}

func (f *Formatter) writeKeyValue(b *bytes.Buffer, key string, value interface{}) {
	if f.HideKeys {
		fmt.Fprintf(b, "%v", value)
		return
	}
	fmt.Fprintf(b, "%s:%v", key, value)
}

func (f *Formatter) writeCaller(b *bytes.Buffer, entry *logrus.Entry) {
	if !entry.HasCaller() {
		return
	}
	if f.CustomCallerFormatter != nil {
		fmt.Fprint(b, f.CustomCallerFormatter(entry.Caller))
		return
	}
	callerFunc := filepath.Base(entry.Caller.Function)
	if parts := strings.Split(callerFunc, "."); len(parts) > 1 {
		callerFunc = parts[len(parts)-1]
	}
	fmt.Fprintf(b, "(%s:%d %s)", filepath.Base(entry.Caller.File), entry.Caller.Line, callerFunc)
}

func getColorByLevel(level logrus.Level) int {
	switch level {
	case logrus.TraceLevel:
		return colorGray
	case logrus.DebugLevel:
		return colorBlue
	case logrus.WarnLevel:
		return colorYellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return colorRed
	default:
		return colorGray
	}
}

const (
	colorRed    = 31
	colorYellow = 33
	colorBlue   = 36
	colorGray   = 37
)
