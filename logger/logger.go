package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

// Log is the global logger instance.
var Log *VolLog

// VolLog wraps logrus.Logger for application-specific logging.
type VolLog struct {
	*logrus.Logger
}

func init() {
	// Console-only fallback so packages can log before main wires the file
	// output. InitGlobalLogger replaces this.
	if err := InitGlobalLogger("", false, logrus.InfoLevel); err != nil {
		panic(err)
	}
}

// InitGlobalLogger initializes the global Log variable. When outputPath is
// non-empty, entries are mirrored to a rotated install log under it and the
// console output is suppressed in favor of the file hook.
func InitGlobalLogger(outputPath string, verbose bool, defaultLevel logrus.Level) error {
	logger := logrus.New()

	level := defaultLevel
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	logger.SetReportCaller(true)

	displayLevel := ShowAboveWarn
	if verbose {
		displayLevel = ShowAll
	}

	fieldsOrder := []string{
		common.RunID, common.PipelineName, common.ModuleName,
		common.TaskName, common.StepName, common.CheckName,
	}

	if outputPath != "" {
		if err := os.MkdirAll(outputPath, 0755); err != nil {
			return fmt.Errorf("failed to create log output directory %s: %w", outputPath, err)
		}
		logFilePath := filepath.Join(outputPath, common.InstallLogName)

		writer, err := rotatelogs.New(
			logFilePath+".%Y%m%d",
			rotatelogs.WithLinkName(logFilePath),
			rotatelogs.WithMaxAge(7*24*time.Hour),
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			return fmt.Errorf("failed to initialize rotatelogs for %s: %w", logFilePath, err)
		}

		fileFormatter := &Formatter{
			TimestampFormat:        "2006-01-02 15:04:05.000 MST",
			NoColors:               true,
			DisplayLevelName:       displayLevel,
			FieldsDisplayWithOrder: fieldsOrder,
			FieldSeparator:         " | ",
			CustomCallerFormatter: func(frame *runtime.Frame) string {
				return fmt.Sprintf(" [%s:%d %s]", filepath.Base(frame.File), frame.Line, filepath.Base(frame.Function))
			},
		}
		logger.SetFormatter(fileFormatter)

		logWriters := lfshook.WriterMap{}
		for _, lvl := range logrus.AllLevels {
			if logger.IsLevelEnabled(lvl) {
				logWriters[lvl] = writer
			}
		}
		if len(logWriters) > 0 {
			logger.Hooks.Add(lfshook.NewHook(logWriters, fileFormatter))
			logger.SetOutput(io.Discard)
		}
	} else {
		consoleFormatter := &Formatter{
			TimestampFormat:        "15:04:05",
			NoColors:               false,
			DisplayLevelName:       displayLevel,
			DisableCaller:          true,
			FieldsDisplayWithOrder: fieldsOrder,
		}
		logger.SetFormatter(consoleFormatter)
		logger.SetOutput(os.Stdout)
	}

	Log = &VolLog{Logger: logger}
	return nil
}

// DepsLogWriter opens the dependency-install log for appending. Package
// manager stdout/stderr is teed here so aborting errors can point at it.
func DepsLogWriter(outputPath string) (io.WriteCloser, error) {
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log output directory %s: %w", outputPath, err)
	}
	path := filepath.Join(outputPath, common.DepsLogName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(common.FileMode0644))
	if err != nil {
		return nil, fmt.Errorf("failed to open dependency log %s: %w", path, err)
	}
	return f, nil
}

func (vl *VolLog) withScope(key, name string) *logrus.Entry {
	return vl.Logger.WithField(key, name)
}

// --- Scoped entry constructors ---

// ForPipeline returns an entry scoped to a pipeline.
func (vl *VolLog) ForPipeline(name string) *logrus.Entry {
	return vl.withScope(common.PipelineName, name)
}

// ForModule returns an entry scoped to a module.
func (vl *VolLog) ForModule(name string) *logrus.Entry {
	return vl.withScope(common.ModuleName, name)
}

// ForTask returns an entry scoped to a task.
func (vl *VolLog) ForTask(name string) *logrus.Entry {
	return vl.withScope(common.TaskName, name)
}

// ForStep returns an entry scoped to a step.
func (vl *VolLog) ForStep(name string) *logrus.Entry {
	return vl.withScope(common.StepName, name)
}

// ForCheck returns an entry scoped to a verification check.
func (vl *VolLog) ForCheck(name string) *logrus.Entry {
	return vl.withScope(common.CheckName, name)
}

// --- Scoped convenience methods ---

func (vl *VolLog) InfoStep(step, message string) {
	vl.ForStep(step).Info(message)
}

func (vl *VolLog) InfofStep(step, format string, args ...interface{}) {
	vl.ForStep(step).Infof(format, args...)
}

func (vl *VolLog) WarnStep(step, message string) {
	vl.ForStep(step).Warn(message)
}

func (vl *VolLog) WarnfStep(step, format string, args ...interface{}) {
	vl.ForStep(step).Warnf(format, args...)
}

func (vl *VolLog) ErrorStep(step string, err error, message string) {
	entry := vl.ForStep(step)
	if err != nil {
		entry = entry.WithField("error", err)
	}
	entry.Error(message)
}

func (vl *VolLog) ErrorfStep(step string, err error, format string, args ...interface{}) {
	entry := vl.ForStep(step)
	if err != nil {
		entry = entry.WithField("error", err)
	}
	entry.Errorf(format, args...)
}

func (vl *VolLog) InfofPipeline(pipeline, format string, args ...interface{}) {
	vl.ForPipeline(pipeline).Infof(format, args...)
}

func (vl *VolLog) ErrorfPipeline(pipeline string, err error, format string, args ...interface{}) {
	entry := vl.ForPipeline(pipeline)
	if err != nil {
		entry = entry.WithField("error", err)
	}
	entry.Errorf(format, args...)
}
