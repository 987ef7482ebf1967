package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudenochcsis/Volatility-Script/common"
)

func TestInitGlobalLoggerConsole(t *testing.T) {
	err := InitGlobalLogger("", false, logrus.InfoLevel)
	require.NoError(t, err)
	require.NotNil(t, Log)
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())

	err = InitGlobalLogger("", true, logrus.InfoLevel)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel(), "verbose should force debug level")
}

func TestInitGlobalLoggerFile(t *testing.T) {
	dir := t.TempDir()
	err := InitGlobalLogger(dir, false, logrus.InfoLevel)
	require.NoError(t, err)

	Log.ForStep("clone-toolkit").Info("cloning repository")

	linkPath := filepath.Join(dir, common.InstallLogName)
	// rotatelogs writes to a dated file with a symlink at the plain name.
	target, err := os.Readlink(linkPath)
	require.NoError(t, err, "expected rotatelogs link at %s", linkPath)
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "cloning repository")
	assert.Contains(t, string(content), "Step:clone-toolkit")
}

func TestDepsLogWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := DepsLogWriter(dir)
	require.NoError(t, err)
	_, err = w.Write([]byte("Setting up python2 (2.7.18) ...\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content, err := os.ReadFile(filepath.Join(dir, common.DepsLogName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "python2")
}

func TestFormatterFieldOrder(t *testing.T) {
	f := &Formatter{
		DisableTimestamp:       true,
		DisableCaller:          true,
		NoColors:               true,
		DisplayLevelName:       HideAll,
		FieldsDisplayWithOrder: []string{common.PipelineName, common.StepName},
	}
	logger := logrus.New()
	logger.SetFormatter(f)
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.WithFields(logrus.Fields{
		common.StepName:     "patch-entrypoint",
		common.PipelineName: "install-volatility",
		"extra":             "x",
	}).Info("patched")

	line := buf.String()
	pipelineIdx := strings.Index(line, "Pipeline:install-volatility")
	stepIdx := strings.Index(line, "Step:patch-entrypoint")
	extraIdx := strings.Index(line, "extra:x")
	require.True(t, pipelineIdx >= 0 && stepIdx >= 0 && extraIdx >= 0, "all fields rendered: %q", line)
	assert.Less(t, pipelineIdx, stepIdx, "ordered fields keep declared order")
	assert.Less(t, stepIdx, extraIdx, "unordered fields come last")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "patched"))
}

func TestFormatterLevelDisplay(t *testing.T) {
	f := &Formatter{
		DisableTimestamp: true,
		DisableCaller:    true,
		NoColors:         true,
		DisplayLevelName: ShowAboveWarn,
	}
	logger := logrus.New()
	logger.SetFormatter(f)
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "[INFO]")
	assert.Contains(t, out, "[WARN]")
}
