package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/executor"
)

const volInfoOutput = `Volatility Foundation Volatility Framework 2.6.1

Plugins
-------
connscan        - Pool scanner for tcp connections
dlllist         - Print list of loaded dlls for each process
filescan        - Pool scanner for file objects
handles         - Print list of open handles for each process
imageinfo       - Identify information for the image
malfind         - Find hidden and injected code
netscan         - Scan a Vista or later image for connections and sockets
psscan          - Pool scanner for process objects
pslist          - Print all running processes by following the EPROCESS lists
pstree          - Print process list as a tree
`

func TestRunChecksAllPass(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("--info", executor.Result{Stdout: volInfoOutput, ExitCode: 0})

	checks := []Check{
		DirectInvocation(fake, "python2", "/opt/volatility/vol.py"),
		WrapperInvocation(fake, "/usr/local/bin/vol.py"),
	}
	report, err := RunChecks(context.Background(), checks)
	assert.NoError(t, err)
	assert.True(t, report.Passed())
	assert.Len(t, report.Results, 2)
	assert.Empty(t, report.Warnings())
}

func TestRunChecksCriticalFailure(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("--info", executor.Result{Stderr: "ImportError: No module named Crypto", ExitCode: 1})

	report, err := RunChecks(context.Background(), []Check{
		DirectInvocation(fake, "python2", "/opt/volatility/vol.py"),
	})
	assert.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindVerificationFailed))
	assert.False(t, report.Passed())
	assert.Len(t, report.CriticalFailures(), 1)
}

func TestRunChecksNonCriticalFailureIsWarning(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("import yara", executor.Result{Stderr: "ImportError: No module named yara", ExitCode: 1})

	report, err := RunChecks(context.Background(), []Check{
		YaraVersion(fake, "python2"),
	})
	assert.NoError(t, err)
	assert.True(t, report.Passed())
	assert.Len(t, report.Warnings(), 1)
	assert.Equal(t, "yara binding", report.Warnings()[0].Name)
}

func TestRunChecksDoesNotShortCircuit(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("/opt/volatility/vol.py --info", executor.Result{ExitCode: 1})
	fake.Respond("/usr/local/bin/vol.py --info", executor.Result{Stdout: volInfoOutput, ExitCode: 0})

	report, err := RunChecks(context.Background(), []Check{
		DirectInvocation(fake, "python2", "/opt/volatility/vol.py"),
		WrapperInvocation(fake, "/usr/local/bin/vol.py"),
	})
	assert.Error(t, err)
	assert.Len(t, report.Results, 2)
	assert.True(t, report.Results[1].Passed())
}

func TestPluginPresence(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("--info", executor.Result{Stdout: volInfoOutput, ExitCode: 0})

	check := PluginPresence(fake, "python2", "/opt/volatility/vol.py",
		[]string{"pslist", "pstree", "malfind"})
	assert.NoError(t, check.Run(context.Background()))
}

func TestPluginPresenceNamesMissingPlugins(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("--info", executor.Result{Stdout: "pslist - processes\n", ExitCode: 0})

	check := PluginPresence(fake, "python2", "/opt/volatility/vol.py",
		[]string{"pslist", "netscan", "connscan"})
	err := check.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "netscan")
	assert.Contains(t, err.Error(), "connscan")
	assert.NotContains(t, err.Error(), "pslist,")
}

func TestCombinedImportsRunsOneProcess(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("import distorm3, Crypto", executor.Result{ExitCode: 0})

	check := CombinedImports(fake, "python2", []string{"distorm3", "Crypto"})
	assert.NoError(t, check.Run(context.Background()))

	assert.Equal(t, 1, fake.CallCount("import"))
	assert.Equal(t, 1, fake.CallCount("import distorm3, Crypto"))
}

func TestCombinedImportsFailureNamesModules(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("import", executor.Result{Stderr: "ImportError: No module named Crypto", ExitCode: 1})

	check := CombinedImports(fake, "python2", []string{"distorm3", "Crypto"})
	err := check.Run(context.Background())
	assert.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindNonZeroExit))
	assert.Contains(t, err.Error(), "distorm3, Crypto")
	assert.Contains(t, err.Error(), "one process")
}

func TestCombinedImportsNoModulesIsNoOp(t *testing.T) {
	fake := executor.NewFakeExecutor()
	check := CombinedImports(fake, "python2", nil)
	assert.NoError(t, check.Run(context.Background()))
	assert.Empty(t, fake.Calls())
}

func TestImportBattery(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Respond("import distorm3", executor.Result{ExitCode: 0})
	fake.Respond("import Crypto", executor.Result{Stderr: "ImportError", ExitCode: 1})

	checks := ImportBattery(fake, "python2", []string{"distorm3", "Crypto"})
	assert.Len(t, checks, 2)
	assert.NoError(t, checks[0].Run(context.Background()))
	assert.Error(t, checks[1].Run(context.Background()))
	assert.Equal(t, "import Crypto", checks[1].Name)
}
