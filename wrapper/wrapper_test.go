package wrapper

import (
	"bytes"
	"context"
	"os"
	osexec "os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/executor"
)

func TestRenderEmbedsResolutionLogic(t *testing.T) {
	script, err := Render(LauncherSpec{
		Interpreter: "python2",
		EntryPoint:  "vol.py",
		Candidates:  []string{"/opt/volatility/vol.py", "/usr/local/lib/volatility/vol.py"},
		SearchRoots: []string{"/home", "/root"},
	})
	assert.NoError(t, err)
	assert.Contains(t, script, "#!/bin/bash")
	assert.Contains(t, script, "command -v python2")
	assert.Contains(t, script, `"/opt/volatility/vol.py" "/usr/local/lib/volatility/vol.py"`)
	assert.Contains(t, script, `find "$root" -type f -name "vol.py"`)
	assert.Contains(t, script, `exec python2 "$target" "$@"`)
	// Resolution happens when the launcher runs, never at generation time.
	assert.NotContains(t, script, `exec python2 "/opt`)
}

// runScript writes the rendered launcher to disk and invokes it the way a
// user would, returning exit code and captured streams.
func runScript(t *testing.T, script string, args ...string) (int, string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vol.py")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	var stdout, stderr bytes.Buffer
	cmd := osexec.Command("bash", append([]string{path}, args...)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if exitErr, ok := err.(*osexec.ExitError); ok {
		code = exitErr.ExitCode()
	} else {
		require.NoError(t, err)
	}
	return code, stdout.String(), stderr.String()
}

func TestLauncherResolvesCandidateAndForwardsArgs(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "volatility", "vol.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("echo \"ran:$1\"\n"), 0o755))

	script, err := Render(LauncherSpec{
		Interpreter: "sh",
		EntryPoint:  "vol.py",
		Candidates:  []string{filepath.Join(dir, "absent", "vol.py"), target},
	})
	require.NoError(t, err)

	code, stdout, _ := runScript(t, script, "--info")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "ran:--info")
}

func TestLauncherFallsBackToRecursiveSearch(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "src", "volatility-2.6.1", "vol.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("echo found\n"), 0o755))

	script, err := Render(LauncherSpec{
		Interpreter: "sh",
		EntryPoint:  "vol.py",
		Candidates:  []string{filepath.Join(root, "absent", "vol.py")},
		SearchRoots: []string{root},
	})
	require.NoError(t, err)

	code, stdout, _ := runScript(t, script)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "found")
}

func TestLauncherFailureListsEveryLocationTried(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "opt", "vol.py")
	second := filepath.Join(root, "lib", "vol.py")

	script, err := Render(LauncherSpec{
		Interpreter: "sh",
		EntryPoint:  "vol.py",
		Candidates:  []string{first, second},
		SearchRoots: []string{root},
	})
	require.NoError(t, err)

	code, _, stderr := runScript(t, script, "--info")
	assert.NotEqual(t, 0, code)
	assert.Contains(t, stderr, first)
	assert.Contains(t, stderr, second)
	assert.Contains(t, stderr, root)
}

func TestLauncherFailsWhenInterpreterMissing(t *testing.T) {
	script, err := Render(LauncherSpec{
		Interpreter: "no-such-interpreter-xyzzy",
		EntryPoint:  "vol.py",
		Candidates:  []string{"/nonexistent/vol.py"},
	})
	require.NoError(t, err)

	code, _, stderr := runScript(t, script)
	assert.NotEqual(t, 0, code)
	assert.Contains(t, stderr, "no-such-interpreter-xyzzy")
}

func TestGenerateWritesExecutableLauncher(t *testing.T) {
	wrapperPath := filepath.Join(t.TempDir(), "bin", "vol.py")

	fake := executor.NewFakeExecutor()
	fake.Binaries = []string{"python2"}

	g := NewGenerator(fake, wrapperPath)
	err := g.Generate(LauncherSpec{
		Interpreter: "python2",
		EntryPoint:  "vol.py",
		Candidates:  []string{"/opt/volatility/vol.py"},
		SearchRoots: []string{"/home", "/root"},
	})
	assert.NoError(t, err)

	info, err := os.Stat(wrapperPath)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	content, _ := os.ReadFile(wrapperPath)
	assert.Contains(t, string(content), `exec python2 "$target" "$@"`)
	assert.Contains(t, string(content), "/opt/volatility/vol.py")
}

func TestGenerateRequiresInterpreter(t *testing.T) {
	fake := executor.NewFakeExecutor()
	fake.Binaries = []string{"sh"} // python2 absent

	g := NewGenerator(fake, filepath.Join(t.TempDir(), "vol.py"))
	err := g.Generate(LauncherSpec{Interpreter: "python2", EntryPoint: "vol.py"})
	assert.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindNotFound))
}

func TestLocatePrefersCandidates(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "volatility", "vol.py")
	assert.NoError(t, os.MkdirAll(filepath.Dir(candidate), 0o755))
	assert.NoError(t, os.WriteFile(candidate, []byte("#!/usr/bin/env python2\n"), 0o755))

	l := NewLocator("vol.py", []string{candidate}, nil)
	got, err := l.Locate(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, candidate, got)
}

func TestLocateFallsBackToSearch(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "volatility-2.6.1", "vol.py")
	assert.NoError(t, os.MkdirAll(filepath.Dir(nested), 0o755))
	assert.NoError(t, os.WriteFile(nested, []byte("#!/usr/bin/env python2\n"), 0o755))

	l := NewLocator("vol.py",
		[]string{filepath.Join(root, "absent", "vol.py")},
		[]string{root})
	got, err := l.Locate(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, nested, got)
}

func TestLocateFailureListsTriedLocations(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "opt", "vol.py")

	l := NewLocator("vol.py", []string{missing}, []string{root})
	_, err := l.Locate(context.Background())
	assert.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindNotFound))
	assert.Contains(t, err.Error(), missing)
	assert.Contains(t, err.Error(), root)
}
