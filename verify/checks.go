package verify

import (
	"context"
	"strings"
	"time"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/executor"
)

const checkTimeout = 2 * time.Minute

// DirectInvocation confirms the entry point runs under the interpreter.
// --info exercises module loading without needing a memory image.
func DirectInvocation(exec executor.Executor, interpreter, entryPoint string) Check {
	return Check{
		Name:     "direct invocation",
		Critical: true,
		Run: func(ctx context.Context) error {
			res, err := exec.Run(ctx, interpreter, []string{entryPoint, "--info"},
				executor.Options{Timeout: checkTimeout})
			if err != nil {
				return err
			}
			if res.ExitCode != 0 {
				return common.NewError(common.KindNonZeroExit,
					"%s %s --info exited %d", interpreter, entryPoint, res.ExitCode).
					WithOutput(res.ExitCode, res.Combined())
			}
			return nil
		},
	}
}

// WrapperInvocation confirms the generated launcher works from PATH.
func WrapperInvocation(exec executor.Executor, wrapperPath string) Check {
	return Check{
		Name:     "wrapper invocation",
		Critical: true,
		Run: func(ctx context.Context) error {
			res, err := exec.Run(ctx, wrapperPath, []string{"--info"},
				executor.Options{Timeout: checkTimeout})
			if err != nil {
				return err
			}
			if res.ExitCode != 0 {
				return common.NewError(common.KindNonZeroExit,
					"%s --info exited %d", wrapperPath, res.ExitCode).
					WithOutput(res.ExitCode, res.Combined())
			}
			return nil
		},
	}
}

// PluginPresence scans --info output for the expected plugin names and names
// every one that is missing.
func PluginPresence(exec executor.Executor, interpreter, entryPoint string, expected []string) Check {
	return Check{
		Name:     "plugin presence",
		Critical: true,
		Run: func(ctx context.Context) error {
			res, err := exec.Run(ctx, interpreter, []string{entryPoint, "--info"},
				executor.Options{Timeout: checkTimeout})
			if err != nil {
				return err
			}
			if res.ExitCode != 0 {
				return common.NewError(common.KindNonZeroExit,
					"--info exited %d while listing plugins", res.ExitCode).
					WithOutput(res.ExitCode, res.Combined())
			}

			var missing []string
			for _, plugin := range expected {
				if !strings.Contains(res.Stdout, plugin) {
					missing = append(missing, plugin)
				}
			}
			if len(missing) > 0 {
				return common.NewError(common.KindVerificationFailed,
					"plugins missing from --info output: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

// YaraVersion confirms the yara scanner binding imports and reports a
// version. Failure degrades malware plugins but does not break the core, so
// the check is advisory.
func YaraVersion(exec executor.Executor, interpreter string) Check {
	return Check{
		Name:     "yara binding",
		Critical: false,
		Run: func(ctx context.Context) error {
			res, err := exec.Run(ctx, interpreter,
				[]string{"-c", "import yara; print(yara.__version__)"},
				executor.Options{Timeout: checkTimeout})
			if err != nil {
				return err
			}
			if res.ExitCode != 0 {
				return common.NewError(common.KindNonZeroExit,
					"yara import failed (exit %d)", res.ExitCode).
					WithOutput(res.ExitCode, res.Combined())
			}
			return nil
		},
	}
}

// CombinedImports loads every declared module in a single interpreter
// process. Plugins import these side by side, so they must coexist in one
// interpreter, not merely import one at a time.
func CombinedImports(exec executor.Executor, interpreter string, modules []string) Check {
	return Check{
		Name:     "combined imports",
		Critical: false,
		Run: func(ctx context.Context) error {
			if len(modules) == 0 {
				return nil
			}
			res, err := exec.Run(ctx, interpreter,
				[]string{"-c", "import " + strings.Join(modules, ", ")},
				executor.Options{Timeout: checkTimeout})
			if err != nil {
				return err
			}
			if res.ExitCode != 0 {
				return common.NewError(common.KindNonZeroExit,
					"importing %s in one process failed (exit %d)",
					strings.Join(modules, ", "), res.ExitCode).
					WithOutput(res.ExitCode, res.Combined())
			}
			return nil
		},
	}
}

// ImportBattery imports each module under the interpreter one at a time so a
// single broken library is named rather than folded into one failure.
func ImportBattery(exec executor.Executor, interpreter string, modules []string) []Check {
	checks := make([]Check, 0, len(modules))
	for _, module := range modules {
		module := module
		checks = append(checks, Check{
			Name:     "import " + module,
			Critical: false,
			Run: func(ctx context.Context) error {
				res, err := exec.Run(ctx, interpreter,
					[]string{"-c", "import " + module},
					executor.Options{Timeout: checkTimeout})
				if err != nil {
					return err
				}
				if res.ExitCode != 0 {
					return common.NewError(common.KindNonZeroExit,
						"import %s failed (exit %d)", module, res.ExitCode).
						WithOutput(res.ExitCode, res.Combined())
				}
				return nil
			},
		})
	}
	return checks
}
