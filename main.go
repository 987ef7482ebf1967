package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/config"
	"github.com/cloudenochcsis/Volatility-Script/executor"
	"github.com/cloudenochcsis/Volatility-Script/logger"
	"github.com/cloudenochcsis/Volatility-Script/pipeline"
	"github.com/cloudenochcsis/Volatility-Script/pipeline/ending"
	"github.com/cloudenochcsis/Volatility-Script/pipeline/installvolatility"
	"github.com/cloudenochcsis/Volatility-Script/runtime"
	"github.com/cloudenochcsis/Volatility-Script/util"
)

var (
	flagConfig       string
	flagYes          bool
	flagVerbose      bool
	flagLogLevel     string
	flagWorkDir      string
	flagIgnoreErrors bool
)

var rootCmd = &cobra.Command{
	Use:   common.AppName,
	Short: "Provision the Volatility 2 memory forensics toolkit",
	Long: `volprovision installs the legacy Volatility 2 toolkit onto a modern
Debian-based host: system packages, a pinned python 2 environment, the
toolkit source at a fixed revision, and a system-wide launcher.

The run is a pipeline of idempotent steps; re-running against a finished
install is safe. Concurrent runs on the same host are not supported.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to an install config file (defaults are used when omitted)")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagWorkDir, "work-dir", "", "working directory for logs (defaults to $"+common.WorkDirEnv+" or "+common.GetTmpDir()+")")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreErrors, "ignore-errors", false, "continue past failing steps (for diagnosis only)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if common.IsKind(err, common.KindPermissionDenied) {
			os.Exit(common.ExitPermissionDenied)
		}
		os.Exit(common.ExitAborted)
	}
}

func run() error {
	// Everything the pipeline does mutates system state, so refuse to run
	// before touching anything.
	if os.Geteuid() != 0 {
		pterm.Error.Println("this tool must run as root (try sudo)")
		return common.NewError(common.KindPermissionDenied, "effective uid %d is not root", os.Geteuid())
	}

	workDir := util.FirstNonEmpty(flagWorkDir,
		util.GetenvOrDefault(common.WorkDirEnv, common.GetTmpDir()))
	level, err := logrus.ParseLevel(flagLogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if err := logger.InitGlobalLogger(workDir, flagVerbose, level); err != nil {
		return err
	}

	invokingUser := util.InvokingUser()
	targetHome := util.HomeOf(invokingUser)
	target, err := loadTarget(targetHome)
	if err != nil {
		return err
	}

	printPlan(target, invokingUser)
	if !flagYes {
		confirmed, err := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Proceed with provisioning?").
			Show()
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Println("aborted, nothing was changed")
			return common.NewError(common.KindInterrupted, "user declined confirmation")
		}
	}

	depsLog, err := logger.DepsLogWriter(workDir)
	if err != nil {
		return err
	}
	defer depsLog.Close()

	rt, err := runtime.NewRuntime(runtime.Config{
		Executor:       executor.NewLocalExecutor(),
		Clock:          clockwork.NewRealClock(),
		WorkDir:        workDir,
		Verbose:        flagVerbose,
		IgnoreError:    flagIgnoreErrors,
		NonInteractive: flagYes,
		InvokingUser:   invokingUser,
		TargetHome:     targetHome,
		Target:         target,
	})
	if err != nil {
		return err
	}

	stop := installSignalHandler(rt)
	defer stop()

	if err := pipeline.Register(installvolatility.PipelineName, func() (pipeline.Pipeline, error) {
		return installvolatility.NewInstallPipeline(depsLog), nil
	}); err != nil {
		return err
	}
	p, err := pipeline.GetPipeline(installvolatility.PipelineName)
	if err != nil {
		return err
	}

	runErr := p.Start(context.Background(), rt)

	fmt.Println()
	if err := ending.Render(os.Stdout, rt.Report()); err != nil {
		logger.Log.Warnf("could not render report: %v", err)
	}
	printUsageNotes(rt, workDir)

	return runErr
}

// loadTarget builds the install target from the config file, or from the
// built-in defaults when no file is given. File values win field by field.
func loadTarget(targetHome string) (config.InstallTarget, error) {
	if flagConfig == "" {
		return config.NewDefaultTarget(targetHome), nil
	}
	loader := config.NewLoader(flagConfig)
	cfg, err := loader.Load()
	if err != nil {
		return config.InstallTarget{}, err
	}
	target := cfg.Spec.Target
	if err := config.ApplyDefaults(&target, targetHome); err != nil {
		return config.InstallTarget{}, err
	}
	return target, nil
}

func printPlan(target config.InstallTarget, invokingUser string) {
	pterm.DefaultSection.Println("Provisioning plan")
	pterm.Printfln("  Toolkit:     %s @ %s", target.RepoURL, target.Revision)
	pterm.Printfln("  Install dir: %s (user %s)", target.InstallDir, invokingUser)
	pterm.Printfln("  Interpreter: %s", target.Interpreter)
	pterm.Printfln("  Launcher:    %s", target.WrapperPath)
	pterm.Printfln("  Packages:    %d system, %d python",
		len(target.SystemPackages), len(target.PythonPackages))
}

// printUsageNotes closes a successful run with how to actually use the tool.
func printUsageNotes(rt runtime.Runtime, workDir string) {
	if rt.Report().Status != ending.RunSucceeded {
		pterm.Info.Printfln("logs: %s", filepath.Join(workDir, common.InstallLogName))
		return
	}
	wrapperPath := rt.Facts().GetOrDefault(common.FactWrapperPath, rt.Target().WrapperPath)
	pterm.DefaultSection.Println("Getting started")
	pterm.Printfln("  %s -f <memory.img> imageinfo", wrapperPath)
	pterm.Printfln("  %s -f <memory.img> --profile=<profile> pslist", wrapperPath)
	pterm.Printfln("  logs: %s", filepath.Join(workDir, common.InstallLogName))
}

// installSignalHandler wires SIGINT/SIGTERM to a graceful interrupt: the
// running step finishes and the report is still rendered. A second signal
// kills the process.
func installSignalHandler(rt runtime.Runtime) func() {
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig, ok := <-signals
		if !ok {
			return
		}
		logger.Log.Warnf("received %s, finishing current step before stopping", sig)
		pterm.Warning.Println("interrupt requested; finishing the current step (press again to force quit)")
		rt.Interrupt()

		if _, ok := <-signals; ok {
			os.Exit(common.ExitAborted)
		}
	}()

	return func() {
		signal.Stop(signals)
		close(signals)
	}
}
