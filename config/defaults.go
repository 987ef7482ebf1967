package config

import (
	"fmt"
	"path/filepath"
)

// Default constants for the Volatility 2 install target.
const (
	DefaultRepoURL         = "https://github.com/volatilityfoundation/volatility.git"
	DefaultRevision        = "2.6.1"
	DefaultEntryPoint      = "vol.py"
	DefaultInterpreter     = "python2"
	DefaultWrapperPath     = "/usr/local/bin/vol.py"
	DefaultPipBootstrapURL = "https://bootstrap.pypa.io/pip/2.7/get-pip.py"
	DefaultLibyaraLink     = "/usr/lib/libyara.so"

	DefaultShebangPattern     = `^#!\s*/usr/bin/env\s+python\s*$|^#!\s*/usr/bin/python[0-9.]*\s*$`
	DefaultShebangReplacement = "#!/usr/bin/env python2"
)

// NewDefaultTarget returns the hardcoded install target: Volatility 2.6.1
// pinned under the invoking user's home, wrapped at /usr/local/bin/vol.py.
func NewDefaultTarget(targetHome string) InstallTarget {
	installDir := filepath.Join(targetHome, "volatility")
	return InstallTarget{
		RepoURL:     DefaultRepoURL,
		Revision:    DefaultRevision,
		EntryPoint:  DefaultEntryPoint,
		InstallDir:  installDir,
		Interpreter: DefaultInterpreter,
		WrapperPath: DefaultWrapperPath,

		ShebangPattern:     DefaultShebangPattern,
		ShebangReplacement: DefaultShebangReplacement,

		SystemPackages: []PackageSpec{
			{Name: "python2", Critical: true},
			{Name: "python2-dev", Critical: true},
			{Name: "git", Critical: true},
			{Name: "curl", Critical: true},
			{Name: "build-essential", Critical: true},
			{Name: "libssl-dev", Critical: true},
			{Name: "libffi-dev", Critical: true},
			{Name: "yara", Critical: false},
			{Name: "libyara-dev", Critical: false},
			{Name: "libdistorm3-dev", Critical: false},
		},
		PythonPackages: []PackageSpec{
			{Name: "distorm3", Critical: true},
			{Name: "yara-python", Critical: true},
			{Name: "pycrypto", Critical: true},
			{Name: "openpyxl", Critical: false},
			{Name: "ujson", Critical: false},
			{Name: "Pillow", Critical: false},
		},
		PipBootstrapURL: DefaultPipBootstrapURL,

		CandidateLocations: []string{
			filepath.Join(installDir, DefaultEntryPoint),
			"/opt/volatility/vol.py",
			"/usr/local/lib/volatility/vol.py",
		},
		SearchRoots: []string{targetHome, "/home", "/root", "/opt"},

		LibyaraRoots: []string{
			"/usr/lib/x86_64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
		},
		LibyaraPatterns: []string{"libyara.so", "libyara.so.*"},
		LibyaraLink:     DefaultLibyaraLink,

		ExpectedPlugins: []string{
			"pslist", "pstree", "psscan", "imageinfo", "malfind",
			"netscan", "connscan", "filescan", "dlllist", "handles",
		},
		ImportModules: []string{
			"volatility.conf", "volatility.registry", "distorm3", "Crypto",
		},
	}
}

// ApplyDefaults fills missing InstallTarget fields with the hardcoded
// values, so a partial YAML override stays runnable.
func ApplyDefaults(target *InstallTarget, targetHome string) error {
	if target == nil {
		return fmt.Errorf("install target cannot be nil")
	}
	def := NewDefaultTarget(targetHome)

	if target.RepoURL == "" {
		target.RepoURL = def.RepoURL
	}
	if target.Revision == "" {
		target.Revision = def.Revision
	}
	if target.EntryPoint == "" {
		target.EntryPoint = def.EntryPoint
	}
	if target.InstallDir == "" {
		target.InstallDir = def.InstallDir
	}
	if target.Interpreter == "" {
		target.Interpreter = def.Interpreter
	}
	if target.WrapperPath == "" {
		target.WrapperPath = def.WrapperPath
	}
	if target.ShebangPattern == "" {
		target.ShebangPattern = def.ShebangPattern
	}
	if target.ShebangReplacement == "" {
		target.ShebangReplacement = def.ShebangReplacement
	}
	if len(target.SystemPackages) == 0 {
		target.SystemPackages = def.SystemPackages
	}
	if len(target.PythonPackages) == 0 {
		target.PythonPackages = def.PythonPackages
	}
	if target.PipBootstrapURL == "" {
		target.PipBootstrapURL = def.PipBootstrapURL
	}
	if len(target.CandidateLocations) == 0 {
		target.CandidateLocations = []string{
			filepath.Join(target.InstallDir, target.EntryPoint),
			"/opt/volatility/vol.py",
			"/usr/local/lib/volatility/vol.py",
		}
	}
	if len(target.SearchRoots) == 0 {
		target.SearchRoots = def.SearchRoots
	}
	if len(target.LibyaraRoots) == 0 {
		target.LibyaraRoots = def.LibyaraRoots
	}
	if len(target.LibyaraPatterns) == 0 {
		target.LibyaraPatterns = def.LibyaraPatterns
	}
	if target.LibyaraLink == "" {
		target.LibyaraLink = def.LibyaraLink
	}
	if len(target.ExpectedPlugins) == 0 {
		target.ExpectedPlugins = def.ExpectedPlugins
	}
	if len(target.ImportModules) == 0 {
		target.ImportModules = def.ImportModules
	}
	return nil
}
