package config

// InstallConfig is the top-level configuration structure.
type InstallConfig struct {
	APIVersion string       `yaml:"apiVersion"`
	Kind       string       `yaml:"kind"`
	Metadata   MetadataSpec `yaml:"metadata"`
	Spec       *InstallSpec `yaml:"spec"`
}

// MetadataSpec defines metadata for the install configuration.
type MetadataSpec struct {
	Name string `yaml:"name"`
}

// InstallSpec defines the main configuration details for a provisioning run.
type InstallSpec struct {
	Target InstallTarget `yaml:"target"`
}

// InstallTarget is the logical description of the legacy toolkit to
// install. Immutable once the run starts.
type InstallTarget struct {
	// RepoURL is the upstream git repository of the toolkit.
	RepoURL string `yaml:"repoURL"`
	// Revision is the pinned tag, branch, or commit to check out.
	Revision string `yaml:"revision"`
	// EntryPoint is the toolkit's executable script, relative to InstallDir.
	EntryPoint string `yaml:"entryPoint"`
	// InstallDir is where the toolkit is cloned. Empty means
	// <targetHome>/volatility, resolved at startup.
	InstallDir string `yaml:"installDir,omitempty"`

	// Interpreter is the pinned legacy interpreter the toolkit requires.
	Interpreter string `yaml:"interpreter"`
	// WrapperPath is the fixed system path of the generated wrapper.
	WrapperPath string `yaml:"wrapperPath"`

	// ShebangPattern matches interpreter directives that need rewriting.
	ShebangPattern string `yaml:"shebangPattern,omitempty"`
	// ShebangReplacement is the directive written in their place.
	ShebangReplacement string `yaml:"shebangReplacement,omitempty"`

	SystemPackages []PackageSpec `yaml:"systemPackages"`
	PythonPackages []PackageSpec `yaml:"pythonPackages"`
	// PipBootstrapURL is the get-pip.py download for the legacy interpreter.
	PipBootstrapURL string `yaml:"pipBootstrapURL"`

	// CandidateLocations are checked in order by the backup logic and the
	// generated wrapper to find the installed entry point.
	CandidateLocations []string `yaml:"candidateLocations,omitempty"`
	// SearchRoots anchor the wrapper's recursive fallback search.
	SearchRoots []string `yaml:"searchRoots,omitempty"`

	// LibyaraRoots and LibyaraPatterns drive the shared-library probe; the
	// first match is linked at LibyaraLink. The probe failing is a warning,
	// not an error.
	LibyaraRoots    []string `yaml:"libyaraRoots,omitempty"`
	LibyaraPatterns []string `yaml:"libyaraPatterns,omitempty"`
	LibyaraLink     string   `yaml:"libyaraLink,omitempty"`

	// ExpectedPlugins must all appear in the toolkit's self-reported help
	// output for the plugin check to pass.
	ExpectedPlugins []string `yaml:"expectedPlugins,omitempty"`
	// ImportModules are imported in one interpreter process by the final
	// smoke test.
	ImportModules []string `yaml:"importModules,omitempty"`
}

// PackageSpec names a dependency and whether its installation failure aborts
// the run. The source script hid this distinction in `|| true` suffixes;
// here it is explicit configuration.
type PackageSpec struct {
	Name     string `yaml:"name"`
	Critical bool   `yaml:"critical"`
}

// CriticalNames returns the names of the critical packages.
func CriticalNames(pkgs []PackageSpec) []string {
	var names []string
	for _, p := range pkgs {
		if p.Critical {
			names = append(names, p.Name)
		}
	}
	return names
}
