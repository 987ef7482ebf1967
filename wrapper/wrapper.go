// Package wrapper locates the toolkit entry point and generates the small
// shell launcher that exposes it on PATH.
package wrapper

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/executor"
	"github.com/cloudenochcsis/Volatility-Script/file"
	"github.com/cloudenochcsis/Volatility-Script/util"
)

var wrapperTemplate = strings.TrimLeft(`
#!/bin/bash
# Generated by volprovision. Resolves {{ .EntryPoint }} at launch time so the
# launcher survives the install moving, and pins the legacy interpreter
# regardless of the system default python.

if ! command -v {{ .Interpreter }} >/dev/null 2>&1; then
    echo "{{ .EntryPoint }}: interpreter {{ .Interpreter }} not found on PATH" >&2
    exit 1
fi

tried=()
target=""
for candidate in{{ range .Candidates }} "{{ . }}"{{ end }}; do
    if [ -f "$candidate" ]; then
        target="$candidate"
        break
    fi
    tried+=("$candidate")
done

if [ -z "$target" ]; then
    for root in{{ range .SearchRoots }} "{{ . }}"{{ end }}; do
        tried+=("$root (searched recursively)")
        target="$(find "$root" -type f -name "{{ .EntryPoint }}" 2>/dev/null | head -n 1)"
        if [ -n "$target" ]; then
            break
        fi
    done
fi

if [ -z "$target" ]; then
    echo "{{ .EntryPoint }}: not found, tried:" >&2
    for loc in "${tried[@]}"; do
        echo "  $loc" >&2
    done
    exit 1
fi

exec {{ .Interpreter }} "$target" "$@"
`, "\n")

// LauncherSpec describes the launcher to render. Candidates are absolute
// paths checked in order at launch time; SearchRoots anchor the recursive
// fallback when none of them exist.
type LauncherSpec struct {
	Interpreter string
	EntryPoint  string
	Candidates  []string
	SearchRoots []string
}

// Generator writes the launcher script at the wrapper path.
type Generator struct {
	exec        executor.Executor
	wrapperPath string
}

func NewGenerator(exec executor.Executor, wrapperPath string) *Generator {
	return &Generator{exec: exec, wrapperPath: wrapperPath}
}

// Render produces the launcher script text. The script re-resolves the
// entry point on every invocation and lists every location it tried when
// resolution fails.
func Render(spec LauncherSpec) (string, error) {
	return util.RenderString(wrapperTemplate, util.Data{
		"Interpreter": spec.Interpreter,
		"EntryPoint":  spec.EntryPoint,
		"Candidates":  spec.Candidates,
		"SearchRoots": spec.SearchRoots,
	})
}

// Generate checks the interpreter is reachable, renders the launcher and
// installs it executable at the wrapper path.
func (g *Generator) Generate(spec LauncherSpec) error {
	if g.exec.LookPath(spec.Interpreter) == "" {
		return common.NewError(common.KindNotFound,
			"interpreter %s is not on PATH, cannot generate %s", spec.Interpreter, g.wrapperPath)
	}

	script, err := Render(spec)
	if err != nil {
		return errors.Wrap(err, "could not render launcher script")
	}
	if err := file.CreateFileDir(g.wrapperPath); err != nil {
		return err
	}
	if err := file.WriteFile(g.wrapperPath, []byte(script), common.FileMode0755); err != nil {
		return errors.Wrapf(err, "could not install launcher at %s", g.wrapperPath)
	}
	return nil
}

// Locator resolves the installed entry point, trying known locations before
// falling back to a filesystem search.
type Locator struct {
	entryPoint  string
	candidates  []string
	searchRoots []string
}

func NewLocator(entryPoint string, candidates, searchRoots []string) *Locator {
	return &Locator{
		entryPoint:  entryPoint,
		candidates:  candidates,
		searchRoots: searchRoots,
	}
}

// Locate returns the first candidate path that exists, then falls back to
// walking the search roots. The error on failure lists every location tried.
func (l *Locator) Locate(ctx context.Context) (string, error) {
	for _, candidate := range l.candidates {
		if exists, err := file.PathExists(candidate); err == nil && exists {
			return candidate, nil
		}
	}

	for _, root := range l.searchRoots {
		found, err := l.walkFor(ctx, root)
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}

	return "", common.NewError(common.KindNotFound,
		"could not locate %s; tried %s and searched under %s",
		l.entryPoint,
		strings.Join(l.candidates, ", "),
		strings.Join(l.searchRoots, ", "))
}

// walkFor searches root recursively for the entry point, first match wins.
// Unreadable subtrees are skipped rather than aborting the search.
func (l *Locator) walkFor(ctx context.Context, root string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == l.entryPoint {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", common.WrapError(err, common.KindInterrupted, "search under %s interrupted", root)
		}
		return "", errors.Wrapf(err, "search under %s failed", root)
	}
	return found, nil
}
