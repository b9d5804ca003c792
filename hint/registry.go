package hint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/termfx/hintfix/core"
)

// IncludeLoader fetches the raw source of a hint unit by id.
type IncludeLoader interface {
	Load(id string) (string, error)
}

// LoaderFunc adapts a plain function to IncludeLoader.
type LoaderFunc func(id string) (string, error)

func (f LoaderFunc) Load(id string) (string, error) { return f(id) }

// DirLoader resolves unit ids to <dir>/<id>.hint files.
type DirLoader struct {
	Dir string
}

func (l DirLoader) Load(id string) (string, error) {
	name := id
	if !strings.HasSuffix(name, ".hint") {
		name += ".hint"
	}
	data, err := os.ReadFile(filepath.Join(l.Dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Registry resolves hint units and their includes. Parsed units are
// cached. A unit that fails to parse aborts only itself: when reached via
// an include its error is recorded and resolution continues; only the unit
// asked for directly fails the call. Include cycles always fail with
// CircularIncludeError.
type Registry struct {
	loader IncludeLoader
	cache  map[string]*core.HintFile
	errs   []error
}

// NewRegistry creates a registry over the given loader.
func NewRegistry(loader IncludeLoader) *Registry {
	return &Registry{loader: loader, cache: make(map[string]*core.HintFile)}
}

// File loads and parses one unit without resolving its includes.
func (r *Registry) File(id string) (*core.HintFile, error) {
	if hf, ok := r.cache[id]; ok {
		return hf, nil
	}
	src, err := r.loader.Load(id)
	if err != nil {
		return nil, fmt.Errorf("load hint unit %s: %w", id, err)
	}
	hf, err := Parse(id, src)
	if err != nil {
		return nil, fmt.Errorf("parse hint unit %s: %w", id, err)
	}
	r.cache[id] = hf
	return hf, nil
}

// Rules returns the rules of every transitively included unit, in include
// order, followed by the unit's own rules. Included rules are spliced in
// before the including unit's so later rules can refine earlier ones.
func (r *Registry) Rules(id string) ([]core.TransformationRule, error) {
	return r.resolve(id, make(map[string]bool), nil, true)
}

// Errors returns the include failures swallowed during resolution.
func (r *Registry) Errors() []error { return r.errs }

func (r *Registry) resolve(id string, resolving map[string]bool, chain []string, root bool) ([]core.TransformationRule, error) {
	if resolving[id] {
		cycle := append(append([]string{}, chain...), id)
		return nil, &core.CircularIncludeError{Cycle: cycle}
	}

	hf, err := r.File(id)
	if err != nil {
		if root {
			return nil, err
		}
		r.errs = append(r.errs, err)
		return nil, nil
	}

	resolving[id] = true
	defer delete(resolving, id)
	chain = append(chain, id)

	var rules []core.TransformationRule
	for _, inc := range hf.Includes {
		sub, err := r.resolve(inc, resolving, chain, false)
		if err != nil {
			return nil, err
		}
		rules = append(rules, sub...)
	}
	return append(rules, hf.Rules...), nil
}
