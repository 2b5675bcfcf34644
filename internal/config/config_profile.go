package config

import (
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/stateful/mdedit/pkg/markdown"
)

// Profile enables a set of features for matching documents.
type Profile struct {
	Name string `yaml:"name" toml:"name"`

	// Pattern is a glob matched against the slash-separated document path.
	// "*" does not cross "/", "**" does. Empty matches every document.
	Pattern string `yaml:"pattern,omitempty" toml:"pattern,omitempty"`

	// Condition is an expression evaluated against [DocumentEnv].
	// It must return a boolean. Empty is always true.
	Condition string `yaml:"condition,omitempty" toml:"condition,omitempty"`

	// Features enabled for matching documents. Nil enables all features.
	Features []string `yaml:"features" toml:"features"`

	once       sync.Once
	glob       glob.Glob
	program    *vm.Program
	compileErr error
}

// DocumentEnv is the environment available to profile conditions.
//
// The `expr` tag is used to map the field to the corresponding variable.
// Without it, all variables start with capitalized letters.
type DocumentEnv struct {
	// Name is the slash-separated path of the document.
	Name  string `expr:"name"`
	Ext   string `expr:"ext"`
	Size  int    `expr:"size"`
	Lines int    `expr:"lines"`
}

func NewDocumentEnv(name, text string) DocumentEnv {
	name = filepath.ToSlash(name)
	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}
	return DocumentEnv{
		Name:  name,
		Ext:   path.Ext(name),
		Size:  len(text),
		Lines: lines,
	}
}

func (p *Profile) compile() error {
	p.once.Do(func() {
		if p.Pattern != "" {
			g, err := glob.Compile(p.Pattern, '/')
			if err != nil {
				p.compileErr = errors.Wrapf(err, "failed to compile pattern %q", p.Pattern)
				return
			}
			p.glob = g
		}

		if p.Condition != "" {
			program, err := expr.Compile(
				p.Condition,
				expr.Env(DocumentEnv{}),
				expr.AsBool(),
			)
			if err != nil {
				p.compileErr = errors.Wrap(err, "failed to compile condition")
				return
			}
			p.program = program
		}
	})
	return p.compileErr
}

func (p *Profile) validate() error {
	if err := p.compile(); err != nil {
		return err
	}
	_, err := markdown.ParseFeatures(p.Features)
	return err
}

// Match reports whether the profile applies to the document.
func (p *Profile) Match(env DocumentEnv) (bool, error) {
	if err := p.compile(); err != nil {
		return false, err
	}

	if p.glob != nil && !p.glob.Match(env.Name) {
		return false, nil
	}

	if p.program == nil {
		return true, nil
	}

	result, err := expr.Run(p.program, env)
	if err != nil {
		return false, errors.Wrap(err, "failed to run condition")
	}
	return result.(bool), nil
}
