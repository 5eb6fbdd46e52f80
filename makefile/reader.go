// Package makefile is the reader collaborator named in § 4.8: a
// small, line-oriented scanner that turns makefile text into the
// target/prerequisite/command records and macro bindings the mk
// engine's rule graph and macro store consume. Lexing and parsing
// makefile text is explicitly out of the core evaluation engine's
// correctness surface; this package exists so the repository is
// runnable end-to-end and so the core can be exercised through real
// makefile text in tests.
package makefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/dcastro-mk/gomk/mk"
)

// immediatePseudoTargets are pseudo-targets applied as soon as their
// line is seen, since they never carry a command block of their own:
// a bare list of names to fold into a flag or list. .DEFAULT is
// deliberately absent — it can carry real commands, so it flows
// through the ordinary pendingRule/commitRule path like any other
// target and is recognized by name when the rule graph resolves
// implicit rules.
var immediatePseudoTargets = map[string]bool{
	".SUFFIXES": true,
	".PRECIOUS": true,
	".SILENT":   true,
	".IGNORE":   true,
	".PHONY":    true,
}

// Reader loads makefile text into a rule graph and macro store.
type Reader struct {
	Graph  *mk.Graph
	Macros *mk.MacroStore

	// Open resolves a filename (for `include`) to a readable file. It
	// defaults to os.Open; tests substitute an in-memory lookup.
	Open func(name string) (io.ReadCloser, error)
}

// NewReader returns a Reader writing into the given graph and macro
// store.
func NewReader(g *mk.Graph, macros *mk.MacroStore) *Reader {
	return &Reader{
		Graph:  g,
		Macros: macros,
		Open:   func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
}

// ReadFile reads and parses filename, updating Graph and Macros in
// place.
func (r *Reader) ReadFile(filename string) error {
	f, err := r.Open(filename)
	if err != nil {
		return fmt.Errorf("%s: %v", filename, err)
	}
	defer f.Close()
	return r.Read(f, filename)
}

// Read parses makefile text from rd.
func (r *Reader) Read(rd io.Reader, filename string) error {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var pendingTarget *pendingRule
	lineno := 0

	flush := func() error {
		if pendingTarget != nil {
			if err := r.commitRule(pendingTarget); err != nil {
				return err
			}
			pendingTarget = nil
		}
		return nil
	}

	for sc.Scan() {
		lineno++
		line := sc.Text()

		for strings.HasSuffix(line, "\\") && sc.Scan() {
			lineno++
			line = line[:len(line)-1] + " " + strings.TrimLeft(sc.Text(), " \t")
		}

		if pendingTarget != nil && isCommandLine(line) {
			pendingTarget.cmds = append(pendingTarget.cmds, mk.Command{Text: line[1:]})
			continue
		}
		if err := flush(); err != nil {
			return err
		}

		stripped := stripComment(line)
		if strings.TrimSpace(stripped) == "" {
			continue
		}

		if rest, ok := cutPrefix(strings.TrimSpace(stripped), "include "); ok {
			for _, inc := range fields(rest) {
				if err := r.ReadFile(inc); err != nil {
					return err
				}
			}
			continue
		}

		if name, op, value, ok := splitAssign(stripped); ok {
			r.assign(name, op, value)
			continue
		}

		if target, prereqs, double, ok := splitRule(stripped); ok {
			if immediatePseudoTargets[target] {
				r.applyPseudo(target, fields(prereqs))
				continue
			}
			pendingTarget = &pendingRule{
				filename: filename,
				lineno:   lineno,
				targets:  fields(target),
				deps:     fields(prereqs),
				double:   double,
			}
			continue
		}

		glog.Warningf("%s:%d: unparseable line ignored: %q", filename, lineno, line)
	}
	if err := flush(); err != nil {
		return err
	}
	return sc.Err()
}

type pendingRule struct {
	filename string
	lineno   int
	targets  []string
	deps     []string
	double   bool
	cmds     []mk.Command
}

func (r *Reader) commitRule(p *pendingRule) error {
	for _, t := range p.targets {
		if err := r.Graph.AddRule(t, p.deps, p.cmds, p.double, p.filename, p.lineno); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) applyPseudo(target string, args []string) {
	switch target {
	case ".SUFFIXES":
		r.Graph.SetSuffixes(args)
	case ".PHONY":
		r.Graph.MarkPhony(args)
	case ".PRECIOUS":
		r.Graph.MarkPrecious(args)
	case ".SILENT":
		r.Graph.MarkSilent(args)
	case ".IGNORE":
		r.Graph.MarkIgnore(args)
	}
}

func (r *Reader) assign(name, op, value string) {
	switch op {
	case ":=", "=":
		r.Macros.Set(name, value, mk.OriginMakefile)
	case "+=":
		r.Macros.Append(name, value, mk.OriginMakefile)
	case "?=":
		r.Macros.SetDefault(name, value, mk.OriginMakefile)
	}
}

// ImportEnviron binds every process environment variable as a macro
// of OriginEnvironment. Classical make lets the makefile's own
// `=`/`:=` beat the environment, so this must be called before
// reading the makefile: Set's origin comparison then lets the
// subsequent OriginMakefile binding overwrite it.
func ImportEnviron(macros *mk.MacroStore) {
	for _, kv := range os.Environ() {
		i := strings.IndexByte(kv, '=')
		if i < 0 {
			continue
		}
		macros.Set(kv[:i], kv[i+1:], mk.OriginEnvironment)
	}
}

// ImportCommandLine binds NAME=value command-line arguments as
// macros, at the highest non-override precedence, and returns the
// remaining arguments (goal target names).
func ImportCommandLine(macros *mk.MacroStore, args []string) (targets []string) {
	for _, a := range args {
		if i := strings.IndexByte(a, '='); i >= 0 {
			macros.Set(a[:i], a[i+1:], mk.OriginCommandline)
			continue
		}
		targets = append(targets, a)
	}
	return targets
}

func isCommandLine(line string) bool {
	return len(line) > 0 && line[0] == '\t'
}

func stripComment(line string) string {
	esc := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			esc = !esc
			continue
		case '#':
			if !esc {
				return line[:i]
			}
		}
		esc = false
	}
	return line
}

// splitRule recognizes `targets: prereqs` and `targets:: prereqs`.
func splitRule(line string) (target, prereqs string, double bool, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false, false
	}
	target = strings.TrimSpace(line[:i])
	if target == "" {
		return "", "", false, false
	}
	rest := line[i+1:]
	if strings.HasPrefix(rest, ":") {
		double = true
		rest = rest[1:]
	}
	// The caller tries splitAssign first, so a `name := value` line
	// never reaches here; this guards the rest of a bare `name:` whose
	// first colon happens to be immediately followed by '='.
	if strings.HasPrefix(rest, "=") {
		return "", "", false, false
	}
	return target, strings.TrimSpace(rest), double, true
}

// splitAssign recognizes NAME = value, NAME := value, NAME ?= value,
// NAME += value.
func splitAssign(line string) (name, op, value string, ok bool) {
	for _, candidate := range []string{":=", "?=", "+=", "="} {
		i := strings.Index(line, candidate)
		if i < 0 {
			continue
		}
		name = strings.TrimSpace(line[:i])
		if name == "" || strings.ContainsAny(name, " \t:") {
			continue
		}
		return name, candidate, strings.TrimSpace(line[i+len(candidate):]), true
	}
	return "", "", "", false
}

func fields(s string) []string {
	return strings.Fields(s)
}

func cutPrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return "", false
}
