package mk

import "strings"

// Graph owns the name table and the rule bodies attached to each
// Name: the rule graph of § 4.3, plus the pseudo-target bookkeeping
// (.SUFFIXES, .PRECIOUS, .SILENT, .IGNORE, .PHONY) that the makefile
// reader routes here instead of through AddRule. .DEFAULT is an
// ordinary target added through AddRule.
type Graph struct {
	symtab *symtab

	// suffixes is the declared .SUFFIXES list, in declaration order;
	// it drives the implicit rule resolver's candidate search order
	// (§ 4.5 step 2).
	suffixes []string
	phony    map[string]bool

	// defaultGoal is the first ordinary (non-dot-prefixed) target named
	// by a rule, used by the CLI front end (§ 4.9) when no goal target
	// is named on the command line.
	defaultGoal string
}

// NewGraph returns an empty rule graph.
func NewGraph() *Graph {
	return &Graph{
		symtab: newSymtab(),
		phony:  make(map[string]bool),
	}
}

// Intern returns the Name for s, creating it if this is the first
// reference (name table invariant 1).
func (g *Graph) Intern(s string) *Name { return g.symtab.intern(s) }

// Lookup returns the Name for s without creating one.
func (g *Graph) Lookup(s string) (*Name, bool) { return g.symtab.lookup(s) }

// DefaultGoal returns the first ordinary target named by a rule, and
// whether any such target has been seen yet. The makefile reader's
// pseudo-target lines (.SUFFIXES, .PHONY, and the like) never reach
// AddRule, so they never set this; an explicit .DEFAULT rule would,
// but its leading dot excludes it too, matching classical make.
func (g *Graph) DefaultGoal() (string, bool) {
	return g.defaultGoal, g.defaultGoal != ""
}

// AddRule appends a rule body to target's Name (§ 4.3). If double is
// true, target's FlagDouble is set; once set, every subsequent rule
// for that Name must also be double, or AddRule returns
// ErrRuleKindMismatch. Appending a non-empty cmds to a non-double
// target that already carries a rule with commands issues a warning
// and replaces the prior command block (last-wins, per the Open
// Question in § 9); an empty cmds merely extends the dependency list
// of a fresh rule.
func (g *Graph) AddRule(target string, deps []string, cmds []Command, double bool, filename string, line int) error {
	t := g.symtab.intern(target)
	t.setFlag(FlagTarget)

	if g.defaultGoal == "" && !strings.HasPrefix(target, ".") {
		g.defaultGoal = target
	}

	if len(t.rules) > 0 {
		alreadyDouble := t.hasFlag(FlagDouble)
		if alreadyDouble != double {
			return errRuleKindMismatch(target)
		}
	} else if double {
		t.setFlag(FlagDouble)
	}

	depNames := make([]*Name, len(deps))
	for i, d := range deps {
		depNames[i] = g.symtab.intern(d)
	}

	if !double && len(cmds) > 0 {
		for _, r := range t.rules {
			if r.HasCmds() {
				parseWarnf("overriding commands for target %q", target)
				r.Cmds = cmds
				r.Deps = append(r.Deps, depNames...)
				r.Filename, r.Line = filename, line
				return nil
			}
		}
	}

	r := &Rule{
		Target:   t,
		Deps:     depNames,
		Cmds:     cmds,
		Filename: filename,
		Line:     line,
	}
	t.rules = append(t.rules, r)
	return nil
}

// SetSuffixes replaces the .SUFFIXES list.
func (g *Graph) SetSuffixes(suffixes []string) { g.suffixes = suffixes }

// Suffixes returns the declared .SUFFIXES list.
func (g *Graph) Suffixes() []string { return g.suffixes }

// MarkPhony records names declared under .PHONY.
func (g *Graph) MarkPhony(names []string) {
	for _, n := range names {
		g.phony[n] = true
	}
}

// IsPhony reports whether name was declared under .PHONY.
func (g *Graph) IsPhony(name string) bool { return g.phony[name] }

// MarkPrecious sets FlagPrecious on each named Name (from a
// .PRECIOUS: line, which protects every target it names). An empty
// names list marks nothing.
func (g *Graph) MarkPrecious(names []string) {
	for _, n := range names {
		g.symtab.intern(n).setFlag(FlagPrecious)
	}
}

// MarkSilent sets FlagSilent on each named Name. An empty names list
// (a bare ".SILENT:") marks nothing; there is no global silent state.
func (g *Graph) MarkSilent(names []string) {
	for _, n := range names {
		g.symtab.intern(n).setFlag(FlagSilent)
	}
}

// MarkIgnore sets FlagIgnore on each named Name. An empty names list
// (a bare ".IGNORE:") marks nothing; there is no global ignore state.
func (g *Graph) MarkIgnore(names []string) {
	for _, n := range names {
		g.symtab.intern(n).setFlag(FlagIgnore)
	}
}
