package mk

// Timestamp is a logical modification time. The zero value means
// "unknown / not yet probed"; after probing, a missing file is also
// represented as 0, the minimum value any real timestamp compares
// greater than.
type Timestamp int64

// Flag is a bit drawn from the set of per-Name flags described in
// § 3 of the data model, plus one bit (flagOnStack) private to the
// driver.
type Flag uint32

const (
	// FlagDone marks a Name that has already been evaluated during
	// this invocation; re-evaluation is suppressed.
	FlagDone Flag = 1 << iota
	// FlagDouble marks a Name declared with the `::` rule form.
	FlagDouble
	// FlagTarget marks a Name that appears as a target in some rule.
	FlagTarget
	// FlagPrecious protects a Name's file from remove_target.
	FlagPrecious
	// FlagSilent suppresses command echo for this Name's rules.
	FlagSilent
	// FlagIgnore treats command failure as non-fatal for this Name's rules.
	FlagIgnore
	// flagOnStack marks a Name currently being recursed into, so that
	// a second encounter before FlagDone is set can be reported as a
	// CycleDetected error instead of infinite recursion.
	flagOnStack
)

// Has reports whether all bits of want are set in f.
func (f Flag) Has(want Flag) bool { return f&want == want }

// Name is a unique, interned identifier for a target, a macro, or a
// pseudo-target such as .SUFFIXES. All references to the same
// identifier string share the same *Name (name table invariant 1).
type Name struct {
	name  string
	rules []*Rule
	time  Timestamp
	flags Flag

	// probed records whether modtime has already been consulted for
	// this Name during the current invocation, distinct from time
	// itself being the zero value (which is also a legitimate "missing
	// file" result).
	probed bool
}

// String returns the target's identifier.
func (n *Name) String() string { return n.name }

// Rules returns the rule bodies attached to this Name, in declaration
// order.
func (n *Name) Rules() []*Rule { return n.rules }

func (n *Name) setFlag(f Flag)      { n.flags |= f }
func (n *Name) clearFlag(f Flag)    { n.flags &^= f }
func (n *Name) hasFlag(f Flag) bool { return n.flags&f != 0 }

// Command is one unexpanded shell line belonging to a Rule. Modifier
// prefixes @, -, + are interpreted by the executor (§ 4.6), not
// stripped here: the text stored is exactly as written in the
// makefile, in whatever order its prefixes appeared.
type Command struct {
	Text string
}

// Rule is one rule body associated with a target Name (§ 3).
type Rule struct {
	Target *Name
	Deps   []*Name
	Cmds   []Command

	// Filename and Line identify where the rule was declared, for
	// diagnostics only.
	Filename string
	Line     int

	// ImplicitDep and Stem are set by the implicit rule resolver
	// (§ 4.5) when this rule's commands were synthesized from a suffix
	// transformation: ImplicitDep binds $<, Stem binds $*.
	ImplicitDep *Name
	Stem        string
}

// HasCmds reports whether the rule carries its own command block, as
// opposed to supplying only additional prerequisites.
func (r *Rule) HasCmds() bool { return len(r.Cmds) > 0 }
