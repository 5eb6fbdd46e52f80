package mk

import (
	"io"
	"os"
)

// Config is the set of configuration flags enumerated in § 6, owned
// by the CLI front end and read-only from the engine's point of view.
type Config struct {
	DryRun    bool // -n: print, do not run
	Print     bool // -p: print, skip side effects
	Silent    bool // -s: suppress echo globally
	Ignore    bool // -i: treat all failures as non-fatal
	KeepGoing bool // -k: continue with independent subtrees after failure
	Query     bool // -q: evaluate without executing
	Touch     bool // -t: touch instead of execute
}

// Context is the explicit evaluation context threaded through the
// driver, resolver, and executor in place of process-wide globals
// (design note § 9: "Global mutable state ... should be threaded
// through an explicit evaluation context"). The CLI front end builds
// one Context and uses it for every goal target of the invocation.
type Context struct {
	Graph  *Graph
	Macros *MacroStore
	FS     FileSystem
	Shell  ShellRunner

	Config Config

	Stdout io.Writer
	Stderr io.Writer

	// Now is the logical "current time" used to stamp freshly built
	// targets (§ 4.7 step 7) and query-mode probes (step 7). Exposed
	// as a field, not time.Now(), so tests can drive it deterministically.
	Now func() Timestamp
}

// NewContext builds a Context over the given filesystem and shell
// collaborators, writing to the process's standard output and error
// and reading the wall clock.
func NewContext(g *Graph, macros *MacroStore, fs FileSystem, sh ShellRunner, cfg Config) *Context {
	return &Context{
		Graph:  g,
		Macros: macros,
		FS:     fs,
		Shell:  sh,
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Now:    realNow,
	}
}
