package mk

import (
	"fmt"

	"github.com/golang/glog"
)

// logf emits a verbose trace message; the implicit rule resolver uses
// it to report which suffix transformation or .DEFAULT it chose. Gated the same way the
// teacher gates its own kati_log trace (glog.V), so a caller that
// never raises -v pays nothing but the branch. This is engine-internal
// diagnostics, not the user-facing contract, so it goes through glog
// rather than the Context's streams.
func logf(format string, args ...interface{}) {
	if glog.V(1) {
		glog.Infof(format, args...)
	}
}

// parseWarnf reports a non-fatal diagnostic raised while the rule
// graph is still being built (before any Context exists), such as the
// command-override notice in § 4.3. A rule-kind mismatch is not
// reported here: AddRule returns it as an error.
func parseWarnf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

// warnf prints a non-fatal, user-facing diagnostic to the invocation's
// error stream: "not built due to errors", "failed to build", the
// "removed" notice after an interrupted command. Unlike logf, this is
// part of the documented user-facing contract (§ 1: "user-facing
// messages are written to standard output/error"), so it goes through
// the Context's own Stderr rather than glog.
func (c *Context) warnf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stderr, format+"\n", args...)
}
