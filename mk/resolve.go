package mk

import "strings"

// splitSuffix splits name into (stem, suffix) where suffix is the
// longest known suffix (from the declared .SUFFIXES list) that name
// ends with (§ 4.5 step 1). If none matches, stem is the full name
// and suffix is empty.
func splitSuffix(name string, suffixes []string) (stem, suffix string) {
	best := ""
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) && len(s) > len(best) {
			best = s
		}
	}
	if best == "" {
		return name, ""
	}
	return name[:len(name)-len(best)], best
}

// resolveImplicitInto attempts to synthesize a prerequisite and
// command block for r, whose target currently has none (§ 4.5). On
// success it fills r.Deps/r.Cmds/r.ImplicitDep/r.Stem and returns the
// implicit prerequisite Name. On failure it returns (nil, false) and
// leaves r unmodified: the caller surfaces DontKnowHow.
func (c *Context) resolveImplicitInto(r *Rule) (*Name, bool) {
	t := r.Target
	suffixes := c.Graph.Suffixes()
	stem, suffix := splitSuffix(t.name, suffixes)

	for _, sin := range suffixes {
		if sin == suffix {
			continue
		}
		candidateName := stem + sin
		transformName := sin + suffix
		tr, ok := c.Graph.Lookup(transformName)
		if !ok || len(tr.rules) == 0 || !tr.rules[0].HasCmds() {
			continue
		}
		if !c.candidateUsable(candidateName) {
			continue
		}
		candidate := c.Graph.Intern(candidateName)
		logf("implicit rule: %s <- %s via %s", t.name, candidateName, transformName)
		r.Deps = append(r.Deps, candidate)
		r.Cmds = tr.rules[0].Cmds
		r.ImplicitDep = candidate
		r.Stem = stem
		return candidate, true
	}

	if def, ok := c.Graph.Lookup(".DEFAULT"); ok && len(def.rules) > 0 {
		logf("implicit rule: %s <- .DEFAULT", t.name)
		r.Cmds = def.rules[0].Cmds
		r.Stem = stem
		return t, true
	}

	return nil, false
}

// candidateUsable reports whether a synthesized implicit source name
// either exists on disk or already has a rule of its own (§ 4.5 step
// 3's "either exists on disk or has its own rule").
func (c *Context) candidateUsable(name string) bool {
	if n, ok := c.Graph.Lookup(name); ok && (len(n.rules) > 0 || n.hasFlag(FlagTarget)) {
		return true
	}
	return c.FS.Modtime(name) != 0
}
