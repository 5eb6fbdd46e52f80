package mk

import "fmt"

// Make is the recursive evaluator of § 4.7: it walks n's dependency
// tree depth-first, compares modification times, chooses and runs
// rules, and propagates status. level is 0 for the top-level goal and
// increases by one per recursive call; it gates the "is up to date"
// message to the top-level invocation only.
//
// The returned estat is 0 on success/up-to-date, or 1 when either
// query mode determines a rebuild is needed or KeepGoing has tainted
// a subtree. A non-nil err always means the entire invocation must
// stop now: CycleDetected, DontKnowHow, ExecFailure, or a
// CommandFailed that KeepGoing did not absorb.
func (c *Context) Make(n *Name, level int) (int, error) {
	if n.hasFlag(FlagDone) {
		return 0, nil
	}
	if n.hasFlag(flagOnStack) {
		return 0, errCycleDetected(n.name)
	}
	n.setFlag(flagOnStack)
	defer n.clearFlag(flagOnStack)

	probe(c.FS, n)

	if !n.hasFlag(FlagDouble) {
		if err := c.ensureRule(n); err != nil {
			return 0, err
		}
	}

	dtime := Timestamp(1)
	var newer []string
	estat := 0
	query := c.Config.Query
	didSomething := false

	for _, r := range n.rules {
		if n.hasFlag(FlagDouble) && !r.HasCmds() {
			if _, ok := c.resolveImplicitInto(r); !ok {
				return 0, errDontKnowHow(n.name, "")
			}
		}
		if n.hasFlag(FlagDouble) && len(r.Deps) == 0 {
			// A double-colon rule with no prerequisites always runs.
			dtime = n.time
		}

		for _, p := range r.Deps {
			pstat, err := c.Make(p, level+1)
			if err != nil {
				return 0, err
			}
			estat |= pstat
			if !query && n.time <= p.time {
				newer = append(newer, p.name)
			}
			if p.time > dtime {
				dtime = p.time
			}
		}

		if n.hasFlag(FlagDouble) && !query && n.time <= dtime && estat == 0 {
			if err := c.rebuildRule(n, r, newer); err != nil {
				if c.Config.KeepGoing {
					estat = 1
				} else {
					return estat, err
				}
			}
			dtime = 1
			newer = nil
			didSomething = true
		}
	}

	n.setFlag(FlagDone)

	switch {
	case query:
		if n.time <= dtime {
			n.time = c.Now()
			return 1, nil
		}
		return 0, nil

	case !n.hasFlag(FlagDouble) && n.time <= dtime:
		if estat == 0 {
			if err := c.rebuildAll(n, newer); err != nil {
				if c.Config.KeepGoing {
					estat = 1
				} else {
					return estat, err
				}
			}
		} else {
			c.warnf("%q not built due to errors", n.name)
		}

	default:
		if level == 0 && !didSomething {
			fmt.Fprintf(c.Stdout, "'%s' is up to date\n", n.name)
		}
	}

	return estat, nil
}

// ensureRule implements § 4.7 step 3 for a non-DOUBLE target: if no
// attached rule carries commands, attempt implicit resolution; if n
// is not a declared target and does not exist on disk, fall back to
// .DEFAULT or fail with DontKnowHow.
func (c *Context) ensureRule(n *Name) error {
	hasCmds := false
	for _, r := range n.rules {
		if r.HasCmds() {
			hasCmds = true
			break
		}
	}
	if !hasCmds {
		nr := &Rule{Target: n}
		if _, ok := c.resolveImplicitInto(nr); ok {
			n.rules = append(n.rules, nr)
		}
	}

	if !n.hasFlag(FlagTarget) && n.time == 0 && len(n.rules) == 0 {
		if def, ok := c.Graph.Lookup(".DEFAULT"); ok && len(def.rules) > 0 {
			n.rules = append(n.rules, &Rule{Target: n, Cmds: def.rules[0].Cmds})
			return nil
		}
		return errDontKnowHow(n.name, "")
	}
	return nil
}

// rebuildRule runs one double-colon rule's own commands in isolation
// (§ 4.7 step 5's DOUBLE rebuild), binding automatic variables from
// that rule alone.
func (c *Context) rebuildRule(n *Name, r *Rule, newer []string) error {
	c.bindAutoFor(n, r, newer)
	defer c.Macros.unbindAuto()
	if err := c.runCommands(n, r.Cmds); err != nil {
		return err
	}
	c.stampBuilt(n)
	return nil
}

// rebuildAll runs the commands of every rule attached to a non-DOUBLE
// n that carries a command block (by construction there is at most
// one, per § 4.3's last-wins replacement policy), then stamps n as
// just built.
func (c *Context) rebuildAll(n *Name, newer []string) error {
	ran := false
	for _, r := range n.rules {
		if !r.HasCmds() {
			continue
		}
		ran = true
		c.bindAutoFor(n, r, newer)
		err := c.runCommands(n, r.Cmds)
		c.Macros.unbindAuto()
		if err != nil {
			return err
		}
	}
	if ran {
		c.stampBuilt(n)
	}
	return nil
}

// stampBuilt records that n was just brought up to date: under touch
// mode it updates the real file's timestamp; otherwise it advances
// n.time to the invocation's logical "now" (§ 4.7 step 7, invariant
// 5: timestamps are monotone within an invocation).
func (c *Context) stampBuilt(n *Name) {
	if c.Config.Touch && !c.Config.DryRun && !c.Config.Print {
		if err := c.FS.Touch(n.name); err != nil {
			c.warnf("touch %q: %v", n.name, err)
		}
	}
	now := c.Now()
	if now > n.time {
		n.time = now
	}
}

// bindAutoFor installs the automatic-variable overlay for one rule
// invocation (§ 3, § 4.2): $@ the target, $% always empty (archive
// members are not modeled), $? the newer-prerequisites list in
// declaration order, $< the rule's implicit prerequisite if any, $*
// its stem.
func (c *Context) bindAutoFor(n *Name, r *Rule, newer []string) {
	less := ""
	if r.ImplicitDep != nil {
		less = r.ImplicitDep.name
	}
	c.Macros.bindAuto(n.name, "", joinSpace(newer), less, r.Stem)
}

func joinSpace(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}

// MakeTarget is the top-level entry point (§ 6): it evaluates name
// against the current graph and returns the process-facing exit
// status (0 success, non-zero failure; query mode returns 1 for
// "rebuild needed").
func (c *Context) MakeTarget(name string) (int, error) {
	n := c.Graph.Intern(name)
	return c.Make(n, 0)
}
