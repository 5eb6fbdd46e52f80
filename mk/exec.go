package mk

import (
	"bytes"
	"fmt"
	"strings"
)

// cmdModifiers accumulates the @, -, + prefixes stripped from one
// command line (§ 3's Command, § 4.6 step 2).
type cmdModifiers struct {
	silent bool // @: silent for this command
	ignore bool // -: ignore non-zero exit status
	always bool // +: execute even under dry-run/touch
}

// stripModifiers consumes leading @, -, + characters (and the
// whitespace between them), in any order, from the front of an
// already-expanded command line.
func stripModifiers(s string) (cmdModifiers, string) {
	var m cmdModifiers
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return m, s
		}
		switch s[0] {
		case '@':
			m.silent = true
		case '-':
			m.ignore = true
		case '+':
			m.always = true
		default:
			return m, s
		}
		s = s[1:]
	}
}

// runCommands expands, prints, and runs every Command of cmds against
// target, in declaration order (§ 4.6), stopping at the first error:
// ExecFailure, or CommandFailed when neither a per-command `-`, the
// global Ignore flag, nor the target's FlagIgnore absorbs the failure.
// KeepGoing is not consulted here; the driver decides whether a
// returned CommandFailed aborts the invocation.
func (c *Context) runCommands(target *Name, cmds []Command) error {
	for _, cmd := range cmds {
		if err := c.runCommand(target, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) runCommand(target *Name, cmd Command) error {
	expanded, err := c.Macros.Expand(cmd.Text)
	if err != nil {
		return err
	}
	mods, text := stripModifiers(expanded)

	// A line that is only modifiers and whitespace is a no-op but
	// still "counts" as a command (§ 8 boundary behaviors): nothing to
	// echo or run, but we still consumed one Command.
	if text == "" {
		return nil
	}

	silentForThis := mods.silent
	globalSilent := c.Config.Silent
	targetSilent := target.hasFlag(FlagSilent)
	touchNoOverride := c.Config.Touch && !mods.always
	echo := !(silentForThis || globalSilent || targetSilent || touchNoOverride)

	dryNoOverride := c.Config.DryRun && !mods.always
	execute := !(dryNoOverride || touchNoOverride || c.Config.Print)

	if echo {
		fmt.Fprintln(c.Stdout, text)
	}

	if !execute {
		return nil
	}

	ignoreFailure := mods.ignore || c.Config.Ignore || target.hasFlag(FlagIgnore)
	wrapped := text
	if !ignoreFailure {
		wrapped = "set -e; " + text
	}

	var out bytes.Buffer
	status := c.Shell.Run(wrapped, &out)
	c.Stdout.Write(out.Bytes())

	switch status.Kind {
	case RunUnreachable:
		return errExecFailure(target.name, fmt.Errorf("shell unreachable"))
	case RunExited:
		if status.Code == 0 {
			return nil
		}
		if ignoreFailure {
			c.warnf("[%s] Error %d (ignored)", target.name, status.Code)
			return nil
		}
		c.warnf("failed to build %q", target.name)
		return &CommandFailed{Target: target.name, Status: status.Code}
	case RunInterrupted:
		c.warnf("failed to build %q", target.name)
		c.removeTarget(target)
		if ignoreFailure {
			return nil
		}
		return &CommandFailed{Target: target.name, Status: 128 + status.Signal}
	default:
		return errExecFailure(target.name, fmt.Errorf("unknown shell status"))
	}
}

// removeTarget deletes target's file after an interrupted command, to
// avoid leaving a partially-written output (§ 4.6). It is a no-op
// under dry-run, print-only, when the target is PRECIOUS, or when
// unlinking fails.
func (c *Context) removeTarget(target *Name) {
	if c.Config.DryRun || c.Config.Print {
		return
	}
	if target.hasFlag(FlagPrecious) {
		return
	}
	if err := c.FS.Unlink(target.name); err != nil {
		return
	}
	c.warnf("*** removed %s", target.name)
}
