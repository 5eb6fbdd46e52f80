// Command gomk is a drop-in build driver in the tradition of
// classical make: it reads a makefile, decides which of the goal
// targets named on the command line are out of date, and runs their
// commands.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/dcastro-mk/gomk/host"
	"github.com/dcastro-mk/gomk/makefile"
	"github.com/dcastro-mk/gomk/mk"
)

var (
	makefileFlag string
	dryRunFlag   bool
	printFlag    bool
	silentFlag   bool
	ignoreFlag   bool
	keepGoing    bool
	questFlag    bool
	touchFlag    bool
)

func parseFlags() []string {
	flag.StringVar(&makefileFlag, "f", "Makefile", "read FILE as the makefile")
	flag.BoolVar(&dryRunFlag, "n", false, "print commands without running them")
	flag.BoolVar(&printFlag, "p", false, "print commands, skipping all other side effects")
	flag.BoolVar(&silentFlag, "s", false, "suppress command echo")
	flag.BoolVar(&ignoreFlag, "i", false, "ignore nonzero exit status")
	flag.BoolVar(&keepGoing, "k", false, "keep going after a command fails")
	flag.BoolVar(&questFlag, "q", false, "question mode: exit 1 if anything would be rebuilt")
	flag.BoolVar(&touchFlag, "t", false, "touch targets instead of running their commands")
	flag.Parse()
	return flag.Args()
}

func main() {
	os.Exit(run())
}

func run() int {
	args := parseFlags()
	defer glog.Flush()

	g := mk.NewGraph()
	macros := mk.NewMacroStore()
	makefile.ImportEnviron(macros)

	r := makefile.NewReader(g, macros)
	if err := r.ReadFile(makefileFlag); err != nil {
		fmt.Fprintf(os.Stderr, "gomk: %v\n", err)
		return 2
	}

	targets := makefile.ImportCommandLine(macros, args)
	if len(targets) == 0 {
		if goal, ok := g.DefaultGoal(); ok {
			targets = []string{goal}
		}
	}

	cfg := mk.Config{
		DryRun:    dryRunFlag,
		Print:     printFlag,
		Silent:    silentFlag,
		Ignore:    ignoreFlag,
		KeepGoing: keepGoing,
		Query:     questFlag,
		Touch:     touchFlag,
	}
	shellPath, _ := macros.Lookup("SHELL")
	ctx := mk.NewContext(g, macros, host.FS{}, host.Shell{Path: shellPath}, cfg)

	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "gomk: no target specified and no default target found")
		return 2
	}

	exit := 0
	for _, t := range targets {
		status, err := ctx.MakeTarget(t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gomk: *** %v\n", err)
			if cf, ok := err.(*mk.CommandFailed); ok {
				return cf.Status
			}
			return 2
		}
		if status != 0 {
			exit = status
		}
	}
	return exit
}
