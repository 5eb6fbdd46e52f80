package mk

import "testing"

func TestAddRuleSimple(t *testing.T) {
	g := NewGraph()
	err := g.AddRule("all", []string{"a", "b"}, []Command{{Text: "echo hi"}}, false, "Makefile", 1)
	if err != nil {
		t.Fatalf("AddRule: %v", err)
	}
	n, ok := g.Lookup("all")
	if !ok {
		t.Fatal("all was not interned")
	}
	if !n.hasFlag(FlagTarget) {
		t.Error("all should carry FlagTarget")
	}
	if len(n.rules) != 1 || len(n.rules[0].Deps) != 2 {
		t.Fatalf("rules = %+v, want one rule with two deps", n.rules)
	}
}

func TestAddRuleDoubleColonAccumulates(t *testing.T) {
	g := NewGraph()
	if err := g.AddRule("log", nil, []Command{{Text: "echo a"}}, true, "Makefile", 1); err != nil {
		t.Fatalf("AddRule #1: %v", err)
	}
	if err := g.AddRule("log", nil, []Command{{Text: "echo b"}}, true, "Makefile", 2); err != nil {
		t.Fatalf("AddRule #2: %v", err)
	}
	n, _ := g.Lookup("log")
	if len(n.rules) != 2 {
		t.Fatalf("rules = %d, want 2 independent double-colon rules", len(n.rules))
	}
}

func TestAddRuleKindMismatch(t *testing.T) {
	g := NewGraph()
	if err := g.AddRule("x", nil, []Command{{Text: "echo a"}}, false, "Makefile", 1); err != nil {
		t.Fatalf("AddRule #1: %v", err)
	}
	err := g.AddRule("x", nil, []Command{{Text: "echo b"}}, true, "Makefile", 2)
	if err == nil {
		t.Fatal("mixing : and :: for the same target: want error, got nil")
	}
	me, ok := err.(*Error)
	if !ok || me.Kind != ErrRuleKindMismatch {
		t.Errorf("err = %v, want ErrRuleKindMismatch", err)
	}
}

func TestAddRuleLastWinsForCommands(t *testing.T) {
	g := NewGraph()
	if err := g.AddRule("x", []string{"a"}, []Command{{Text: "echo first"}}, false, "Makefile", 1); err != nil {
		t.Fatalf("AddRule #1: %v", err)
	}
	if err := g.AddRule("x", []string{"b"}, []Command{{Text: "echo second"}}, false, "Makefile", 2); err != nil {
		t.Fatalf("AddRule #2: %v", err)
	}
	n, _ := g.Lookup("x")
	if len(n.rules) != 1 {
		t.Fatalf("rules = %d, want the two command blocks merged into one rule", len(n.rules))
	}
	r := n.rules[0]
	if len(r.Cmds) != 1 || r.Cmds[0].Text != "echo second" {
		t.Errorf("Cmds = %+v, want the later command block to win", r.Cmds)
	}
	if len(r.Deps) != 2 {
		t.Errorf("Deps = %+v, want both rules' prerequisites accumulated", r.Deps)
	}
}

func TestAddRuleDepsOnlyExtendsWithoutReplacing(t *testing.T) {
	g := NewGraph()
	if err := g.AddRule("x", []string{"a"}, []Command{{Text: "echo cmds"}}, false, "Makefile", 1); err != nil {
		t.Fatalf("AddRule #1: %v", err)
	}
	if err := g.AddRule("x", []string{"b"}, nil, false, "Makefile", 2); err != nil {
		t.Fatalf("AddRule #2: %v", err)
	}
	n, _ := g.Lookup("x")
	if len(n.rules) != 2 {
		t.Fatalf("rules = %d, want the deps-only rule appended separately", len(n.rules))
	}
}

func TestPhonyAndPseudoMarks(t *testing.T) {
	g := NewGraph()
	g.MarkPhony([]string{"clean", "test"})
	if !g.IsPhony("clean") || !g.IsPhony("test") {
		t.Error("clean and test should be phony")
	}
	if g.IsPhony("all") {
		t.Error("all was never marked phony")
	}

	g.MarkPrecious([]string{"out.bin"})
	n := g.Intern("out.bin")
	if !n.hasFlag(FlagPrecious) {
		t.Error("out.bin should carry FlagPrecious")
	}

	g.MarkSilent([]string{"quiet"})
	if !g.Intern("quiet").hasFlag(FlagSilent) {
		t.Error("quiet should carry FlagSilent")
	}

	g.MarkIgnore([]string{"flaky"})
	if !g.Intern("flaky").hasFlag(FlagIgnore) {
		t.Error("flaky should carry FlagIgnore")
	}
}
