package mk

import "testing"

func TestMacroExpandBasic(t *testing.T) {
	s := NewMacroStore()
	s.Set("CC", "gcc", OriginMakefile)
	got, err := s.Expand("$(CC) -c foo.c")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "gcc -c foo.c" {
		t.Errorf("Expand = %q, want %q", got, "gcc -c foo.c")
	}
}

func TestMacroExpandSingleChar(t *testing.T) {
	s := NewMacroStore()
	s.Set("X", "yes", OriginMakefile)
	got, err := s.Expand("a$Xb")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "ayesb" {
		t.Errorf("Expand = %q, want %q", got, "ayesb")
	}
}

func TestMacroExpandUndefinedIsEmpty(t *testing.T) {
	s := NewMacroStore()
	got, err := s.Expand("[$(NOPE)]")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "[]" {
		t.Errorf("Expand = %q, want %q", got, "[]")
	}
}

func TestMacroExpandDollarDollar(t *testing.T) {
	s := NewMacroStore()
	got, err := s.Expand("$$HOME")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "$HOME" {
		t.Errorf("Expand = %q, want %q", got, "$HOME")
	}
}

func TestMacroExpandNested(t *testing.T) {
	s := NewMacroStore()
	s.Set("A", "B", OriginMakefile)
	s.Set("B", "inner", OriginMakefile)
	got, err := s.Expand("$($(A))")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "inner" {
		t.Errorf("Expand = %q, want %q", got, "inner")
	}
}

func TestMacroExpandRecursiveDepthBound(t *testing.T) {
	s := NewMacroStore()
	s.Set("A", "$(A)", OriginMakefile)
	_, err := s.Expand("$(A)")
	if err == nil {
		t.Fatal("Expand of self-referential macro: want error, got nil")
	}
	me, ok := err.(*Error)
	if !ok || me.Kind != ErrRecursiveMacro {
		t.Errorf("err = %v, want ErrRecursiveMacro", err)
	}
}

func TestMacroSetPrecedence(t *testing.T) {
	s := NewMacroStore()
	s.Set("CC", "gcc", OriginEnvironment)
	s.Set("CC", "cc", OriginMakefile)
	v, _ := s.Lookup("CC")
	if v != "cc" {
		t.Errorf("Lookup(CC) = %q, want %q (makefile beats environment)", v, "cc")
	}
	// A lower-precedence write must not clobber a higher one.
	s.Set("CC", "weaker", OriginEnvironment)
	v, _ = s.Lookup("CC")
	if v != "cc" {
		t.Errorf("Lookup(CC) after lower-origin Set = %q, want unchanged %q", v, "cc")
	}
}

func TestMacroSetDefault(t *testing.T) {
	s := NewMacroStore()
	s.SetDefault("CC", "cc", OriginDefault)
	s.SetDefault("CC", "gcc", OriginMakefile)
	v, _ := s.Lookup("CC")
	if v != "cc" {
		t.Errorf("Lookup(CC) = %q, want first-set %q (SetDefault must not overwrite)", v, "cc")
	}
}

func TestMacroAppend(t *testing.T) {
	s := NewMacroStore()
	s.Set("FLAGS", "-Wall", OriginMakefile)
	s.Append("FLAGS", "-O2", OriginMakefile)
	v, _ := s.Lookup("FLAGS")
	if v != "-Wall -O2" {
		t.Errorf("Lookup(FLAGS) = %q, want %q", v, "-Wall -O2")
	}
}

func TestMacroBindAutoOverlayAndUnbind(t *testing.T) {
	s := NewMacroStore()
	s.Set("@", "persisted", OriginMakefile)
	s.bindAuto("target.o", "", "a.c b.c", "a.c", "a")
	got, err := s.Expand("$@ $? $< $*")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "target.o a.c b.c a.c a" {
		t.Errorf("Expand = %q, want %q", got, "target.o a.c b.c a.c a")
	}
	s.unbindAuto()
	v, _ := s.Lookup("@")
	if v != "persisted" {
		t.Errorf("Lookup(@) after unbindAuto = %q, want the persistent binding %q", v, "persisted")
	}
}
