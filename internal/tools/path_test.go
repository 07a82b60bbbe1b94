package tools

import (
	"testing"
)

func TestResolveStaysInsideBase(t *testing.T) {
	guard, _ := newGuard(t)

	if _, err := guard.Resolve("sub/dir"); err != nil {
		t.Fatalf("relative path should resolve: %v", err)
	}
	if _, err := guard.Resolve(""); err != nil {
		t.Fatalf("empty path should resolve to base: %v", err)
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	guard, _ := newGuard(t)

	if _, err := guard.Resolve("../outside"); err == nil {
		t.Fatalf("expected escape rejection")
	}
	if _, err := guard.Resolve("/etc/passwd"); err == nil {
		t.Fatalf("expected absolute path rejection")
	}
}

func TestResolveDirRequiresDirectory(t *testing.T) {
	guard, dir := newGuard(t)
	writeFile(t, dir, "plain.txt", "x")

	if _, err := guard.ResolveDir("plain.txt"); err == nil {
		t.Fatalf("expected rejection of non-directory")
	}
	if _, err := guard.ResolveDir("missing"); KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found for missing dir, got %v", err)
	}
}
