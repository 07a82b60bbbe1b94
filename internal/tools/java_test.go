package tools

import (
	"os"
	"path/filepath"
	"testing"
)

func newGuard(t *testing.T) (*PathGuard, string) {
	t.Helper()
	dir := t.TempDir()
	guard, err := NewPathGuard(dir)
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	return guard, dir
}

func writeFile(t *testing.T, dir string, rel string, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestListMethodsFindsDeclarationsInOrder(t *testing.T) {
	guard, dir := newGuard(t)
	src := filepath.Join(dir, "src", "main", "java", "org", "example")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	calc := `package org.example;

public class Calc {
    public int add(int a, int b) {
        if (a > 0) {
            return a + b;
        }
        return b;
    }

    private int sub(int a, int b) {
        return a - b;
    }
}
`
	if err := os.WriteFile(filepath.Join(src, "Calc.java"), []byte(calc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	scanner := NewJavaScanner(guard)
	methods, err := scanner.ListMethods(".")
	if err != nil {
		t.Fatalf("list methods: %v", err)
	}

	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d: %v", len(methods), methods)
	}
	if methods[0].Method != "add" || methods[1].Method != "sub" {
		t.Fatalf("expected declaration order add, sub; got %v", methods)
	}
	for _, m := range methods {
		if m.Class != "Calc" {
			t.Fatalf("expected class Calc, got %q", m.Class)
		}
	}
}

func TestListMethodsSkipsControlFlowKeywords(t *testing.T) {
	guard, dir := newGuard(t)
	src := `class Loopy {
    public void run() {
        for (int i = 0; i < 3; i++) {
        }
        while (true) {
        }
    }
}
`
	if err := os.WriteFile(filepath.Join(dir, "Loopy.java"), []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	methods, err := NewJavaScanner(guard).ListMethods(".")
	if err != nil {
		t.Fatalf("list methods: %v", err)
	}
	if len(methods) != 1 || methods[0].Method != "run" {
		t.Fatalf("expected only run, got %v", methods)
	}
}

func TestListMethodsEmptyDirReturnsEmpty(t *testing.T) {
	guard, _ := newGuard(t)
	methods, err := NewJavaScanner(guard).ListMethods(".")
	if err != nil {
		t.Fatalf("list methods: %v", err)
	}
	if len(methods) != 0 {
		t.Fatalf("expected no methods, got %v", methods)
	}
}

func TestListMethodsMissingDirIsNotFound(t *testing.T) {
	guard, _ := newGuard(t)
	_, err := NewJavaScanner(guard).ListMethods("no-such-dir")
	if err == nil {
		t.Fatalf("expected error")
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found kind, got %q", KindOf(err))
	}
}

func TestListMethodsIgnoresNonJavaFiles(t *testing.T) {
	guard, dir := newGuard(t)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("public void fake() {"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	methods, err := NewJavaScanner(guard).ListMethods(".")
	if err != nil {
		t.Fatalf("list methods: %v", err)
	}
	if len(methods) != 0 {
		t.Fatalf("expected no methods from txt file, got %v", methods)
	}
}
