package tools

import (
	"os"
	"path/filepath"
	"strings"
)

// PathGuard ensures tool operations stay within the configured project root.
type PathGuard struct {
	BaseDir string
}

// NewPathGuard constructs a guard rooted at baseDir (defaults to current working directory).
func NewPathGuard(baseDir string) (*PathGuard, error) {
	if baseDir == "" {
		var err error
		baseDir, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	return &PathGuard{BaseDir: absBase}, nil
}

// Resolve validates and returns an absolute path inside BaseDir.
// An empty path resolves to the base directory itself.
func (g *PathGuard) Resolve(p string) (string, error) {
	if p == "" || p == "." {
		return g.BaseDir, nil
	}
	clean := filepath.Clean(p)
	if filepath.IsAbs(clean) {
		return "", Validation("resolve", "absolute paths are not allowed: %s", p)
	}
	abs := filepath.Clean(filepath.Join(g.BaseDir, clean))

	if !strings.HasPrefix(abs, g.BaseDir+string(os.PathSeparator)) && abs != g.BaseDir {
		return "", Validation("resolve", "path %s escapes base directory", p)
	}
	return abs, nil
}

// ResolveDir resolves a path and verifies it is an existing directory.
func (g *PathGuard) ResolveDir(p string) (string, error) {
	abs, err := g.Resolve(p)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return "", NotFound("resolve", "path not found: %s", p)
	}
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", Validation("resolve", "%s is not a directory", p)
	}
	return abs, nil
}
