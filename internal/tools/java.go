package tools

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Method is a single discovered method declaration.
type Method struct {
	File   string `json:"file"`
	Class  string `json:"class"`
	Method string `json:"method"`
}

// JavaScanner lists method declarations in Java sources via pattern matching.
// It deliberately does not parse the full grammar; the scan mirrors what a
// reviewer grepping for signatures would find.
type JavaScanner struct {
	guard *PathGuard
}

// NewJavaScanner builds a scanner rooted at the project guard.
func NewJavaScanner(guard *PathGuard) *JavaScanner {
	return &JavaScanner{guard: guard}
}

var (
	classRe  = regexp.MustCompile(`\bclass\s+([A-Za-z_]\w*)`)
	methodRe = regexp.MustCompile(`(public|protected|private|\s) +[A-Za-z_<>\[\]]+\s+([a-zA-Z_]\w*)\s*\(`)
)

// control-flow keywords that the naive pattern would otherwise match
var javaKeywords = map[string]struct{}{
	"if": {}, "for": {}, "while": {}, "switch": {}, "catch": {},
}

// ListMethods recursively scans *.java files under dir and returns discovered
// methods in file order, declaration order within each file.
func (s *JavaScanner) ListMethods(dir string) ([]Method, error) {
	root, err := s.guard.ResolveDir(dir)
	if err != nil {
		return nil, err
	}

	results := make([]Method, 0, 16)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		text := string(data)

		class := ""
		if m := classRe.FindStringSubmatch(text); m != nil {
			class = m[1]
		}

		rel, _ := filepath.Rel(s.guard.BaseDir, path)
		for _, m := range methodRe.FindAllStringSubmatch(text, -1) {
			name := m[2]
			if _, ok := javaKeywords[name]; ok {
				continue
			}
			results = append(results, Method{File: rel, Class: class, Method: name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
