package tools

// Registry exposes shared tool instances.
type Registry struct {
	Java     *JavaScanner
	JUnit    *JUnitGenerator
	Maven    *MavenTool
	Coverage *CoverageTool
	Git      *GitTool
}

// NewRegistry builds a registry from instantiated tools.
func NewRegistry(java *JavaScanner, junit *JUnitGenerator, maven *MavenTool, coverage *CoverageTool, git *GitTool) *Registry {
	return &Registry{Java: java, JUnit: junit, Maven: maven, Coverage: coverage, Git: git}
}

// Schema returns schema for a given tool name if present.
func (r *Registry) Schema(name string) (Schema, bool) {
	for _, s := range r.Schemas() {
		if s.Name == name {
			return s, true
		}
	}
	return Schema{}, false
}
