package tools

// Schema describes a tool for JSON schema/tool-calling.
type Schema struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Parameters  []SchemaField `json:"parameters"`
}

// SchemaField describes a single parameter.
type SchemaField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Schemas provides descriptors for available tools.
func (r *Registry) Schemas() []Schema {
	s := []Schema{
		{
			Name:        "list_java_methods",
			Description: "Recursively list Java method declarations under a directory",
			Parameters: []SchemaField{
				{Name: "dir", Type: "string", Description: "Directory relative to the project root (default .)", Required: false},
			},
		},
		{
			Name:        "generate_basic_junit",
			Description: "Generate a basic JUnit 5 test skeleton for a class and method; writes it into the project when dir is given",
			Parameters: []SchemaField{
				{Name: "class_name", Type: "string", Description: "Java class under test", Required: true},
				{Name: "method_name", Type: "string", Description: "Method under test", Required: true},
				{Name: "dir", Type: "string", Description: "Project directory to write the test into (optional)", Required: false},
			},
		},
		{
			Name:        "mvn_test",
			Description: "Run the Maven test phase in a project directory and summarize the output",
			Parameters: []SchemaField{
				{Name: "dir", Type: "string", Description: "Project directory containing pom.xml (default .)", Required: false},
			},
		},
		{
			Name:        "coverage_summary",
			Description: "Read the JaCoCo report from a prior test run and extract line/branch percentages",
			Parameters: []SchemaField{
				{Name: "dir", Type: "string", Description: "Project directory (default .)", Required: false},
			},
		},
	}
	if r.Git != nil {
		s = append(s,
			Schema{
				Name:        "git_status",
				Description: "Show working tree status (git status --short)",
				Parameters: []SchemaField{
					{Name: "dir", Type: "string", Description: "Repository directory (default .)", Required: false},
				},
			},
			Schema{
				Name:        "git_add_all",
				Description: "Stage all changes (git add -A)",
				Parameters: []SchemaField{
					{Name: "dir", Type: "string", Description: "Repository directory (default .)", Required: false},
				},
			},
			Schema{
				Name:        "git_commit",
				Description: "Commit staged changes; optionally stage the coverage artifact first",
				Parameters: []SchemaField{
					{Name: "message", Type: "string", Description: "Commit message", Required: true},
					{Name: "include_coverage", Type: "boolean", Description: "Force-stage the coverage report before committing", Required: false},
					{Name: "dir", Type: "string", Description: "Repository directory (default .)", Required: false},
				},
			},
			Schema{
				Name:        "git_push",
				Description: "Push the current branch to the configured remote",
				Parameters: []SchemaField{
					{Name: "dir", Type: "string", Description: "Repository directory (default .)", Required: false},
				},
			},
			Schema{
				Name:        "git_pull_request",
				Description: "Open a pull request for the current branch (gh pr create --fill)",
				Parameters: []SchemaField{
					{Name: "title", Type: "string", Description: "Pull request title (optional)", Required: false},
					{Name: "dir", Type: "string", Description: "Repository directory (default .)", Required: false},
				},
			},
		)
	}
	return s
}
