package tools

import "testing"

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	guard, dir := newGuard(t)
	term := &Terminal{WorkingDir: dir, AllowExecution: true}
	git := NewGitTool(guard, "git", "gh", "")
	git.AllowExec = true
	return NewRegistry(
		NewJavaScanner(guard),
		NewJUnitGenerator(guard),
		NewMavenTool(guard, term, "mvn", nil),
		NewCoverageTool(guard, ""),
		git,
	)
}

func TestValidateCallUnknownTool(t *testing.T) {
	reg := testRegistry(t)
	err := ValidateCall(reg, "not_a_tool", nil)
	if err == nil {
		t.Fatalf("expected unknown tool error")
	}
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation kind, got %q", KindOf(err))
	}
}

func TestValidateCallRequiredParam(t *testing.T) {
	reg := testRegistry(t)

	if err := ValidateCall(reg, "generate_basic_junit", map[string]interface{}{"class_name": "Calc"}); err == nil {
		t.Fatalf("expected missing method_name error")
	}
	if err := ValidateCall(reg, "generate_basic_junit", map[string]interface{}{
		"class_name": "Calc", "method_name": "add",
	}); err != nil {
		t.Fatalf("valid args rejected: %v", err)
	}
}

func TestValidateCallTypeChecks(t *testing.T) {
	reg := testRegistry(t)

	if err := ValidateCall(reg, "git_commit", map[string]interface{}{
		"message": 42,
	}); err == nil {
		t.Fatalf("expected string type error")
	}
	if err := ValidateCall(reg, "git_commit", map[string]interface{}{
		"message": "msg", "include_coverage": "yes",
	}); err == nil {
		t.Fatalf("expected boolean type error")
	}
	if err := ValidateCall(reg, "git_commit", map[string]interface{}{
		"message": "msg", "include_coverage": true,
	}); err != nil {
		t.Fatalf("valid args rejected: %v", err)
	}
}

func TestValidateCallEmptyRequiredString(t *testing.T) {
	reg := testRegistry(t)
	if err := ValidateCall(reg, "git_commit", map[string]interface{}{"message": ""}); err == nil {
		t.Fatalf("expected empty message rejection")
	}
}

func TestValidateCallDisabledGit(t *testing.T) {
	reg := testRegistry(t)
	reg.Git.AllowExec = false

	if err := ValidateCall(reg, "git_status", nil); err == nil {
		t.Fatalf("expected git disabled error")
	}
}

func TestValidateCallDisabledExec(t *testing.T) {
	reg := testRegistry(t)
	reg.Maven.Terminal.AllowExecution = false

	if err := ValidateCall(reg, "mvn_test", nil); err == nil {
		t.Fatalf("expected exec disabled error")
	}
}

func TestRegistrySchemaLookup(t *testing.T) {
	reg := testRegistry(t)

	if _, ok := reg.Schema("list_java_methods"); !ok {
		t.Fatalf("expected schema for list_java_methods")
	}
	if _, ok := reg.Schema("nope"); ok {
		t.Fatalf("unexpected schema for unknown tool")
	}
	if got := len(reg.Schemas()); got != 9 {
		t.Fatalf("expected 9 tool schemas, got %d", got)
	}
}
