package tools

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newMaven(t *testing.T) (*MavenTool, string) {
	t.Helper()
	guard, dir := newGuard(t)
	term := &Terminal{
		WorkingDir:     dir,
		Timeout:        5 * time.Second,
		AllowExecution: true,
	}
	return NewMavenTool(guard, term, "mvn", nil), dir
}

func TestParseTestOutputSuccess(t *testing.T) {
	out := `[INFO] -------------------------------------------------------
[INFO]  T E S T S
[INFO] -------------------------------------------------------
[INFO] Running org.example.CalcTest
[INFO] Tests run: 3, Failures: 0, Errors: 0, Skipped: 1, Time elapsed: 0.05 s
[INFO] Tests run: 3, Failures: 0, Errors: 0, Skipped: 1
[INFO] BUILD SUCCESS
`
	report := parseTestOutput(out)
	if report.TestsRun != 3 || report.Failures != 0 || report.Skipped != 1 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if report.BuildMarker != "BUILD SUCCESS" {
		t.Fatalf("expected BUILD SUCCESS marker, got %q", report.BuildMarker)
	}
	if len(report.FailingTests) != 0 {
		t.Fatalf("expected no failing tests, got %v", report.FailingTests)
	}
	if !strings.Contains(report.Summary, "Tests run: 3") {
		t.Fatalf("expected summary with counts, got %q", report.Summary)
	}
}

func TestParseTestOutputFailures(t *testing.T) {
	out := `[INFO] Running org.example.CalcTest
[ERROR] Tests run: 2, Failures: 1, Errors: 0, Skipped: 0, Time elapsed: 0.04 s <<< FAILURE!
[ERROR]   CalcTest.add_basic:13 expected: <3> but was: <4>
[ERROR] Tests run: 2, Failures: 1, Errors: 0, Skipped: 0
[INFO] BUILD FAILURE
`
	report := parseTestOutput(out)
	if report.Failures != 1 {
		t.Fatalf("expected 1 failure, got %+v", report)
	}
	if len(report.FailingTests) != 1 || report.FailingTests[0] != "CalcTest.add_basic" {
		t.Fatalf("expected CalcTest.add_basic extracted, got %v", report.FailingTests)
	}
	if report.BuildMarker != "BUILD FAILURE" {
		t.Fatalf("expected BUILD FAILURE marker, got %q", report.BuildMarker)
	}
}

func TestParseTestOutputDeduplicatesFailingNames(t *testing.T) {
	out := `[ERROR]   CalcTest.add_basic:13 expected: <3> but was: <4>
[ERROR]   CalcTest.add_basic:13 expected: <3> but was: <4>
`
	report := parseTestOutput(out)
	if len(report.FailingTests) != 1 {
		t.Fatalf("expected deduplicated failures, got %v", report.FailingTests)
	}
}

func TestTailLines(t *testing.T) {
	long := strings.Repeat("line\n", 100)
	tail := tailLines(long, 60)
	if got := len(strings.Split(tail, "\n")); got != 60 {
		t.Fatalf("expected 60 lines, got %d", got)
	}

	short := "a\nb"
	if tailLines(short, 60) != short {
		t.Fatalf("short output should pass through unchanged")
	}
}

func TestMavenTestMissingDirIsProcessError(t *testing.T) {
	maven, _ := newMaven(t)
	_, err := maven.Test(context.Background(), "no-such-project")
	if err == nil {
		t.Fatalf("expected error")
	}
	if KindOf(err) != KindProcess {
		t.Fatalf("expected process_error, got %q", KindOf(err))
	}
}

func TestMavenTestMissingPomIsProcessError(t *testing.T) {
	maven, _ := newMaven(t)
	_, err := maven.Test(context.Background(), ".")
	if err == nil {
		t.Fatalf("expected error for missing pom.xml")
	}
	if KindOf(err) != KindProcess {
		t.Fatalf("expected process_error, got %q", KindOf(err))
	}
	if !strings.Contains(err.Error(), "pom.xml") {
		t.Fatalf("expected pom.xml mentioned, got %q", err.Error())
	}
}

func TestMavenTimeoutOutrunsTerminalTimeout(t *testing.T) {
	guard, dir := newGuard(t)
	term := &Terminal{
		WorkingDir:     dir,
		Timeout:        200 * time.Millisecond,
		AllowExecution: true,
	}
	maven := NewMavenTool(guard, term, "sh", []string{"-c", "sleep 1; echo done"})
	maven.Timeout = 10 * time.Second

	writeFile(t, dir, "pom.xml", "<project/>")
	report, err := maven.Test(context.Background(), ".")
	if err != nil {
		t.Fatalf("build timeout should come from the maven timeout, not the exec timeout: %v", err)
	}
	if !report.Success {
		t.Fatalf("expected success, got %+v", report)
	}
}

func TestMavenTestExecDisabled(t *testing.T) {
	guard, dir := newGuard(t)
	term := &Terminal{WorkingDir: dir, AllowExecution: false}
	maven := NewMavenTool(guard, term, "mvn", nil)

	writeFile(t, dir, "pom.xml", "<project/>")
	_, err := maven.Test(context.Background(), ".")
	if err == nil {
		t.Fatalf("expected disabled error")
	}
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation kind, got %q", KindOf(err))
	}
}
