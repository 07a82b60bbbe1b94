package tools

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MavenTool runs the external build tool's test phase and summarizes output.
type MavenTool struct {
	Terminal *Terminal
	Command  string
	Args     []string
	// Timeout, when set, bounds a test run instead of the terminal's shorter
	// general exec timeout. Builds routinely outlive ordinary commands.
	Timeout time.Duration
	guard   *PathGuard
}

// NewMavenTool builds a maven runner rooted at the project guard.
func NewMavenTool(guard *PathGuard, term *Terminal, command string, args []string) *MavenTool {
	if command == "" {
		command = "mvn"
	}
	if len(args) == 0 {
		args = []string{"-q", "-e", "test"}
	}
	return &MavenTool{Terminal: term, Command: command, Args: args, guard: guard}
}

// TestReport is the structured result of a test run.
type TestReport struct {
	Success      bool     `json:"success"`
	ExitCode     int      `json:"exit_code"`
	Output       string   `json:"output"` // tail of combined stdout+stderr
	Summary      string   `json:"summary"`
	TestsRun     int      `json:"tests_run"`
	Failures     int      `json:"failures"`
	Errors       int      `json:"errors"`
	Skipped      int      `json:"skipped"`
	FailingTests []string `json:"failing_tests,omitempty"`
	BuildMarker  string   `json:"build_marker,omitempty"`
}

const outputTailLines = 60

// Test invokes the configured maven command in dir and parses the output.
// A failing build is not an error: the report carries the failure. Errors are
// reserved for an invalid working directory or an absent build tool.
func (m *MavenTool) Test(ctx context.Context, dir string) (TestReport, error) {
	projDir, err := m.guard.Resolve(dir)
	if err != nil {
		return TestReport{}, err
	}
	if _, err := os.Stat(projDir); err != nil {
		return TestReport{}, ProcessFailure("mvn_test", errors.New("working directory invalid: "+dir), "", -1)
	}
	if _, err := os.Stat(filepath.Join(projDir, "pom.xml")); err != nil {
		return TestReport{}, ProcessFailure("mvn_test", errors.New("no pom.xml in "+dir), "", -1)
	}

	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	res, err := m.Terminal.ExecIn(ctx, projDir, m.Command, m.Args...)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, exec.ErrNotFound) {
			return TestReport{}, ProcessFailure("mvn_test", errors.New("build tool not found: "+m.Command), res.Stderr, -1)
		}
		if KindOf(err) == KindValidation {
			return TestReport{}, err
		}
		// non-zero exit: the build ran and failed, keep going with the output
	}

	report := parseTestOutput(res.Combined())
	report.ExitCode = res.ExitCode
	report.Success = res.ExitCode == 0
	report.Output = tailLines(res.Combined(), outputTailLines)
	return report, nil
}

var (
	testsRunRe    = regexp.MustCompile(`Tests run: (\d+), Failures: (\d+), Errors: (\d+), Skipped: (\d+)`)
	failingTestRe = regexp.MustCompile(`(?m)^\[ERROR\]\s+([A-Za-z_][\w$]*Test[\w$]*\.[A-Za-z_]\w*)`)
	buildMarkerRe = regexp.MustCompile(`BUILD (SUCCESS|FAILURE)`)
)

// parseTestOutput extracts a short summary and failing test names from a
// surefire log. The last "Tests run" line is the aggregate.
func parseTestOutput(output string) TestReport {
	var report TestReport

	if matches := testsRunRe.FindAllStringSubmatch(output, -1); len(matches) > 0 {
		last := matches[len(matches)-1]
		report.TestsRun, _ = strconv.Atoi(last[1])
		report.Failures, _ = strconv.Atoi(last[2])
		report.Errors, _ = strconv.Atoi(last[3])
		report.Skipped, _ = strconv.Atoi(last[4])
	}

	for _, m := range failingTestRe.FindAllStringSubmatch(output, -1) {
		report.FailingTests = append(report.FailingTests, strings.TrimSpace(m[1]))
	}
	report.FailingTests = unique(report.FailingTests)

	if m := buildMarkerRe.FindString(output); m != "" {
		report.BuildMarker = m
	}

	var parts []string
	if report.TestsRun > 0 || report.Failures > 0 || report.Errors > 0 {
		parts = append(parts, "Tests run: "+strconv.Itoa(report.TestsRun)+
			", failures: "+strconv.Itoa(report.Failures)+
			", errors: "+strconv.Itoa(report.Errors)+
			", skipped: "+strconv.Itoa(report.Skipped))
	}
	if len(report.FailingTests) > 0 {
		parts = append(parts, "Failing tests: "+strings.Join(report.FailingTests, ", "))
	}
	if report.BuildMarker != "" {
		parts = append(parts, report.BuildMarker)
	}
	report.Summary = strings.Join(parts, "; ")

	return report
}

func tailLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

func unique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
