package toolcall

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zayedtasnim7/se333-mcp-agent/internal/observability"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/tools"
)

// Dispatcher validates, serializes, and executes tool calls. Every transport
// (connect, plain HTTP, MCP) funnels through a single Dispatcher so metrics
// and per-directory locking behave the same everywhere.
type Dispatcher struct {
	Tools   *tools.Registry
	Metrics *observability.Metrics
	Logger  *zap.Logger

	mu       sync.Mutex
	dirLocks map[string]*sync.Mutex
}

// NewDispatcher builds a dispatcher over a tool registry.
func NewDispatcher(reg *tools.Registry, metrics *observability.Metrics, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		Tools:    reg,
		Metrics:  metrics,
		Logger:   logger,
		dirLocks: make(map[string]*sync.Mutex),
	}
}

// Invoke executes a single tool call to completion. Tool failures are
// reported in the response payload; Invoke itself never panics or retries.
func (d *Dispatcher) Invoke(ctx context.Context, req rpc.ToolRequest) rpc.ToolResponse {
	start := time.Now()
	resp := rpc.ToolResponse{RequestID: req.RequestID, Name: req.Name}

	output, exitCode, err := d.execute(ctx, req)
	resp.DurationMS = time.Since(start).Milliseconds()
	resp.Output = output
	resp.ExitCode = exitCode

	status := "ok"
	if err != nil {
		resp.Error = err.Error()
		if kind := tools.KindOf(err); kind != "" {
			resp.ErrorKind = string(kind)
			status = string(kind)
		} else {
			status = "error"
		}
		if code := tools.ExitCodeOf(err); code != 0 {
			resp.ExitCode = code
		}
		d.logf("tool failed", req, zap.String("error", resp.Error))
	} else {
		resp.Success = resp.ExitCode == 0
	}
	if d.Metrics != nil {
		d.Metrics.RecordInvocation(req.Name, status, time.Since(start))
	}
	return resp
}

func (d *Dispatcher) execute(ctx context.Context, req rpc.ToolRequest) (string, int, error) {
	if d.Tools == nil {
		return "", 0, fmt.Errorf("tool registry unavailable")
	}
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if err := tools.ValidateCall(d.Tools, req.Name, req.Args); err != nil {
		return "", 0, err
	}

	dir := strArg(req.Args, "dir")
	unlock := d.lockDir(dir)
	defer unlock()

	reg := d.Tools
	switch req.Name {
	case "list_java_methods":
		methods, err := reg.Java.ListMethods(dir)
		if err != nil {
			return "", 0, err
		}
		var b strings.Builder
		for _, m := range methods {
			if m.Class != "" {
				fmt.Fprintf(&b, "%s: %s.%s\n", m.File, m.Class, m.Method)
			} else {
				fmt.Fprintf(&b, "%s: %s\n", m.File, m.Method)
			}
		}
		return b.String(), 0, nil

	case "generate_basic_junit":
		class := strArg(req.Args, "class_name")
		method := strArg(req.Args, "method_name")
		if _, hasDir := req.Args["dir"]; hasDir {
			source, _, err := reg.JUnit.WriteTest(dir, class, method)
			return source, 0, err
		}
		source, err := reg.JUnit.Generate(class, method)
		return source, 0, err

	case "mvn_test":
		report, err := reg.Maven.Test(ctx, dir)
		if err != nil {
			return "", 0, err
		}
		d.recordProcess(reg.Maven.Command, report.Success)
		out := report.Output
		if report.Summary != "" {
			out = report.Summary + "\n\n" + out
		}
		// a failing build is still a result: success travels as the exit code
		return out, report.ExitCode, nil

	case "coverage_summary":
		summary, err := reg.Coverage.Summarize(dir)
		if err != nil {
			return "", 0, err
		}
		return summary.String(), 0, nil

	case "git_status":
		out, err := reg.Git.Status(ctx, dir)
		d.recordProcess(reg.Git.Command, err == nil)
		return out, 0, err

	case "git_add_all":
		out, err := reg.Git.AddAll(ctx, dir)
		d.recordProcess(reg.Git.Command, err == nil)
		return out, 0, err

	case "git_commit":
		message := strArg(req.Args, "message")
		includeCoverage, _ := req.Args["include_coverage"].(bool)
		out, err := reg.Git.Commit(ctx, dir, message, includeCoverage)
		d.recordProcess(reg.Git.Command, err == nil)
		return out, 0, err

	case "git_push":
		out, err := reg.Git.Push(ctx, dir)
		d.recordProcess(reg.Git.Command, err == nil)
		return out, 0, err

	case "git_pull_request":
		title := strArg(req.Args, "title")
		out, err := reg.Git.PullRequest(ctx, dir, title)
		d.recordProcess(reg.Git.PRCommand, err == nil)
		return out, 0, err

	default:
		return "", 0, tools.Validation(req.Name, "unknown tool %q", req.Name)
	}
}

// lockDir serializes invocations against the same project directory. The
// external tools assume exclusive access to their working directory, so two
// overlapping runs against one dir could corrupt their own lock files.
// Entries are never pruned: the key space is the set of project dirs callers
// name, a handful per daemon lifetime.
func (d *Dispatcher) lockDir(dir string) func() {
	key := filepath.Clean(dir)
	if key == "" {
		key = "."
	}

	d.mu.Lock()
	lock, ok := d.dirLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		d.dirLocks[key] = lock
	}
	d.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (d *Dispatcher) recordProcess(command string, ok bool) {
	if d.Metrics == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	d.Metrics.RecordProcessRun(command, outcome)
}

func (d *Dispatcher) logf(msg string, req rpc.ToolRequest, fields ...zap.Field) {
	if d == nil || d.Logger == nil {
		return
	}
	fields = append([]zap.Field{
		zap.String("tool", req.Name),
		zap.String("request_id", req.RequestID),
	}, fields...)
	d.Logger.Info(msg, fields...)
}

func strArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}
