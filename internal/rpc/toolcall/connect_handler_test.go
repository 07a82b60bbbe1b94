package toolcall

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bufbuild/connect-go"

	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc/connectjson"
)

func newConnectClient(t *testing.T, d *Dispatcher) *connect.Client[rpc.ToolRequest, rpc.ToolResponse] {
	t.Helper()
	path, handler := NewConnectHandler(d, nil)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return connect.NewClient[rpc.ToolRequest, rpc.ToolResponse](
		srv.Client(), srv.URL+path, connect.WithCodec(connectjson.Codec{}))
}

func TestConnectInvoke(t *testing.T) {
	d, dir := newDispatcher(t)
	writeProjectFile(t, dir, "src/main/java/Calc.java", `
public class Calc {
    public int add(int a, int b) { return a + b; }
}
`)
	client := newConnectClient(t, d)

	resp, err := client.CallUnary(context.Background(),
		connect.NewRequest(&rpc.ToolRequest{Name: "list_java_methods"}))
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !resp.Msg.Success {
		t.Fatalf("tool failed: %s", resp.Msg.Error)
	}
	if !strings.Contains(resp.Msg.Output, "Calc.add") {
		t.Fatalf("unexpected output: %q", resp.Msg.Output)
	}
	if resp.Msg.RequestID == "" {
		t.Fatalf("expected a generated request id")
	}
}

func TestConnectRequiresToolName(t *testing.T) {
	d, _ := newDispatcher(t)
	client := newConnectClient(t, d)

	_, err := client.CallUnary(context.Background(), connect.NewRequest(&rpc.ToolRequest{}))
	if err == nil {
		t.Fatalf("expected transport error for missing tool name")
	}
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("code = %v, want invalid_argument", connect.CodeOf(err))
	}
}

func TestConnectToolErrorInPayload(t *testing.T) {
	d, _ := newDispatcher(t)
	client := newConnectClient(t, d)

	resp, err := client.CallUnary(context.Background(),
		connect.NewRequest(&rpc.ToolRequest{Name: "coverage_summary"}))
	if err != nil {
		t.Fatalf("tool failure must not surface as transport error: %v", err)
	}
	if resp.Msg.Success || resp.Msg.ErrorKind != "not_found" {
		t.Fatalf("expected not_found failure, got success=%v kind=%q", resp.Msg.Success, resp.Msg.ErrorKind)
	}
}
