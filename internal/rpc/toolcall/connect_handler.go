package toolcall

import (
	"context"
	"errors"
	"net/http"

	"github.com/bufbuild/connect-go"
	"github.com/google/uuid"

	"github.com/Zayedtasnim7/se333-mcp-agent/internal/observability"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc/connectjson"
)

const ConnectInvokeProcedure = "/connect.tools.v1.ToolService/Invoke"

// NewConnectHandler builds a Connect unary handler for tool invocation.
func NewConnectHandler(dispatcher *Dispatcher, metrics *observability.Metrics) (string, http.Handler) {
	h := &connectInvokeHandler{dispatcher: dispatcher, metrics: metrics}
	return ConnectInvokeProcedure, connect.NewUnaryHandler(ConnectInvokeProcedure, h.handle, connect.WithCodec(connectjson.Codec{}))
}

type connectInvokeHandler struct {
	dispatcher *Dispatcher
	metrics    *observability.Metrics
}

func (h *connectInvokeHandler) handle(ctx context.Context, req *connect.Request[rpc.ToolRequest]) (*connect.Response[rpc.ToolResponse], error) {
	if h.metrics != nil {
		h.metrics.IncActiveRequests("connect")
		defer h.metrics.DecActiveRequests("connect")
	}

	r := *req.Msg
	if r.Name == "" {
		if h.metrics != nil {
			h.metrics.RecordTransportError("connect", "missing_name")
		}
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("tool name is required"))
	}
	if r.RequestID == "" {
		r.RequestID = uuid.NewString()
	}

	resp := h.dispatcher.Invoke(ctx, r)
	return connect.NewResponse(&resp), nil
}
