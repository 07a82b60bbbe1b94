package toolcall

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Zayedtasnim7/se333-mcp-agent/internal/observability"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc"
)

// Handler processes POST /tools/call with a plain JSON request/response pair.
type Handler struct {
	dispatcher *Dispatcher
	metrics    *observability.Metrics
}

// NewHandler constructs a handler instance.
func NewHandler(dispatcher *Dispatcher, metrics *observability.Metrics) *Handler {
	return &Handler{dispatcher: dispatcher, metrics: metrics}
}

// ServeHTTP handles a single tool invocation.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		if h.metrics != nil {
			h.metrics.RecordTransportError("http", "method_not_allowed")
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.metrics != nil {
		h.metrics.IncActiveRequests("http")
		defer h.metrics.DecActiveRequests("http")
	}

	var req rpc.ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if h.metrics != nil {
			h.metrics.RecordTransportError("http", "decode")
		}
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		if h.metrics != nil {
			h.metrics.RecordTransportError("http", "missing_name")
		}
		http.Error(w, "tool name is required", http.StatusBadRequest)
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	resp := h.dispatcher.Invoke(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
