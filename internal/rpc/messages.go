package rpc

// ToolRequest is a single remote tool invocation.
type ToolRequest struct {
	RequestID string                 `json:"request_id,omitempty"`
	Name      string                 `json:"name"`
	Args      map[string]interface{} `json:"args,omitempty"`
}

// ToolResponse carries the textual result of a tool invocation. Tool failures
// travel in the payload (Error/ErrorKind); transport failures use the
// transport's own error channel.
type ToolResponse struct {
	RequestID  string `json:"request_id,omitempty"`
	Name       string `json:"name"`
	Output     string `json:"output,omitempty"`
	Success    bool   `json:"success"`
	ExitCode   int    `json:"exit_code,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}
