package cli

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/bufbuild/connect-go"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"

	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc/connectjson"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc/toolcall"
)

// NewCallCmd wires the call command to invoke a tool on the daemon.
func NewCallCmd(opts *Options) *cobra.Command {
	var argsJSON string
	var dir string
	var transport string

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke a named tool on the daemon and print its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			toolArgs := map[string]interface{}{}
			if strings.TrimSpace(argsJSON) != "" {
				if err := json.Unmarshal([]byte(argsJSON), &toolArgs); err != nil {
					return fmt.Errorf("parse --args: %w", err)
				}
			}
			if dir != "" {
				toolArgs["dir"] = dir
			}

			reqBody := rpc.ToolRequest{
				RequestID: uuid.NewString(),
				Name:      cmdArgs[0],
				Args:      toolArgs,
			}

			baseURL := daemonURL(cfg.Server.Addr)
			wire := transport
			if wire == "" {
				wire = cfg.Server.Transport
			}

			var resp rpc.ToolResponse
			switch strings.ToLower(strings.TrimSpace(wire)) {
			case "http":
				resp, err = callHTTP(cmd.Context(), baseURL+"/tools/call", reqBody)
			default:
				resp, err = callConnect(cmd.Context(), baseURL+toolcall.ConnectInvokeProcedure, reqBody)
			}
			if err != nil {
				return err
			}
			return renderResponse(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&argsJSON, "args", "", "JSON object of tool arguments")
	cmd.Flags().StringVar(&dir, "dir", "", "Project directory argument (shorthand for --args '{\"dir\":...}')")
	cmd.Flags().StringVar(&transport, "transport", "", "Wire transport: connect or http (default: from config)")
	return cmd
}

func callConnect(ctx context.Context, url string, reqBody rpc.ToolRequest) (rpc.ToolResponse, error) {
	client := connect.NewClient[rpc.ToolRequest, rpc.ToolResponse](buildH2CClient(), url, connect.WithCodec(connectjson.Codec{}))
	resp, err := client.CallUnary(ctx, connect.NewRequest(&reqBody))
	if err != nil {
		return rpc.ToolResponse{}, err
	}
	return *resp.Msg, nil
}

func callHTTP(ctx context.Context, url string, reqBody rpc.ToolRequest) (rpc.ToolResponse, error) {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return rpc.ToolResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return rpc.ToolResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := http.DefaultClient.Do(req)
	if err != nil {
		return rpc.ToolResponse{}, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 300 {
		return rpc.ToolResponse{}, fmt.Errorf("daemon returned status %d", httpResp.StatusCode)
	}

	var resp rpc.ToolResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return rpc.ToolResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

func renderResponse(cmd *cobra.Command, resp rpc.ToolResponse) error {
	if resp.Output != "" {
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(resp.Output, "\n"))
	}
	if resp.Error != "" {
		if resp.ErrorKind != "" {
			return fmt.Errorf("[%s] %s", resp.ErrorKind, resp.Error)
		}
		return fmt.Errorf("%s", resp.Error)
	}
	if !resp.Success {
		return fmt.Errorf("tool %s failed (exit %d)", resp.Name, resp.ExitCode)
	}
	return nil
}

func buildH2CClient() *http.Client {
	return &http.Client{
		Transport: &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, network, addr)
			},
		},
	}
}
