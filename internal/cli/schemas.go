package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Zayedtasnim7/se333-mcp-agent/internal/tools"
)

// NewSchemasCmd lists the tools the daemon exposes.
func NewSchemasCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List tool schemas from the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			resp, err := http.Get(daemonURL(cfg.Server.Addr) + "/tools/schemas")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("daemon returned status %d", resp.StatusCode)
			}

			var schemas []tools.Schema
			if err := json.NewDecoder(resp.Body).Decode(&schemas); err != nil {
				return fmt.Errorf("decode schemas: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, s := range schemas {
				fmt.Fprintf(out, "%s – %s\n", s.Name, s.Description)
				for _, p := range s.Parameters {
					req := ""
					if p.Required {
						req = " (required)"
					}
					fmt.Fprintf(out, "  %s: %s%s\n", p.Name, p.Type, req)
				}
			}
			return nil
		},
	}
}
