package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

// NewDoctorCmd returns a health-check command validating config and environment.
func NewDoctorCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration and environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config OK. Project dir: %s\n", cfg.Project.Dir)
			fmt.Fprintf(out, "Exec allowed: %v, git allowed: %v, metrics: %v, mcp: %v\n",
				cfg.Tools.AllowExec, cfg.Tools.AllowGit, cfg.Server.MetricsEnabled, cfg.Server.MCPEnabled)

			for _, bin := range []string{cfg.Maven.Command, cfg.Git.Command, cfg.Git.PRCommand} {
				if _, err := exec.LookPath(bin); err != nil {
					fmt.Fprintf(out, "WARN: %s not found on PATH\n", bin)
				} else {
					fmt.Fprintf(out, "%s: found\n", bin)
				}
			}
			return nil
		},
	}
}
