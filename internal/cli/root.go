package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/acctop/internal/config"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = formatVersion(v) + " (" + c + ", " + d + ")"
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	cmd := &cobra.Command{
		Use:   "acctop",
		Short: "Real-time system resource usage dashboard",
		Long: `Show disk, memory, per-core CPU and per-user usage for this host,
refreshed every --interval seconds until interrupted.

Optional sections add network counters, load average, uptime and kernel
version, and disk I/O throughput.

Examples:
  acctop
  acctop --interval 2 --show-load
  acctop --show-all
  acctop --once --no-color > snapshot.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
