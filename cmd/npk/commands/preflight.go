package commands

import (
	"github.com/spf13/cobra"

	"github.com/PowerPress/npk/cmd/npk/handlers"
)

// Preflight returns the command for validating account capability without
// deploying anything.
//
// Optional flags:
//
//	--settings, -s: Path to the settings file (default: npk-settings.yaml)
//	--no-cache: Ignore cached probe results and re-query everything
//	--cache-file: Location of the probe cache
//	--plain: Disable the live progress display
func Preflight() *cobra.Command {
	var opts handlers.PreflightOptions

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Validate account capability for a spot deployment",
		Long: `Validate that the AWS account can host an npk deployment.

Preflight surveys every usable region for spot quotas and availability
zones, checks the EC2 spot service-linked role, and resolves the requested
DNS zone. It fails fast with a remediation hint when the account cannot
support a deployment; no infrastructure is touched.

Examples:
  # Validate with the default settings file
  npk preflight

  # Re-probe everything, ignoring cached results
  npk preflight --no-cache`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := handlers.Preflight(cmd.Context(), opts)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.SettingsPath, "settings", "s", "npk-settings.yaml", "Path to the settings file")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Ignore cached probe results")
	cmd.Flags().StringVar(&opts.CachePath, "cache-file", handlers.DefaultCachePath(), "Location of the probe cache")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Disable the live progress display")

	return cmd
}
