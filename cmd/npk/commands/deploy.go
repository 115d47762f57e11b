package commands

import (
	"github.com/spf13/cobra"

	"github.com/PowerPress/npk/cmd/npk/handlers"
)

// Deploy returns the command for running preflight and handing the snapshot
// to the infrastructure-as-code stage.
//
// Optional flags:
//
//	--settings, -s: Path to the settings file (default: npk-settings.yaml)
//	--tool: IaC tool to invoke with the snapshot (default: terraform)
//	--tool-arg: Argument passed to the IaC tool (repeatable)
//	--workdir: Directory the snapshot is written to and the tool runs in
//	--s3-bucket: Also upload the snapshot to this bucket
//	--no-cache: Ignore cached probe results
//	--plain: Disable the live progress display
func Deploy() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Validate account capability and deploy the cluster",
		Long: `Run the full preflight pipeline and, when it passes, hand the
validated settings snapshot to the IaC tool that templates and applies the
infrastructure.

A failed preflight aborts before the tool is invoked. The snapshot the
deployment was gated on can additionally be archived to S3.

Examples:
  # Preflight and apply with terraform
  npk deploy

  # Archive the gating snapshot
  npk deploy --s3-bucket my-npk-audit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SettingsPath, "settings", "s", "npk-settings.yaml", "Path to the settings file")
	cmd.Flags().StringVar(&opts.Tool, "tool", "terraform", "IaC tool to invoke")
	cmd.Flags().StringArrayVar(&opts.ToolArgs, "tool-arg", []string{"apply"}, "Argument passed to the IaC tool (repeatable)")
	cmd.Flags().StringVar(&opts.WorkDir, "workdir", ".", "Directory the tool runs in")
	cmd.Flags().StringVar(&opts.S3Bucket, "s3-bucket", "", "Also upload the snapshot to this bucket")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Ignore cached probe results")
	cmd.Flags().StringVar(&opts.CachePath, "cache-file", handlers.DefaultCachePath(), "Location of the probe cache")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Disable the live progress display")

	return cmd
}
