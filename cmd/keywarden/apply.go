package keywarden

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keywarden/keywarden/pkg/commands"
	"github.com/keywarden/keywarden/pkg/output"
	"github.com/keywarden/keywarden/pkg/reconcile"
)

func newApplyCmd() *cobra.Command {
	var opts commands.ApplyOptions

	cmd := &cobra.Command{
		Use:     "apply",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := commands.Apply(opts)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), output.RenderReport(report))

			if report.Failed() {
				return fmt.Errorf("%d settings failed", report.Count(reconcile.StatusFailed))
			}
			return nil
		},
	}

	addStoreFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.ForceRecreate, "force-recreate", false,
		"Delete each value before writing it (allows type changes)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false,
		"Preview changes without executing them")

	return cmd
}

func addStoreFlags(cmd *cobra.Command, opts *commands.ApplyOptions) {
	cmd.Flags().StringVarP(&opts.CatalogPath, "catalog", "c", "",
		"Settings catalog file (YAML or TOML; default: discovered catalog or built-in baseline)")
	cmd.Flags().StringVar(&opts.HivePath, "hive", "",
		"Target an offline hive file instead of the live registry")
	cmd.Flags().StringVar(&opts.HivePrefix, "hive-prefix", "",
		"Key-path prefix the hive file is mounted at (e.g. SOFTWARE)")
}
