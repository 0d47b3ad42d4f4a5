package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/agenthands/literalkg/internal/bundle"
)

func newInspectCommand(a *app) *cobra.Command {
	var (
		path   string
		entity string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print bundle statistics or one entity's features as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = a.cfg.Output.Path
			}
			ds, err := bundle.Load(cmd.Context(), path, a.cfg.S3)
			if err != nil {
				return err
			}

			var out interface{} = ds.Stats()
			if entity != "" {
				if out, err = ds.Entity(entity); err != nil {
					return err
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&path, "bundle", "b", "", "bundle to read (default output.path)")
	cmd.Flags().StringVarP(&entity, "entity", "e", "", "show the features of this entity instead of statistics")
	return cmd
}
