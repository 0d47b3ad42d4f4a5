package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agenthands/literalkg/internal/ingest"
)

func newGraphImportCommand(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "graph-import",
		Short: "Load the TSV triple splits into Memgraph",
		Long: `Graph-import replaces the train, valid and test triples stored in Memgraph
with the ones in train.txt, valid.txt and test.txt, so later builds can run
with --source memgraph.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				input = a.cfg.Input.Dir
			}
			ctx := cmd.Context()

			triples, err := ingest.NewDirSource(input).LoadTriples(ctx)
			if err != nil {
				return err
			}

			d, err := a.connectMemgraph(ctx)
			if err != nil {
				return err
			}
			defer d.Close(context.Background())

			return ingest.ImportTriples(ctx, d, triples)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "directory holding the triple files (default input.dir)")
	return cmd
}
