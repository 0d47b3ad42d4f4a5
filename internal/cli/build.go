package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agenthands/literalkg/internal/bundle"
	"github.com/agenthands/literalkg/internal/core"
	"github.com/agenthands/literalkg/internal/core/cluster"
	"github.com/agenthands/literalkg/internal/driver"
	"github.com/agenthands/literalkg/internal/ingest"
	"github.com/agenthands/literalkg/internal/llm"
)

func newBuildCommand(a *app) *cobra.Command {
	var (
		input, output, source string
		filter, quantize      bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a dataset bundle from raw tables",
		Long: `Build reads train.txt, valid.txt, test.txt, numerical_literals.txt and
text_literals.txt, builds the vocabularies, indexes the edges, assembles the
literal matrices and writes a bundle.

With --source memgraph the triples are read from the graph database instead
(see graph-import) and only the literal tables come from --input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("input") {
				cfg.Input.Dir = input
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Path = output
			}
			if cmd.Flags().Changed("source") {
				cfg.Input.Source = source
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			src, closeSrc, err := a.openSource(ctx)
			if err != nil {
				return err
			}
			defer closeSrc()

			tables, err := src.Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load tables: %w", err)
			}

			embedder, err := llm.NewEmbedder(ctx, cfg.LLM, cfg.Pipeline.EmbeddingDim)
			if err != nil {
				return err
			}
			if c, ok := embedder.(io.Closer); ok {
				defer c.Close()
			}

			ds, err := core.NewBuilder(embedder, cfg).Build(ctx, tables)
			if err != nil {
				return err
			}

			if filter {
				ds.FilterByFrequency(cfg.Filter.Threshold)
			}
			if quantize {
				if err := a.clusterText(ctx, ds); err != nil {
					return err
				}
			}

			return bundle.Save(ctx, cfg.Output.Path, cfg.S3, ds)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "directory holding the raw tables (overrides input.dir)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "bundle path or s3://bucket/key (overrides output.path)")
	cmd.Flags().StringVar(&source, "source", "", "where triples come from: tsv or memgraph (overrides input.source)")
	cmd.Flags().BoolVar(&filter, "filter", false, "apply the frequency filter after building")
	cmd.Flags().BoolVar(&quantize, "cluster", false, "quantise the textual literals after building")
	return cmd
}

func (a *app) openSource(ctx context.Context) (ingest.Source, func(), error) {
	if a.cfg.Input.Source != "memgraph" {
		return ingest.NewDirSource(a.cfg.Input.Dir), func() {}, nil
	}

	d, err := a.connectMemgraph(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ingest.NewGraphSource(d, a.cfg.Input.Dir), func() { d.Close(context.Background()) }, nil
}

func (a *app) connectMemgraph(ctx context.Context) (*driver.MemgraphDriver, error) {
	m := a.cfg.Memgraph
	d, err := driver.NewMemgraphDriver(ctx, m.URI, m.User, m.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Memgraph: %w", err)
	}
	return d, nil
}

func (a *app) clusterText(ctx context.Context, ds *core.Dataset) error {
	c := a.cfg.Cluster
	km := cluster.NewKMeans()
	if c.Restarts > 0 {
		km.Restarts = c.Restarts
	}
	if c.MaxIterations > 0 {
		km.MaxIterations = c.MaxIterations
	}
	return ds.ClusterText(ctx, km, c.Clusters, c.Seed)
}
