package cli

import (
	"github.com/spf13/cobra"

	"github.com/agenthands/literalkg/internal/bundle"
	"github.com/agenthands/literalkg/internal/core"
)

// bundleFlags are the --bundle/--output pair shared by commands that rewrite
// a bundle. Output defaults to overwriting the input.
type bundleFlags struct {
	in, out string
}

func (f *bundleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.in, "bundle", "b", "", "bundle to read (default output.path)")
	cmd.Flags().StringVarP(&f.out, "output", "o", "", "where to write the result (default: overwrite --bundle)")
}

func (f *bundleFlags) paths(a *app) (string, string) {
	in := f.in
	if in == "" {
		in = a.cfg.Output.Path
	}
	out := f.out
	if out == "" {
		out = in
	}
	return in, out
}

func (a *app) rewrite(cmd *cobra.Command, f *bundleFlags, fn func(ds *core.Dataset) error) error {
	ctx := cmd.Context()
	in, out := f.paths(a)

	ds, err := bundle.Load(ctx, in, a.cfg.S3)
	if err != nil {
		return err
	}
	if err := fn(ds); err != nil {
		return err
	}
	return bundle.Save(ctx, out, a.cfg.S3, ds)
}

func newFilterCommand(a *app) *cobra.Command {
	var (
		f         bundleFlags
		threshold int
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Drop rare attribute relations from a bundle",
		Long: `Filter keeps only numeric and textual attribute relations with more than
--threshold raw rows. Surviving attributes are renumbered densely; their
original ids stay available in the vocabulary origin column.

On a bundle whose text features are already clustered only the textual
presence matrix and vocabulary are narrowed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("threshold") {
				a.cfg.Filter.Threshold = threshold
			}
			return a.rewrite(cmd, &f, func(ds *core.Dataset) error {
				ds.FilterByFrequency(a.cfg.Filter.Threshold)
				return nil
			})
		},
	}

	f.register(cmd)
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "minimum row count, exclusive (overrides filter.threshold)")
	return cmd
}

func newClusterCommand(a *app) *cobra.Command {
	var (
		f        bundleFlags
		clusters int
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Quantise the textual literals of a bundle into clusters",
		Long: `Cluster replaces every entity's text embeddings with a one-hot membership
vector over k clusters found by k-means. The embeddings are discarded, so
this cannot be undone on the written bundle.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("clusters") {
				a.cfg.Cluster.Clusters = clusters
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Cluster.Seed = seed
			}
			return a.rewrite(cmd, &f, func(ds *core.Dataset) error {
				return a.clusterText(cmd.Context(), ds)
			})
		},
	}

	f.register(cmd)
	cmd.Flags().IntVarP(&clusters, "clusters", "k", 0, "number of clusters (overrides cluster.clusters)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (overrides cluster.seed)")
	return cmd
}
