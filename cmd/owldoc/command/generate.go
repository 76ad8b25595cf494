package command

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/owldoc/internal/config"
	"github.com/cayleygraph/owldoc/internal/site"
	"github.com/cayleygraph/owldoc/internal/watch"
)

func NewGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write class pages, diagrams, the index and the mkdocs nav.",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindRunFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			rep, err := site.Generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	registerRunFlags(cmd)
	return cmd
}

func NewWatchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Generate, then regenerate whenever an ontology source changes.",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindRunFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			build := func(ctx context.Context) error {
				rep, err := site.Generate(ctx, cfg)
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), rep)
				return nil
			}
			if err := build(cmd.Context()); err != nil {
				return err
			}
			w, err := watch.New(cfg, build)
			if err != nil {
				return err
			}
			return w.Run(cmd.Context())
		},
	}
	registerRunFlags(cmd)
	return cmd
}
