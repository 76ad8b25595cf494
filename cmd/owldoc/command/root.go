package command

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cayleygraph/owldoc/internal/config"
	"github.com/cayleygraph/owldoc/internal/site"
	"github.com/cayleygraph/owldoc/version"
)

const (
	flagConfig   = "config"
	flagDocs     = "docs"
	flagMkDocs   = "mkdocs"
	flagNoRender = "no-render"
	flagIgnore   = "ignore"
	flagRegistry = "registry"
	flagMetrics  = "metrics"
	flagRankdir  = "rankdir"
)

// NewRootCmd creates the owldoc command tree. Every tree reads its settings
// from its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "owldoc",
		Short:         "Generate MkDocs documentation and class diagrams from OWL ontologies.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString(flagConfig)
			if err != nil {
				return err
			}
			return config.Init(v, file)
		},
	}
	pf := root.PersistentFlags()
	pf.StringP(flagConfig, "c", "", "path to an explicit configuration file")
	pf.String(flagDocs, "docs", "MkDocs docs directory holding the ontology sources")
	pf.String(flagMkDocs, "mkdocs.yml", "mkdocs.yml whose nav is rewritten")
	v.BindPFlag(config.KeyDocsDir, pf.Lookup(flagDocs))
	v.BindPFlag(config.KeyMkDocs, pf.Lookup(flagMkDocs))

	root.AddCommand(
		NewGenerateCmd(v),
		NewWatchCmd(v),
		NewDiagramCmd(v),
		NewDumpCmd(v),
		NewVersionCmd(),
	)
	return root
}

func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool(flagNoRender, false, "write DOT files only, without running graphviz")
	cmd.Flags().StringSlice(flagIgnore, nil, "classes, by IRI or name, left out of diagrams")
	cmd.Flags().String(flagRegistry, config.RegistryMarkdown, `concept registry backend ("markdown", "leveldb" or "none")`)
	cmd.Flags().String(flagMetrics, "", "write run metrics to this file in the prometheus text format")
	cmd.Flags().String(flagRankdir, "TB", "graphviz rank direction of the diagrams")
}

// bindRunFlags binds the flags of the running command only, so that
// commands sharing flag names do not steal each other's bindings.
func bindRunFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range map[string]string{
		config.KeyIgnoreClasses:   flagIgnore,
		config.KeyRegistryBackend: flagRegistry,
		config.KeyMetricsTextfile: flagMetrics,
		config.KeyRankdir:         flagRankdir,
	} {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return err
		}
	}
	if noRender, _ := fs.GetBool(flagNoRender); noRender {
		v.Set(config.KeyRender, false)
	}
	return nil
}

func printReport(w io.Writer, rep *site.Report) {
	fmt.Fprintf(w, "documented %d classes from %d files", rep.Classes, rep.Files)
	if rep.Failed > 0 {
		fmt.Fprintf(w, ", %d failed", rep.Failed)
	}
	fmt.Fprintln(w)
	if len(rep.Diagnostics) == 0 {
		return
	}
	fmt.Fprintf(w, "%d diagnostics:\n", len(rep.Diagnostics))
	for _, d := range rep.Diagnostics {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of owldoc.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
