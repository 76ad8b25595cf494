package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/owldoc/diagram"
	"github.com/cayleygraph/owldoc/diagram/dot"
	"github.com/cayleygraph/owldoc/internal/config"
	"github.com/cayleygraph/owldoc/internal/load"
	"github.com/cayleygraph/owldoc/owl"
)

const flagFormat = "format"

func loadOptions(v *viper.Viper) *load.Options {
	return &load.Options{
		DefaultNamespace: v.GetString(config.KeyDefaultNamespace),
		InferPrefixes:    v.GetBool(config.KeyInferPrefixes),
	}
}

// classIRI resolves a class argument given as a full IRI or a display name.
func classIRI(o *owl.Ontology, name string) quad.IRI {
	if strings.Contains(name, "://") {
		return quad.IRI(name)
	}
	if iri, ok := o.NS.Expand(name); ok {
		return quad.IRI(iri)
	}
	return quad.IRI(name)
}

func NewDiagramCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagram FILE CLASS",
		Short: "Print the diagram of one class in DOT format.",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return v.BindPFlag(config.KeyRankdir, cmd.Flags().Lookup(flagRankdir))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			o, err := load.File(ctx, args[0], loadOptions(v))
			if err != nil {
				return err
			}
			c, err := owl.GetClass(ctx, o, classIRI(o, args[1]))
			if err != nil {
				return err
			}
			g, err := diagram.Build(ctx, c, &diagram.Options{
				Ignore: v.GetStringSlice(config.KeyIgnoreClasses),
			})
			if err != nil {
				return err
			}
			return dot.Encode(cmd.OutOrStdout(), g, &dot.Options{
				Rankdir: strings.ToUpper(v.GetString(config.KeyRankdir)),
			})
		},
	}
	cmd.Flags().String(flagRankdir, "TB", "graphviz rank direction")
	return cmd
}

func NewDumpCmd(v *viper.Viper) *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Write the triples of a loaded ontology in a quad format.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := load.File(cmd.Context(), args[0], loadOptions(v))
			if err != nil {
				return err
			}
			if out != "-" {
				return load.Dump(o.Store, out, format)
			}
			f := quad.FormatByName(format)
			if f == nil || f.Writer == nil {
				return fmt.Errorf("unsupported format: %q", format)
			}
			_, err = load.Write(cmd.OutOrStdout(), o.Store, f)
			return err
		},
	}
	var names []string
	for _, f := range quad.Formats() {
		if f.Writer != nil {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	cmd.Flags().StringVarP(&out, "out", "o", "-", `output file (".gz" supported, "-" for stdout)`)
	cmd.Flags().StringVar(&format, flagFormat, "nquads", `quad format ("`+strings.Join(names, `", "`)+`")`)
	return cmd
}
