package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/delaneyj/compbench/codec"
	"github.com/delaneyj/compbench/registry"
)

type listOptions struct {
	defaults bool
	verbose  bool
}

func newListCommand() *cobra.Command {
	var o listOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "print the benchmark configurations in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFunc(cmd, o)
		},
	}
	listCmd.Flags().BoolVar(&o.defaults, "default", false, "List only the configurations benchmarked when no algorithms are given")
	listCmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Include file extension and dictionary support")
	return listCmd
}

func listFunc(cmd *cobra.Command, o listOptions) error {
	reg := registry.Catalog()
	if o.defaults {
		reg = registry.Default()
	}
	out := cmd.OutOrStdout()
	for _, spec := range reg.Specs() {
		if !o.verbose {
			fmt.Fprintln(out, spec.String())
			continue
		}
		fmt.Fprintf(out, "%s\t.%s\tdictionary=%t\n", spec, spec.Codec.Extension(), codec.SupportsDictionary(spec.Codec))
	}
	return nil
}
