package command

import (
	"github.com/spf13/cobra"

	"github.com/delaneyj/compbench/registry"
)

func newBenchmarkCommand() *cobra.Command {
	var (
		o         runOptions
		algorithm string
		level     int
	)
	cmd := &cobra.Command{
		Use:   "benchmark <input-file>",
		Short: "benchmark one algorithm at one level against a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := []registry.Selection{{Algorithm: algorithm, Levels: []int{level}}}
			return benchmarkFunc(cmd, args[0], &o, sel)
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "zstd", "Compression algorithm")
	cmd.Flags().IntVarP(&level, "level", "c", 1, "Compression level")
	addRunFlags(cmd.Flags(), &o)
	return cmd
}
