package command

import (
	"github.com/spf13/cobra"

	"github.com/delaneyj/compbench/version"
)

const (
	cliName        = "compbench"
	cliDescription = "Benchmark the speed and ratio of compression algorithms against one input"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          cliName,
		Short:        cliDescription,
		Version:      version.Version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("log-level", "info", "Log level written to stderr: debug, info, warn, error or disabled")

	rootCmd.AddCommand(
		newVersionCommand(),
		newListCommand(),
		newBenchmarkManyCommand(),
		newBenchmarkCommand(),
		newCompressCommand(),
		newDecompressCommand(),
	)

	return rootCmd
}
