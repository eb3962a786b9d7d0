package command

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/delaneyj/compbench/bench"
	"github.com/delaneyj/compbench/codec"
	"github.com/delaneyj/compbench/registry"
	"github.com/delaneyj/compbench/report"
)

// runOptions are the flags shared by benchmark and benchmark-many.
type runOptions struct {
	configPath string
	algorithms []string
	chunkSize  int
	dictPath   string
	dictLen    int
	trials     int
	warmup     int
	aggregate  string
	pinCPU     int
	reportPath string
	human      bool
	goBench    bool
	profile    profileOptions
}

func newBenchmarkManyCommand() *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "benchmark-many <input-file>",
		Short: "benchmark every level of the selected algorithms against one file",
		Long: "Benchmark every level of the selected algorithms against one file. One line is printed per\n" +
			"configuration in catalog order. The command fails if the input cannot be read or if any\n" +
			"configuration failed or did not round-trip.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return benchmarkFunc(cmd, args[0], &o, nil)
		},
	}
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "Run configuration file (YAML or JSON)")
	cmd.Flags().StringSliceVarP(&o.algorithms, "algorithms", "a", nil,
		"Algorithms to benchmark, optionally with levels: zstd,lz4:1:9 (default "+strings.Join(registry.DefaultAlgorithms, ",")+")")
	addRunFlags(cmd.Flags(), &o)
	return cmd
}

func addRunFlags(fs *pflag.FlagSet, o *runOptions) {
	fs.IntVarP(&o.chunkSize, "chunk-size", "b", 0, "Compress the input as independent chunks of this many bytes (0 compresses it whole)")
	fs.StringVarP(&o.dictPath, "dict", "d", "", "Dictionary file for codecs that support one")
	fs.IntVar(&o.dictLen, "dict-len", defaultDictLen, "Length of the dictionary prefix to use")
	fs.IntVar(&o.trials, "trials", 1, "Timed passes per configuration")
	fs.IntVar(&o.warmup, "warmup", 0, "Untimed passes per configuration before the trials")
	fs.StringVar(&o.aggregate, "aggregate", string(bench.AggregateMin), "How trial timings are combined: min or median")
	fs.IntVar(&o.pinCPU, "pin-cpu", -1, "Pin the benchmark thread to this CPU (Linux only, -1 disables)")
	fs.StringVarP(&o.reportPath, "report", "r", "", "Write results to a .csv, .json, .yaml or .cbor file")
	fs.BoolVar(&o.human, "human", false, "Print aligned lines with human-readable sizes")
	fs.BoolVar(&o.goBench, "gobench-output", false, "Print results in go test benchmark format")
	fs.StringVar(&o.profile.cpuProfile, "cpuprofile", "", "Write CPU profile to the specified file")
	fs.StringVar(&o.profile.memProfile, "memprofile", "", "Write heap profile to the specified file")
	fs.StringVar(&o.profile.blockProfile, "blockprofile", "", "Write block profile to the specified file")
}

// resolve merges the configuration file with the flags. Without a file every
// flag applies; with one, only flags set on the command line override it.
func (o *runOptions) resolve(fs *pflag.FlagSet) (runConfig, error) {
	var cfg runConfig
	if o.configPath != "" {
		loaded, err := loadRunConfig(o.configPath)
		if err != nil {
			return runConfig{}, err
		}
		cfg = loaded
	}
	use := func(name string) bool {
		return o.configPath == "" || fs.Changed(name)
	}
	if use("chunk-size") {
		cfg.ChunkSize = o.chunkSize
	}
	if use("dict") {
		cfg.Dictionary = o.dictPath
	}
	if use("dict-len") || cfg.DictionaryLen == 0 {
		cfg.DictionaryLen = o.dictLen
	}
	if use("trials") {
		cfg.Trials = o.trials
	}
	if use("warmup") {
		cfg.Warmup = o.warmup
	}
	if use("aggregate") {
		cfg.Aggregate = bench.Aggregate(o.aggregate)
	}
	if use("pin-cpu") {
		cfg.PinCPU = nil
		if o.pinCPU >= 0 {
			cpu := o.pinCPU
			cfg.PinCPU = &cpu
		}
	}
	if use("report") {
		cfg.Report = o.reportPath
	}
	if use("human") {
		cfg.Human = o.human
	}
	if use("gobench-output") {
		cfg.GoBench = o.goBench
	}
	if fs.Changed("algorithms") {
		sel, err := registry.ParseSelections(o.algorithms)
		if err != nil {
			return runConfig{}, err
		}
		cfg.Algorithms = sel
	}
	if err := cfg.Validate(); err != nil {
		return runConfig{}, err
	}
	return cfg, nil
}

// benchmarkFunc runs the selected configurations. A nil selection falls back
// to the configuration file, then to the default algorithms.
func benchmarkFunc(cmd *cobra.Command, inputPath string, o *runOptions, selections []registry.Selection) (err error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	cfg, err := o.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	if selections == nil {
		selections = cfg.Algorithms
	}
	var reg *registry.Registry
	if len(selections) == 0 {
		reg = registry.Default()
	} else if reg, err = registry.FromSelections(selections); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	input, dict, err := loadInputs(ctx, inputPath, cfg.Dictionary, cfg.DictionaryLen)
	if err != nil {
		return err
	}
	if dict != nil {
		var ignored []string
		for _, spec := range reg.Specs() {
			if !codec.SupportsDictionary(spec.Codec) && !slices.Contains(ignored, spec.Algorithm) {
				ignored = append(ignored, spec.Algorithm)
			}
		}
		logger.Info().Int("bytes", len(dict)).Strs("ignored_by", ignored).Msg("dictionary loaded")
	}

	prof, err := startProfiling(o.profile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, prof.stop())
	}()

	var formatOpts []report.FormatterOption
	if cfg.Human {
		formatOpts = append(formatOpts, report.Human())
	}
	if cfg.GoBench {
		formatOpts = append(formatOpts, report.GoBench())
	}
	formatter := report.NewFormatter(cmd.OutOrStdout(), formatOpts...)

	var rep *report.Report
	if cfg.Report != "" {
		if _, err := report.FormatFor(cfg.Report); err != nil {
			return err
		}
		rep = &report.Report{
			Input: report.NewInput(inputPath, input),
			Settings: report.Settings{
				Trials:     cfg.Trials,
				Warmup:     cfg.Warmup,
				Aggregate:  string(cfg.Aggregate),
				ChunkSize:  cfg.ChunkSize,
				Dictionary: len(dict),
			},
		}
	}

	runner := bench.NewRunner(append(cfg.Options(),
		bench.WithDictionary(dict),
		bench.WithLogger(logger),
	)...)
	summary, err := runner.Run(ctx, input, reg.Specs(), func(outcome bench.Outcome) {
		formatter.Write(outcome)
		if rep != nil {
			rep.Add(outcome)
		}
	})
	if err != nil {
		return err
	}
	if err := formatter.Err(); err != nil {
		return err
	}
	if rep != nil {
		if err := rep.WriteFile(cfg.Report); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.Report).Msg("report written")
	}
	return summary.Err()
}
