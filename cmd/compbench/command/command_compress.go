package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/delaneyj/compbench/bench"
	"github.com/delaneyj/compbench/codec"
	"github.com/delaneyj/compbench/internal/framing"
	"github.com/delaneyj/compbench/registry"
	"github.com/delaneyj/compbench/report"
)

const defaultChunkSize = 16384

type compressOptions struct {
	algorithm string
	level     int
	chunkSize int
	dictPath  string
	dictLen   int
	output    string
}

func newCompressCommand() *cobra.Command {
	var o compressOptions
	cmd := &cobra.Command{
		Use:   "compress <file>",
		Short: "compress a file into independently compressed chunks",
		Long: "Compress a file into independently compressed chunks, written to <file>.<extension>. Each\n" +
			"chunk is stored as a little-endian uint32 uncompressed length, a little-endian uint32\n" +
			"compressed length and the compressed payload.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compressFunc(cmd, args[0], o)
		},
	}
	cmd.Flags().StringVarP(&o.algorithm, "algorithm", "a", "zstd", "Compression algorithm")
	cmd.Flags().IntVarP(&o.level, "level", "c", 1, "Compression level")
	cmd.Flags().IntVarP(&o.chunkSize, "chunk-size", "b", defaultChunkSize, "Size of a chunk in bytes; each chunk is compressed independently")
	cmd.Flags().StringVarP(&o.dictPath, "dict", "d", "", "Dictionary file for codecs that support one")
	cmd.Flags().IntVar(&o.dictLen, "dict-len", defaultDictLen, "Length of the dictionary prefix to use")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output path (default <file>.<extension>)")
	return cmd
}

func compressFunc(cmd *cobra.Command, path string, o compressOptions) (err error) {
	spec, err := registry.Lookup(o.algorithm, o.level)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	input, dict, err := loadInputs(ctx, path, o.dictPath, o.dictLen)
	if err != nil {
		return err
	}
	if len(input) == 0 {
		return fmt.Errorf("%s: %w", path, bench.ErrEmptyInput)
	}

	enc, err := spec.Codec.NewEncoder(spec.Level, codec.Options{Dictionary: dict})
	if err != nil {
		return err
	}
	defer codec.Close(enc)

	outPath := o.output
	if outPath == "" {
		outPath = path + "." + spec.Codec.Extension()
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("could not create file %s: %w", outPath, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	chunks := framing.Split(input, o.chunkSize)
	buf := make([]byte, 0, enc.CompressBound(len(chunks[0])))
	fw := framing.NewWriter(f)
	var written uint64
	start := time.Now()
	for _, chunk := range chunks {
		payload, err := enc.Compress(buf[:0], chunk)
		if err != nil {
			return err
		}
		if err := fw.WriteFrame(len(chunk), payload); err != nil {
			return err
		}
		written += uint64(framing.HeaderSize + len(payload))
	}
	if err := fw.Flush(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	size := uint64(len(input))
	fmt.Fprintf(cmd.ErrOrStderr(), "%d => %d (%.1f %%), %.1f MB/s\n",
		size, written, report.RatioPercent(written, size), report.Throughput(size, elapsed))
	return nil
}
