package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/delaneyj/compbench/bench"
	"github.com/delaneyj/compbench/codec"
	"github.com/delaneyj/compbench/internal/framing"
	"github.com/delaneyj/compbench/report"
)

type decompressOptions struct {
	algorithm string
	dictPath  string
	dictLen   int
	output    string
}

func newDecompressCommand() *cobra.Command {
	var o decompressOptions
	cmd := &cobra.Command{
		Use:   "decompress <file>",
		Short: "decompress a file written by the compress command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decompressFunc(cmd, args[0], o)
		},
	}
	cmd.Flags().StringVarP(&o.algorithm, "algorithm", "a", "", "Compression algorithm (default from the file extension)")
	cmd.Flags().StringVarP(&o.dictPath, "dict", "d", "", "Dictionary file the input was compressed with")
	cmd.Flags().IntVar(&o.dictLen, "dict-len", defaultDictLen, "Length of the dictionary prefix to use")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output path (default the input path without its extension)")
	return cmd
}

func decompressCodec(path, algorithm string) (codec.Codec, error) {
	if algorithm != "" {
		c, ok := codec.Get(algorithm)
		if !ok {
			return nil, fmt.Errorf("unknown algorithm %q", algorithm)
		}
		return c, nil
	}
	c, ok := codec.ByExtension(strings.TrimPrefix(filepath.Ext(path), "."))
	if !ok {
		return nil, errors.New("cannot determine compression algorithm from the extension, use -a/--algorithm")
	}
	return c, nil
}

func decompressFunc(cmd *cobra.Command, path string, o decompressOptions) (err error) {
	c, err := decompressCodec(path, o.algorithm)
	if err != nil {
		return err
	}
	var dict []byte
	if o.dictPath != "" {
		if dict, err = loadDictionary(o.dictPath, o.dictLen); err != nil {
			return fmt.Errorf("%w: dictionary: %w", bench.ErrInputUnavailable, err)
		}
	}
	dec, err := c.NewDecoder(codec.Options{Dictionary: dict})
	if err != nil {
		return err
	}
	defer codec.Close(dec)

	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", bench.ErrInputUnavailable, err)
	}
	defer in.Close()

	outPath := o.output
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path))
		if outPath == path || outPath == "" {
			return errors.New("cannot derive an output path, use -o/--output")
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("could not create file %s: %w", outPath, err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	fr := framing.NewReader(in)
	bw := bufio.NewWriterSize(out, 1<<20)
	var dst []byte
	var read, written uint64
	start := time.Now()
	for {
		h, payload, err := fr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if cap(dst) < h.UncompressedLen {
			dst = make([]byte, h.UncompressedLen)
		}
		got, err := dec.Decompress(dst[:h.UncompressedLen], payload)
		if err != nil {
			return err
		}
		if _, err := bw.Write(got); err != nil {
			return err
		}
		read += uint64(framing.HeaderSize + len(payload))
		written += uint64(len(got))
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(cmd.ErrOrStderr(), "%d => %d (%.1f %%), %.1f MB/s\n",
		read, written, report.RatioPercent(read, written), report.Throughput(written, elapsed))
	return nil
}
