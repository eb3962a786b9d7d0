package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/delaneyj/compbench/bench"
)

const defaultDictLen = 16384

// loadInputs reads the input file and, when dictPath is set, the first
// dictLen bytes of the dictionary. Both are read before any benchmark starts.
func loadInputs(ctx context.Context, inputPath, dictPath string, dictLen int) (input, dict []byte, err error) {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("%w: %w", bench.ErrInputUnavailable, err)
		}
		input = data
		return nil
	})
	if dictPath != "" {
		g.Go(func() error {
			data, err := loadDictionary(dictPath, dictLen)
			if err != nil {
				return fmt.Errorf("%w: dictionary: %w", bench.ErrInputUnavailable, err)
			}
			dict = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return input, dict, nil
}

func loadDictionary(path string, n int) ([]byte, error) {
	if n <= 0 {
		n = defaultDictLen
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, int64(n)))
}
