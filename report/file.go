package report

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cbor "github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/delaneyj/compbench/bench"
)

// ErrUnknownFormat is returned for report paths without a supported extension.
var ErrUnknownFormat = errors.New("unknown report format")

var cborEncMode, _ = cbor.CanonicalEncOptions().EncMode()

// Input identifies the benchmarked buffer.
type Input struct {
	Path    string `json:"path" yaml:"path" cbor:"path"`
	Size    uint64 `json:"size" yaml:"size" cbor:"size"`
	BLAKE2b string `json:"blake2b" yaml:"blake2b" cbor:"blake2b"`
}

// NewInput describes data read from path.
func NewInput(path string, data []byte) Input {
	sum := blake2b.Sum256(data)
	return Input{Path: path, Size: uint64(len(data)), BLAKE2b: hex.EncodeToString(sum[:])}
}

// Settings records how the run was configured.
type Settings struct {
	Trials     int    `json:"trials" yaml:"trials" cbor:"trials"`
	Warmup     int    `json:"warmup" yaml:"warmup" cbor:"warmup"`
	Aggregate  string `json:"aggregate" yaml:"aggregate" cbor:"aggregate"`
	ChunkSize  int    `json:"chunkSize" yaml:"chunkSize" cbor:"chunkSize"`
	Dictionary int    `json:"dictionaryBytes,omitempty" yaml:"dictionaryBytes,omitempty" cbor:"dictionaryBytes,omitempty"`
}

// Record is one configuration in a report file. Throughputs below clock
// resolution are written as zero.
type Record struct {
	Algorithm             string  `json:"algorithm" yaml:"algorithm" cbor:"algorithm"`
	Level                 int     `json:"level" yaml:"level" cbor:"level"`
	UncompressedLen       uint64  `json:"uncompressedLen" yaml:"uncompressedLen" cbor:"uncompressedLen"`
	CompressedLen         uint64  `json:"compressedLen,omitempty" yaml:"compressedLen,omitempty" cbor:"compressedLen,omitempty"`
	Ratio                 float64 `json:"ratio,omitempty" yaml:"ratio,omitempty" cbor:"ratio,omitempty"`
	InverseRatio          float64 `json:"invRatio,omitempty" yaml:"invRatio,omitempty" cbor:"invRatio,omitempty"`
	CompressionMBps       float64 `json:"compressionMBps,omitempty" yaml:"compressionMBps,omitempty" cbor:"compressionMBps,omitempty"`
	DecompressionMBps     float64 `json:"decompressionMBps,omitempty" yaml:"decompressionMBps,omitempty" cbor:"decompressionMBps,omitempty"`
	CompressionNanos      int64   `json:"compressionNs,omitempty" yaml:"compressionNs,omitempty" cbor:"compressionNs,omitempty"`
	DecompressionNanos    int64   `json:"decompressionNs,omitempty" yaml:"decompressionNs,omitempty" cbor:"decompressionNs,omitempty"`
	CompressionStddevNs   int64   `json:"compressionStddevNs,omitempty" yaml:"compressionStddevNs,omitempty" cbor:"compressionStddevNs,omitempty"`
	DecompressionStddevNs int64   `json:"decompressionStddevNs,omitempty" yaml:"decompressionStddevNs,omitempty" cbor:"decompressionStddevNs,omitempty"`
	Trials                int     `json:"trials,omitempty" yaml:"trials,omitempty" cbor:"trials,omitempty"`
	Chunks                int     `json:"chunks,omitempty" yaml:"chunks,omitempty" cbor:"chunks,omitempty"`
	Error                 string  `json:"error,omitempty" yaml:"error,omitempty" cbor:"error,omitempty"`
	RoundTripMismatch     bool    `json:"roundTripMismatch,omitempty" yaml:"roundTripMismatch,omitempty" cbor:"roundTripMismatch,omitempty"`
}

// NewRecord converts an outcome. Failed configurations keep only their
// identity, input size and error.
func NewRecord(o bench.Outcome, inputSize uint64) Record {
	rec := Record{Algorithm: o.Spec.Algorithm, Level: o.Spec.Level, UncompressedLen: inputSize}
	if !o.OK() {
		rec.Error = o.Err.Error()
		rec.RoundTripMismatch = bench.IsMismatch(o.Err)
		return rec
	}
	r := o.Result
	m := Compute(r)
	rec.UncompressedLen = r.OriginalSize
	rec.CompressedLen = r.CompressedSize
	rec.Ratio = round(float64(r.CompressedSize)/float64(r.OriginalSize), 3)
	rec.InverseRatio = round(m.InverseRatio, 3)
	rec.CompressionMBps = round(m.CompressionMBps, 1)
	rec.DecompressionMBps = round(m.DecompressionMBps, 1)
	rec.CompressionNanos = r.CompressionDuration.Nanoseconds()
	rec.DecompressionNanos = r.DecompressionDuration.Nanoseconds()
	rec.CompressionStddevNs = bench.Spread(r.CompressionSamples).Nanoseconds()
	rec.DecompressionStddevNs = bench.Spread(r.DecompressionSamples).Nanoseconds()
	rec.Trials = r.Trials
	rec.Chunks = r.Chunks
	return rec
}

// Report is the file form of a run.
type Report struct {
	Input    Input    `json:"input" yaml:"input" cbor:"input"`
	Settings Settings `json:"settings" yaml:"settings" cbor:"settings"`
	Results  []Record `json:"results" yaml:"results" cbor:"results"`
}

// Add appends o in emission order.
func (r *Report) Add(o bench.Outcome) {
	r.Results = append(r.Results, NewRecord(o, r.Input.Size))
}

// Format is a report file encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// FormatFor picks the format from path's extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cbor":
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("%w: %q (want .csv, .json, .yaml or .cbor)", ErrUnknownFormat, ext)
	}
}

// Encode writes r to w in format f.
func (r *Report) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatCSV:
		return r.encodeCSV(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		data, err := cborEncMode.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

var csvHeader = []string{
	"algorithm", "level", "uncompressed_len", "compressed_len", "ratio", "inv_ratio",
	"compression_speed_mbps", "decompression_speed_mbps", "error",
}

func (r *Report) encodeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range r.Results {
		row := []string{
			rec.Algorithm,
			strconv.Itoa(rec.Level),
			strconv.FormatUint(rec.UncompressedLen, 10),
			strconv.FormatUint(rec.CompressedLen, 10),
			strconv.FormatFloat(rec.Ratio, 'f', -1, 64),
			strconv.FormatFloat(rec.InverseRatio, 'f', -1, 64),
			strconv.FormatFloat(rec.CompressionMBps, 'f', -1, 64),
			strconv.FormatFloat(rec.DecompressionMBps, 'f', -1, 64),
			rec.Error,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile encodes r into path, choosing the format from its extension.
func (r *Report) WriteFile(path string) (err error) {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := r.Encode(f, format); err != nil {
		return fmt.Errorf("write %s report: %w", format, err)
	}
	return nil
}
