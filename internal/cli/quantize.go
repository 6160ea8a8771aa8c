package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/tensorbuf"
	"github.com/arloliu/tensorbuf/blob"
	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/quant"
)

// QuantizeOptions holds flags for the quantize command.
type QuantizeOptions struct {
	Precision   string
	Compression string
	ByteOrder   string
	Min         float64
	Max         float64
}

// QuantizeReport is the quantize command output.
type QuantizeReport struct {
	Input            string           `json:"input"`
	Output           string           `json:"output"`
	Elements         int              `json:"elements"`
	Precision        format.Precision `json:"precision"`
	Compression      string           `json:"compression"`
	OriginalSize     int              `json:"original_size"`
	QuantizedSize    int              `json:"quantized_size"`
	ArtifactSize     int              `json:"artifact_size"`
	CompressionRatio float64          `json:"compression_ratio"`
	Scheme           quant.Scheme     `json:"scheme"`
}

// NewQuantizeCommand creates the quantize command.
func NewQuantizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QuantizeOptions{}

	cmd := &cobra.Command{
		Use:   "quantize <input> <output>",
		Short: "Quantize a float32 file into an artifact",
		Long: `Quantize a raw float32 file and write the result as a tensor artifact.

For int8 the range defaults to the finite min and max of the input; use
--min and --max to quantize against a fixed range instead.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantize(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Precision, "precision", "p", "", "target precision (fp32|fp16|int8|uint8)")
	cmd.Flags().StringVar(&opts.Compression, "compression", "", "artifact compression (none|zstd|s2|lz4)")
	cmd.Flags().StringVar(&opts.ByteOrder, "byte-order", "", "input and artifact byte order (little|big)")
	cmd.Flags().Float64Var(&opts.Min, "min", 0, "int8 range minimum")
	cmd.Flags().Float64Var(&opts.Max, "max", 0, "int8 range maximum")

	return cmd
}

func runQuantize(rootOpts *RootOptions, opts *QuantizeOptions, in, out string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	cfg := rootOpts.Config

	precision, err := format.ParsePrecision(setting(cmd, "precision", opts.Precision, cfg.Precision))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid precision", err)
	}
	compression, err := format.ParseCompression(setting(cmd, "compression", opts.Compression, cfg.Compression))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid compression", err)
	}
	order, err := parseByteOrder(setting(cmd, "byte-order", opts.ByteOrder, cfg.ByteOrder))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid byte order", err)
	}

	var int8Opts []quant.Int8Option
	if cmd.Flags().Changed("min") {
		int8Opts = append(int8Opts, quant.WithMin(opts.Min))
	}
	if cmd.Flags().Changed("max") {
		int8Opts = append(int8Opts, quant.WithMax(opts.Max))
	}

	values, err := readValues(in, order)
	if err != nil {
		return err
	}

	buf, err := tensorbuf.Quantize(values, precision, int8Opts...)
	if err != nil {
		return WrapExitError(ExitFailure, "quantize", err)
	}

	encOpts := []blob.EncoderOption{blob.WithCompression(compression)}
	if order == endian.GetBigEndianEngine() {
		encOpts = append(encOpts, blob.WithBigEndian())
	}

	n, err := saveArtifact(cmd.Context(), out, buf, encOpts...)
	if err != nil {
		return err
	}

	report := QuantizeReport{
		Input:            in,
		Output:           out,
		Elements:         buf.Count,
		Precision:        precision,
		Compression:      compression.String(),
		OriginalSize:     buf.OriginalSize(),
		QuantizedSize:    buf.Size(),
		ArtifactSize:     n,
		CompressionRatio: buf.CompressionRatio,
		Scheme:           buf.Scheme,
	}

	if formatter.IsJSON() {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "Quantized %d element(s) to %s (%.1fx)\n", report.Elements, precision, report.CompressionRatio)
	fmt.Fprintf(formatter.Writer, "Wrote %s: %d bytes (%s compression)\n", out, n, report.Compression)
	if buf.Scheme.HasScale() {
		formatter.VerboseLog("scale=%g zero_point=%g min=%g max=%g",
			buf.Scheme.Scale, buf.Scheme.ZeroPoint, buf.Scheme.Min, buf.Scheme.Max)
	}

	return nil
}
