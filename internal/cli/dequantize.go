package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/tensorbuf"
	"github.com/arloliu/tensorbuf/format"
)

// DequantizeOptions holds flags for the dequantize command.
type DequantizeOptions struct {
	ByteOrder string
}

// DequantizeReport is the dequantize command output.
type DequantizeReport struct {
	Input     string           `json:"input"`
	Output    string           `json:"output"`
	Elements  int              `json:"elements"`
	Precision format.Precision `json:"precision"`
	Bytes     int              `json:"bytes"`
}

// NewDequantizeCommand creates the dequantize command.
func NewDequantizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DequantizeOptions{}

	cmd := &cobra.Command{
		Use:           "dequantize <artifact> <output>",
		Short:         "Restore a float32 file from an artifact",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDequantize(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ByteOrder, "byte-order", "", "output byte order (little|big)")

	return cmd
}

func runDequantize(rootOpts *RootOptions, opts *DequantizeOptions, in, out string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	order, err := parseByteOrder(setting(cmd, "byte-order", opts.ByteOrder, rootOpts.Config.ByteOrder))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid byte order", err)
	}

	buf, err := loadArtifact(cmd.Context(), in)
	if err != nil {
		return err
	}

	values, err := tensorbuf.Dequantize(buf)
	if err != nil {
		return WrapExitError(ExitFailure, "dequantize", err)
	}

	if err := writeValues(out, values, order); err != nil {
		return err
	}

	report := DequantizeReport{
		Input:     in,
		Output:    out,
		Elements:  len(values),
		Precision: buf.Scheme.Precision,
		Bytes:     len(values) * 4,
	}

	if formatter.IsJSON() {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "Restored %d %s element(s) to %s (%d bytes)\n",
		report.Elements, report.Precision, out, report.Bytes)

	return nil
}
