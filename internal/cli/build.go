package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arloliu/tensorbuf"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/gpu"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	Precision string
	Usage     string
	Label     string
	ByteOrder string
}

// BuildReport is the build command output.
type BuildReport struct {
	Label            string           `json:"label"`
	Usage            string           `json:"usage"`
	Precision        format.Precision `json:"precision"`
	BufferSize       int              `json:"buffer_size"`
	OriginalSize     int              `json:"original_size"`
	CompressionRatio float64          `json:"compression_ratio"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Dry-run GPU buffer construction for a float32 file",
		Long: `Build a GPU buffer from a raw float32 file on an in-memory device and
report the resulting buffer size. Nothing is uploaded to real hardware.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Precision, "precision", "p", "", "buffer precision (fp32|fp16|int8|uint8)")
	cmd.Flags().StringVar(&opts.Usage, "usage", "", "usage flags, e.g. storage|copy_dst")
	cmd.Flags().StringVar(&opts.Label, "label", "", "buffer label (default file name)")
	cmd.Flags().StringVar(&opts.ByteOrder, "byte-order", "", "input byte order (little|big)")

	return cmd
}

func runBuild(rootOpts *RootOptions, opts *BuildOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	cfg := rootOpts.Config

	precision, err := format.ParsePrecision(setting(cmd, "precision", opts.Precision, cfg.Precision))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid precision", err)
	}
	usage, err := gpu.ParseUsage(setting(cmd, "usage", opts.Usage, cfg.Usage))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid usage", err)
	}
	order, err := parseByteOrder(setting(cmd, "byte-order", opts.ByteOrder, cfg.ByteOrder))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid byte order", err)
	}

	label := opts.Label
	if label == "" {
		label = filepath.Base(path)
	}

	values, err := readValues(path, order)
	if err != nil {
		return err
	}

	device := gpu.NewMemoryDevice()
	result, err := tensorbuf.Build(device, values, usage,
		gpu.WithQuantization(precision),
		gpu.WithLabel(label),
	)
	if err != nil {
		return WrapExitError(ExitFailure, "build buffer", err)
	}
	if d, ok := result.Buffer.(gpu.Destroyer); ok {
		defer d.Destroy()
	}

	report := BuildReport{
		Label:            label,
		Usage:            usage.String(),
		Precision:        precision,
		BufferSize:       result.Buffer.Size(),
		OriginalSize:     values.ByteLen(),
		CompressionRatio: result.Conversion.CompressionRatio,
	}
	formatter.VerboseLog("device allocated %d byte(s) in %d buffer(s)", device.BytesAllocated(), device.BuffersCreated())

	if formatter.IsJSON() {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "Built %q: %d bytes %s (%s, %.1fx smaller than fp32)\n",
		report.Label, report.BufferSize, report.Precision, report.Usage, report.CompressionRatio)

	return nil
}
