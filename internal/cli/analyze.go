package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/tensorbuf"
	"github.com/arloliu/tensorbuf/analyze"
	"github.com/arloliu/tensorbuf/format"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	Precisions []string
	Hint       string
	ByteOrder  string
	Measure    bool
}

// AnalyzeReport is the analyze command output.
type AnalyzeReport struct {
	File        string               `json:"file"`
	Elements    int                  `json:"elements"`
	Hint        string               `json:"hint"`
	Estimates   []analyze.Estimate   `json:"estimates"`
	Recommended *analyze.Estimate    `json:"recommended,omitempty"`
	Errors      []analyze.ErrorStats `json:"errors,omitempty"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Estimate memory use of a float32 file at each precision",
		Long: `Estimate the size, compression ratio and accuracy loss of a raw float32
file at each precision and recommend one for the given hint.

With --measure the file is also quantized at each precision and the actual
round-trip error is reported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Precisions, "precision", "p", nil, "precisions to analyze (default all)")
	cmd.Flags().StringVar(&opts.Hint, "hint", "", "recommendation hint (storage|precision|performance)")
	cmd.Flags().StringVar(&opts.ByteOrder, "byte-order", "", "input byte order (little|big)")
	cmd.Flags().BoolVar(&opts.Measure, "measure", false, "measure actual quantization error")

	return cmd
}

func runAnalyze(rootOpts *RootOptions, opts *AnalyzeOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	order, err := parseByteOrder(setting(cmd, "byte-order", opts.ByteOrder, rootOpts.Config.ByteOrder))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid byte order", err)
	}
	hint, err := analyze.ParseHint(setting(cmd, "hint", opts.Hint, rootOpts.Config.Hint))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid hint", err)
	}

	precisions := make([]format.Precision, 0, len(opts.Precisions))
	for _, name := range opts.Precisions {
		p, err := format.ParsePrecision(name)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid precision", err)
		}
		precisions = append(precisions, p)
	}

	values, err := readValues(path, order)
	if err != nil {
		return err
	}
	formatter.VerboseLog("Read %d value(s) from %s", values.Len(), path)

	estimates, err := tensorbuf.Analyze(values, precisions...)
	if err != nil {
		return WrapExitError(ExitFailure, "analyze", err)
	}

	report := AnalyzeReport{
		File:      path,
		Elements:  values.Len(),
		Hint:      hint.String(),
		Estimates: estimates,
	}
	if best, ok := tensorbuf.Recommend(estimates, hint); ok {
		report.Recommended = &best
	}

	if opts.Measure {
		for _, e := range estimates {
			stats, err := analyze.Measure(values, e.Precision)
			if err != nil {
				return WrapExitError(ExitFailure, "measure "+e.Precision.String(), err)
			}
			report.Errors = append(report.Errors, stats)
		}
	}

	if formatter.IsJSON() {
		return formatter.Success(report)
	}

	return printAnalyzeReport(formatter, report)
}

func printAnalyzeReport(formatter *OutputFormatter, report AnalyzeReport) error {
	fmt.Fprintf(formatter.Writer, "%s: %d element(s)\n\n", report.File, report.Elements)

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRECISION\tSIZE\tRATIO\tEST. LOSS")
	for _, e := range report.Estimates {
		fmt.Fprintf(tw, "%s\t%d\t%.1fx\t%.2f%%\n", e.Precision, e.SizeBytes, e.CompressionRatio, e.EstimatedAccuracyLoss*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Errors) > 0 {
		fmt.Fprintln(formatter.Writer)
		tw = tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PRECISION\tMAX ABS\tMEAN ABS\tRMS")
		for _, s := range report.Errors {
			fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%.6g\n", s.Precision, s.MaxAbsError, s.MeanAbsError, s.RMSError)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if report.Recommended != nil {
		fmt.Fprintf(formatter.Writer, "\nRecommended for %s: %s\n", report.Hint, report.Recommended.Precision)
	}

	return nil
}
