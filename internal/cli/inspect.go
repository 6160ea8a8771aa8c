package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/tensorbuf/blob"
	"github.com/arloliu/tensorbuf/format"
)

// InspectReport describes an artifact header.
type InspectReport struct {
	File        string           `json:"file"`
	FileSize    int              `json:"file_size"`
	Precision   format.Precision `json:"precision"`
	Compression string           `json:"compression"`
	ByteOrder   string           `json:"byte_order"`
	Elements    int              `json:"elements"`
	RawSize     uint32           `json:"raw_size"`
	StoredSize  uint32           `json:"stored_size"`
	Scale       float64          `json:"scale"`
	ZeroPoint   float64          `json:"zero_point"`
	Min         float64          `json:"min"`
	Max         float64          `json:"max"`
	Checksum    string           `json:"checksum"`
	Verified    bool             `json:"verified"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var headerOnly bool

	cmd := &cobra.Command{
		Use:   "inspect <artifact>",
		Short: "Show an artifact header and verify its payload",
		Long: `Show the header of a tensor artifact.

The payload is decompressed and its checksum verified unless --header-only
is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], headerOnly, cmd)
		},
	}

	cmd.Flags().BoolVar(&headerOnly, "header-only", false, "skip payload verification")

	return cmd
}

func runInspect(rootOpts *RootOptions, path string, headerOnly bool, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read artifact", err)
	}

	header, err := blob.DecodeHeader(data)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid artifact header", err)
	}

	byteOrder := "little"
	if header.Flag.IsBigEndian() {
		byteOrder = "big"
	}

	report := InspectReport{
		File:        path,
		FileSize:    len(data),
		Precision:   header.Flag.GetPrecision(),
		Compression: header.Flag.Compression().String(),
		ByteOrder:   byteOrder,
		Elements:    int(header.Count),
		RawSize:     header.RawSize,
		StoredSize:  header.StoredSize,
		Scale:       header.Scale,
		ZeroPoint:   header.ZeroPoint,
		Min:         header.Min,
		Max:         header.Max,
		Checksum:    fmt.Sprintf("%016x", header.Checksum),
	}

	if !headerOnly {
		if _, err := blob.Decode(data); err != nil {
			return WrapExitError(ExitFailure, "invalid artifact payload", err)
		}
		report.Verified = true
	}

	if formatter.IsJSON() {
		return formatter.Success(report)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s (%d bytes)\n", report.File, report.FileSize)
	fmt.Fprintf(tw, "Precision:\t%s\n", report.Precision)
	fmt.Fprintf(tw, "Elements:\t%d\n", report.Elements)
	fmt.Fprintf(tw, "Byte order:\t%s\n", report.ByteOrder)
	fmt.Fprintf(tw, "Compression:\t%s\n", report.Compression)
	fmt.Fprintf(tw, "Payload:\t%d raw, %d stored\n", report.RawSize, report.StoredSize)
	if report.Scale != 0 {
		fmt.Fprintf(tw, "Scale:\t%g\n", report.Scale)
		fmt.Fprintf(tw, "Zero point:\t%g\n", report.ZeroPoint)
		fmt.Fprintf(tw, "Range:\t[%g, %g]\n", report.Min, report.Max)
	}
	fmt.Fprintf(tw, "Checksum:\t%s\n", report.Checksum)
	if report.Verified {
		fmt.Fprintf(tw, "Verified:\tyes\n")
	}

	return tw.Flush()
}
