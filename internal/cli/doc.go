// Package cli implements the tensorbuf command-line interface.
//
// Commands:
//   - analyze: estimate size and accuracy loss per precision
//   - quantize: convert a raw float32 file into a tensor artifact
//   - dequantize: restore a raw float32 file from an artifact
//   - inspect: print and verify an artifact header
//   - build: dry-run GPU buffer construction on an in-memory device
//
// Global flags select text or JSON output and an optional YAML config file
// that supplies per-command defaults.
package cli
