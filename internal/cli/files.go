package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arloliu/tensorbuf"
	"github.com/arloliu/tensorbuf/blob"
	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/normalize"
	"github.com/arloliu/tensorbuf/quant"
	"github.com/arloliu/tensorbuf/store"
)

// setting returns the flag value when the flag was set on the command line,
// otherwise the config value.
func setting(cmd *cobra.Command, flag, flagValue, configValue string) string {
	if cmd.Flags().Changed(flag) {
		return flagValue
	}

	return configValue
}

// readValues loads a raw float32 file.
func readValues(path string, order endian.EndianEngine) (normalize.Canonical, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "read input", err)
	}
	if len(data)%4 != 0 {
		return nil, NewExitError(ExitFailure,
			fmt.Sprintf("input %s is %d bytes, not a whole number of float32 values", path, len(data)))
	}

	values, err := tensorbuf.Normalize(data, normalize.WithByteOrder(order))
	if err != nil {
		return nil, WrapExitError(ExitFailure, "normalize input", err)
	}

	return values, nil
}

// writeValues writes values as raw float32 data.
func writeValues(path string, values []float32, order endian.EndianEngine) error {
	data := normalize.Canonical(values).Bytes(order)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	return nil
}

// artifactStore maps a file path onto a local store and artifact name.
func artifactStore(path string) (*store.LocalStore, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, "resolve path", err)
	}

	return store.NewLocalStore(filepath.Dir(abs)), filepath.Base(abs), nil
}

func saveArtifact(ctx context.Context, path string, buf quant.Buffer, opts ...blob.EncoderOption) (int, error) {
	s, name, err := artifactStore(path)
	if err != nil {
		return 0, err
	}

	n, err := store.SaveBuffer(ctx, s, name, buf, opts...)
	if err != nil {
		return 0, WrapExitError(ExitFailure, "save artifact", err)
	}

	return n, nil
}

func loadArtifact(ctx context.Context, path string) (quant.Buffer, error) {
	s, name, err := artifactStore(path)
	if err != nil {
		return quant.Buffer{}, err
	}

	buf, err := store.LoadBuffer(ctx, s, name)
	if err != nil {
		return quant.Buffer{}, WrapExitError(ExitFailure, "load artifact", err)
	}

	return buf, nil
}
