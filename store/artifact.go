package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arloliu/tensorbuf/blob"
	"github.com/arloliu/tensorbuf/internal/logging"
	"github.com/arloliu/tensorbuf/quant"
)

// SaveBuffer encodes buf as an artifact and stores it under name.
//
// Parameters:
//   - ctx: Context for the store operation
//   - s: Destination store
//   - name: Artifact name
//   - buf: Quantized buffer to persist with its scheme
//   - opts: Artifact encoding options (compression, byte order)
//
// Returns:
//   - int: Stored artifact size in bytes
//   - error: Encoding or store error
func SaveBuffer(ctx context.Context, s Store, name string, buf quant.Buffer, opts ...blob.EncoderOption) (int, error) {
	data, err := blob.Encode(buf, opts...)
	if err != nil {
		return 0, fmt.Errorf("encode artifact %q: %w", name, err)
	}

	if err := s.Put(ctx, name, data); err != nil {
		return 0, fmt.Errorf("put artifact %q: %w", name, err)
	}

	logging.Logger().Debug("artifact saved",
		slog.String("name", name),
		slog.String("precision", buf.Scheme.Precision.String()),
		slog.Int("elements", buf.Count),
		slog.Int("bytes", len(data)),
	)

	return len(data), nil
}

// LoadBuffer reads and decodes the artifact stored under name.
func LoadBuffer(ctx context.Context, s Store, name string, opts ...blob.DecoderOption) (quant.Buffer, error) {
	data, err := s.Get(ctx, name)
	if err != nil {
		return quant.Buffer{}, err
	}

	buf, err := blob.DecodeBuffer(data, opts...)
	if err != nil {
		return quant.Buffer{}, fmt.Errorf("decode artifact %q: %w", name, err)
	}

	return buf, nil
}
