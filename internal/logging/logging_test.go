package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	require.NotNil(t, Logger())

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	Logger().Warn("misaligned buffer copied", "byte_offset", 2)
	require.Contains(t, buf.String(), "misaligned buffer copied")
	require.Contains(t, buf.String(), "byte_offset=2")

	SetLogger(nil)
	buf.Reset()
	Logger().Warn("dropped")
	require.Empty(t, buf.String())
}
