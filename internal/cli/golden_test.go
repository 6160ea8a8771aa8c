package cli

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tensorbuf/endian"
)

// goldenInDir runs each command from a fresh working directory so the
// relative file names printed by the commands are stable.
func goldenInDir(t *testing.T) *goldie.Goldie {
	t.Helper()

	fixtures, err := filepath.Abs("testdata/golden")
	require.NoError(t, err)

	t.Chdir(t.TempDir())
	writeValuesFile(t, ".", "w.f32", endian.GetLittleEndianEngine(), -1, 0, 0.5, 1)

	return goldie.New(t,
		goldie.WithFixtureDir(fixtures),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGolden_AnalyzeText(t *testing.T) {
	g := goldenInDir(t)

	out, err := execute(t, "analyze", "w.f32")
	require.NoError(t, err)
	g.Assert(t, "analyze_text", []byte(out))
}

func TestGolden_QuantizeText(t *testing.T) {
	g := goldenInDir(t)

	out, err := execute(t, "quantize", "w.f32", "w.tb", "-p", "int8")
	require.NoError(t, err)
	g.Assert(t, "quantize_text", []byte(out))
}

func TestGolden_BuildText(t *testing.T) {
	g := goldenInDir(t)

	out, err := execute(t, "build", "w.f32")
	require.NoError(t, err)
	g.Assert(t, "build_text", []byte(out))
}
