package umat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenarioDefaults(t *testing.T) {
	s, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultScenario(), *s)
}

func TestLoadScenarioFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "umat.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
artifact: ./build/libsteel.so
material: STEEL
properties: [210000, 0.3]
imposed_strain: 0.002
strain_increment: [0, 0.001]
state_variables: [0, 0, 0]
step: 2
`), 0o644))
	s, err := LoadScenario(p)
	require.NoError(t, err)
	assert.Equal(t, "./build/libsteel.so", s.Artifact)
	assert.Equal(t, "umat_", s.Symbol, "unset keys keep defaults")
	assert.Equal(t, []float64{210000, 0.3}, s.Properties)
	assert.Equal(t, 0.002, s.ImposedStrain)

	b := s.Prepare()
	assert.Equal(t, "STEEL", b.Material())
	assert.Equal(t, 0.002, b.Stran[0])
	assert.Equal(t, 0.001, b.Dstran[1])
	assert.EqualValues(t, 3, b.Nstatv)
	assert.EqualValues(t, 2, b.Nprops)
	assert.EqualValues(t, 2, b.Kstep)
	assert.EqualValues(t, 1, b.Kinc)
}

func TestLoadScenarioEnv(t *testing.T) {
	t.Setenv("UMAT_ARTIFACT", "/opt/kernels/libumat.so")
	t.Setenv("UMAT_SYMBOL", "umat")
	s, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/opt/kernels/libumat.so", s.Artifact)
	assert.Equal(t, "umat", s.Symbol)
}

func TestLoadScenarioInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("properties: {E: 1"), 0o644))
	_, err := LoadScenario(bad)
	assert.ErrorContains(t, err, "failed to parse scenario")

	long := filepath.Join(dir, "long.yaml")
	require.NoError(t, os.WriteFile(long, []byte("strain_increment: [1, 2, 3, 4, 5, 6, 7]"), 0o644))
	_, err = LoadScenario(long)
	assert.ErrorContains(t, err, "strain_increment")

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("symbol: ''"), 0o644))
	_, err = LoadScenario(empty)
	assert.ErrorContains(t, err, "symbol is required")
}

func TestScenarioSave(t *testing.T) {
	p := filepath.Join(t.TempDir(), "umat.yaml")
	s := DefaultScenario()
	s.Material = "SAVED"
	require.NoError(t, s.Save(p))
	got, err := LoadScenario(p)
	require.NoError(t, err)
	assert.Equal(t, s, *got)
}

func TestDefaultScenarioBlock(t *testing.T) {
	b := DefaultScenario().Prepare()
	assert.Equal(t, []float64{100.0, 0.2}, b.Props)
	assert.Equal(t, Vector{0.001}, b.Stran)
	assert.Equal(t, Vector{}, b.Dstran)
	assert.Equal(t, "ELASTIC", b.Material())
	assert.NoError(t, b.validate())
}
