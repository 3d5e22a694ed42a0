package umat

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompiler(t *testing.T) {
	t.Setenv("FC", "")
	t.Setenv("CC", "")
	assert.Equal(t, "gfortran", Compiler([]string{"umat.f"}))
	assert.Equal(t, "gfortran", Compiler([]string{"wrap.c", "UMAT.F90"}))
	assert.Equal(t, "cc", Compiler([]string{"stub.c"}))

	t.Setenv("FC", "ifx")
	t.Setenv("CC", "clang")
	assert.Equal(t, "ifx", Compiler([]string{"umat.for"}))
	assert.Equal(t, "clang", Compiler([]string{"stub.c"}))
}

func TestBuildArtifactErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "lib.so")
	assert.ErrorContains(t, BuildArtifact(false, "", out), "missing kernel sources")
	assert.ErrorContains(t, BuildArtifact(false, "no-such-compiler-umat", out, sourceStub), "missing compiler")
}
