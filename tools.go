package umat

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Compiler pick a toolchain for kernel sources: gfortran (or $FC) for Fortran, $CC or cc otherwise.
func Compiler(sources []string) string {
	for _, s := range sources {
		switch strings.ToLower(filepath.Ext(s)) {
		case ".f", ".for", ".f77", ".f90", ".f95":
			if fc := os.Getenv("FC"); fc != "" {
				return fc
			}
			return "gfortran"
		}
	}
	if cc := os.Getenv("CC"); cc != "" {
		return cc
	}
	return "cc"
}

// BuildArtifact compile kernel sources into a shared artifact at out.
//
// An empty compiler selects one by [Compiler].
func BuildArtifact(debug bool, compiler, out string, sources ...string) (err error) {
	if len(sources) == 0 {
		return fmt.Errorf("missing kernel sources")
	}
	if compiler == "" {
		compiler = Compiler(sources)
	}
	if _, err = exec.LookPath(compiler); err != nil {
		return fmt.Errorf("missing compiler %s: %w", compiler, err)
	}
	cmd := exec.Command(compiler, append([]string{"-shared", "-fPIC", "-O2", "-o", out}, sources...)...)
	if debug {
		logger.Debug("execute", zap.Strings("args", cmd.Args))
	}
	var bout []byte
	if bout, err = cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("compile %s: %w\nout:%s", out, err, string(bout))
	}
	return
}
