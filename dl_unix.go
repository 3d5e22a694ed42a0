//go:build linux || darwin

package umat

import (
	"github.com/ebitengine/purego"
)

// openArtifact resolves every undefined reference at load time and keeps the
// artifact's symbols out of the global namespace.
func openArtifact(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
}

func resolveSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func closeArtifact(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}
