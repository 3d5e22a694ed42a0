package umat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Handle is a loaded kernel artifact.
//
// Use Steps:
//
//  1. [Load] the artifact.
//  2. [Handle.Resolve] the entry point into a [Kernel].
//  3. [Kernel.Invoke] with a prepared [Block].
//  4. Call [Handle.Close] to unload it, on every exit path.
//
// Note:
//
//  1. A Handle exists only when the artifact is mapped; there is no half loaded state.
//  2. One artifact maps to at most one live Handle per process.
//  3. Handle is not thread-safe beyond what the platform loader guarantees.
type Handle struct {
	path   string
	key    string
	handle uintptr
	debug  bool
}

// Load open the artifact with eager symbol binding, an optional debug parameter enables debug logging on the Handle and its kernels.
//
// Fails with [ErrArtifactNotFound] when the path can not be opened, [ErrLoadFailure] when the loader rejects the artifact,
// [ErrAlreadyLoaded] when another live Handle holds it.
func Load(artifactPath string, debug ...bool) (h *Handle, err error) {
	dbg := len(debug) > 0 && debug[0]
	key := artifactKey(artifactPath)
	if err = reserve(key); err != nil {
		return nil, &LoadError{Op: "load", Path: artifactPath, Err: err}
	}
	defer func() {
		if err != nil {
			forget(key)
		}
	}()
	if strings.ContainsRune(artifactPath, filepath.Separator) {
		if _, err = os.Stat(artifactPath); err != nil {
			return nil, classifyOpen(artifactPath, err)
		}
	}
	p, err := openArtifact(artifactPath)
	if err != nil || p == 0 {
		return nil, classifyLoad(artifactPath, err)
	}
	h = &Handle{path: artifactPath, key: key, handle: p, debug: dbg}
	commit(key, h)
	if dbg {
		logger.Debug("artifact loaded", zap.String("path", artifactPath), zap.Uintptr("handle", p))
	}
	return h, nil
}

// Path of the loaded artifact as given to [Load].
func (h *Handle) Path() string {
	return h.path
}

// Loaded reports the Handle still maps its artifact.
func (h *Handle) Loaded() bool {
	return h != nil && h.handle != 0
}

// Resolve look up the entry point named exactly symbol, including any decoration the foreign toolchain adds (e.g. umat_).
func (h *Handle) Resolve(symbol string) (k *Kernel, err error) {
	if !h.Loaded() {
		var path string
		if h != nil {
			path = h.path
		}
		return nil, &LoadError{Op: "resolve", Path: path, Symbol: symbol, Err: ErrUninitialized}
	}
	p, err := resolveSymbol(h.handle, symbol)
	if err != nil || p == 0 {
		diag := diagnostic(err)
		if diag == "" {
			diag = fmt.Sprintf("undefined symbol: %s", symbol)
		}
		if h.debug {
			logger.Debug("symbol missing", zap.String("path", h.path), zap.String("symbol", symbol), zap.String("diagnostic", diag))
		}
		return nil, &LoadError{Op: "resolve", Path: h.path, Symbol: symbol, Diagnostic: diag, Err: ErrSymbolNotFound}
	}
	if h.debug {
		logger.Debug("symbol resolved", zap.String("symbol", symbol), zap.Uintptr("address", p))
	}
	return &Kernel{symbol: symbol, entry: p, owner: h}, nil
}

// Close unload the artifact. It is safe to call more than once; kernels resolved from h refuse to run afterwards.
func (h *Handle) Close() (err error) {
	if !h.Loaded() {
		return nil
	}
	if h.debug {
		logger.Debug("free artifact", zap.String("path", h.path))
	}
	p := h.handle
	h.handle = 0
	forget(h.key)
	if err = closeArtifact(p); err != nil {
		return &LoadError{Op: "close", Path: h.path, Diagnostic: diagnostic(err), Err: ErrLoadFailure}
	}
	return nil
}

func diagnostic(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}

func classifyOpen(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return &LoadError{Op: "load", Path: path, Diagnostic: diagnostic(err), Err: ErrArtifactNotFound}
	}
	return &LoadError{Op: "load", Path: path, Diagnostic: diagnostic(err), Err: ErrLoadFailure}
}

// classifyLoad tells a missing artifact from a rejected one. The platform
// loader prefixes its message with the object it failed on, which for a
// missing dependency is the dependency rather than path.
func classifyLoad(path string, err error) error {
	diag := diagnostic(err)
	if diag == "" {
		diag = "dynamic loader returned no handle"
	}
	if strings.HasPrefix(diag, path+":") && strings.Contains(diag, "No such file or directory") {
		return &LoadError{Op: "load", Path: path, Diagnostic: diag, Err: ErrArtifactNotFound}
	}
	return &LoadError{Op: "load", Path: path, Diagnostic: diag, Err: ErrLoadFailure}
}
