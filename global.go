package umat

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ZenLiuCN/fn"
	"go.uber.org/multierr"
)

// artifacts records every live Handle by artifact key.
// A reserved key maps to nil until the loader opened the artifact.
var (
	artifactsMu sync.Mutex
	artifacts   = make(map[string]*Handle)
)

// artifactKey names an artifact in the registry. Bare library names stay as
// given since the platform loader searches them on the library path.
func artifactKey(path string) string {
	if !strings.ContainsRune(path, filepath.Separator) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func reserve(key string) error {
	artifactsMu.Lock()
	defer artifactsMu.Unlock()
	if _, ok := artifacts[key]; ok {
		return ErrAlreadyLoaded
	}
	artifacts[key] = nil
	return nil
}

func commit(key string, h *Handle) {
	artifactsMu.Lock()
	artifacts[key] = h
	artifactsMu.Unlock()
}

func forget(key string) {
	artifactsMu.Lock()
	delete(artifacts, key)
	artifactsMu.Unlock()
}

// Loaded lists the artifacts currently held open by a Handle.
func Loaded() (v []string) {
	artifactsMu.Lock()
	defer artifactsMu.Unlock()
	for _, k := range fn.MapKeys(artifacts) {
		if artifacts[k] != nil {
			v = append(v, k)
		}
	}
	slices.Sort(v)
	return
}

// CloseAll release every live Handle. Use at process teardown only, when no Kernel is in use.
func CloseAll() (err error) {
	artifactsMu.Lock()
	live := make([]*Handle, 0, len(artifacts))
	for _, h := range artifacts {
		if h != nil {
			live = append(live, h)
		}
	}
	artifactsMu.Unlock()
	for _, h := range live {
		err = multierr.Append(err, h.Close())
	}
	return
}
