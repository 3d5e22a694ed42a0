package umat

import (
	"debug/elf"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ZenLiuCN/fn"
)

var (
	// ErrArtifactNotFound occurs when the artifact path can not be opened.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrLoadFailure occurs when the dynamic loader rejects an existing artifact.
	ErrLoadFailure = errors.New("load failure")
	// ErrSymbolNotFound occurs when the entry point is absent from a loaded artifact.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrUninitialized occurs when resolve or invoke through a released Handle.
	ErrUninitialized = errors.New("handle not loaded")
	// ErrAlreadyLoaded occurs when the same artifact is loaded again before its Handle is closed.
	ErrAlreadyLoaded = errors.New("artifact already loaded")
	// ErrNilBlock occurs when invoke without a prepared Block.
	ErrNilBlock = errors.New("nil argument block")
	// ErrMalformedBlock occurs when a Block's counts disagree with its buffers.
	ErrMalformedBlock = errors.New("malformed argument block")
)

// LoadError describes a failure at the Loader boundary.
type LoadError struct {
	Op         string // load, resolve, invoke, inspect or close
	Path       string
	Symbol     string
	Diagnostic string // text reported by the platform loader
	Err        error  // one of the Err* sentinels
}

func (e *LoadError) Error() string {
	s := strings.Builder{}
	s.WriteString(e.Op)
	s.WriteByte(' ')
	s.WriteString(e.Path)
	if e.Symbol != "" {
		s.WriteString(fmt.Sprintf(" [%s]", e.Symbol))
	}
	s.WriteString(": ")
	s.WriteString(e.Err.Error())
	if e.Diagnostic != "" {
		s.WriteString(": ")
		s.WriteString(e.Diagnostic)
	}
	return s.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Inspect lists the exported dynamic function symbols of an ELF artifact.
//
// Useful to discover the decorated entry point name a toolchain produced, e.g. umat_ from gfortran.
func Inspect(artifactPath string) (names []string, err error) {
	f, err := elf.Open(artifactPath)
	if err != nil {
		return nil, classifyOpen(artifactPath, err)
	}
	defer fn.IgnoreClose(f)
	syms, err := f.DynamicSymbols()
	if err != nil {
		return nil, &LoadError{Op: "inspect", Path: artifactPath, Diagnostic: err.Error(), Err: ErrLoadFailure}
	}
	seen := make(map[string]struct{}, len(syms))
	for _, s := range syms {
		if elf.ST_TYPE(s.Info) != elf.STT_FUNC || s.Section == elf.SHN_UNDEF {
			continue
		}
		switch elf.ST_BIND(s.Info) {
		case elf.STB_GLOBAL, elf.STB_WEAK:
			seen[s.Name] = struct{}{}
		}
	}
	names = fn.MapKeys(seen)
	slices.Sort(names)
	return
}
