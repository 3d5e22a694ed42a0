package umat

import (
	"io"

	"go.uber.org/multierr"
)

// Use load artifact, resolve symbol and hand the Kernel to f. The artifact is released on every exit path.
func Use(artifact, symbol string, f func(k *Kernel) error, debug ...bool) (err error) {
	h, err := Load(artifact, debug...)
	if err != nil {
		return
	}
	defer func() {
		err = multierr.Append(err, h.Close())
	}()
	k, err := h.Resolve(symbol)
	if err != nil {
		return
	}
	return f(k)
}

// Run execute a Scenario once: load, resolve, prepare, invoke, inspect.
//
// When w is not nil the imposed strain is written before the call, the tangent and stress after it.
// Nothing is invoked unless both the artifact and the symbol were found.
func Run(s Scenario, w io.Writer) (out Outputs, err error) {
	err = Use(s.Artifact, s.Symbol, func(k *Kernel) (err error) {
		b := s.Prepare()
		if w != nil {
			if err = ReportStrain(w, b); err != nil {
				return
			}
		}
		if err = k.Invoke(b); err != nil {
			return
		}
		out = b.Inspect()
		if w != nil {
			err = ReportOutputs(w, out)
		}
		return
	}, s.Debug)
	return
}
