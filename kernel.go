package umat

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

// Kernel is a resolved UMAT entry point, bound to the fixed signature described by [Contract].
type Kernel struct {
	symbol string
	entry  uintptr
	owner  *Handle
}

// Symbol name the Kernel was resolved from.
func (k *Kernel) Symbol() string {
	return k.symbol
}

// Invoke call the kernel once with the addresses of every field of b, mutating b in place.
//
// The call is synchronous and can not be interrupted. Faults inside the kernel are not recovered,
// they end the process. The kernel must not retain any address past its return.
// The only errors are unmet preconditions: a released or missing kernel, or a nil or malformed Block.
func (k *Kernel) Invoke(b *Block) (err error) {
	if k == nil || k.entry == 0 || !k.owner.Loaded() {
		var symbol string
		if k != nil {
			symbol = k.symbol
		}
		return &LoadError{Op: "invoke", Symbol: symbol, Err: ErrUninitialized}
	}
	if b == nil {
		return ErrNilBlock
	}
	if err = b.validate(); err != nil {
		return
	}
	if k.owner.debug {
		logger.Debug("invoke", zap.String("symbol", k.symbol), zap.String("block", spew.Sdump(b)))
	}
	call(k.entry, b)
	if k.owner.debug {
		logger.Debug("returned", zap.String("symbol", k.symbol), zap.Float64s("stress", b.Stress[:]), zap.Float64("pnewdt", b.Pnewdt))
	}
	return
}

// Invoke call k with b, see [Kernel.Invoke].
func Invoke(k *Kernel, b *Block) error {
	return k.Invoke(b)
}
