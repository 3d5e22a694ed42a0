package umat

import (
	"bytes"
	"fmt"
	"unsafe"
)

// Block is the argument block of one UMAT call, one field per [Contract] slot in the same order.
//
// Every field is passed by address. A Block must stay where [Prepare] allocated it,
// and Statev and Props must not be reallocated between Prepare and [Kernel.Invoke].
type Block struct {
	Stress Vector
	Statev []float64
	Ddsdde Stiffness
	Sse    float64
	Spd    float64
	Scd    float64
	Rpl    float64
	Ddsddt Vector
	Drplde Vector
	Drpldt float64
	Stran  Vector
	Dstran Vector
	Time   [2]float64 // step time, total time
	Dtime  float64
	Temp   float64
	Dtemp  float64
	Predef [1]float64
	Dpred  [1]float64
	Cmname Name
	Ndi    int32
	Nshr   int32
	Ntens  int32
	Nstatv int32
	Props  []float64
	Nprops int32
	Coords [3]float64
	Drot   Matrix3
	Pnewdt float64
	Celent float64
	Dfgrd0 Matrix3
	Dfgrd1 Matrix3
	Noel   int32
	Npt    int32
	Layer  int32
	Kspt   int32
	Kstep  int32
	Kinc   int32
}

// Option adjust a Block while [Prepare] builds it.
type Option func(b *Block)

// WithMaterial set the material name, truncated to [NameLen] and blank padded.
func WithMaterial(name string) Option {
	return func(b *Block) {
		b.Cmname = NewName(name)
	}
}

// WithStateVariables copy initial state variables and set NSTATV.
func WithStateVariables(v []float64) Option {
	return func(b *Block) {
		if len(v) == 0 {
			return
		}
		b.Statev = append(make([]float64, 0, len(v)), v...)
		b.Nstatv = int32(len(v))
	}
}

// WithTime set step time, total time and the time increment.
func WithTime(step, total, dt float64) Option {
	return func(b *Block) {
		b.Time = [2]float64{step, total}
		b.Dtime = dt
	}
}

// WithTemperature set the temperature and its increment.
func WithTemperature(t, dt float64) Option {
	return func(b *Block) {
		b.Temp = t
		b.Dtemp = dt
	}
}

// WithElement set element and integration point numbers.
func WithElement(noel, npt int) Option {
	return func(b *Block) {
		b.Noel = int32(noel)
		b.Npt = int32(npt)
	}
}

// WithIncrement set step and increment numbers.
func WithIncrement(kstep, kinc int) Option {
	return func(b *Block) {
		b.Kstep = int32(kstep)
		b.Kinc = int32(kinc)
	}
}

// WithCharacteristicLength set CELENT.
func WithCharacteristicLength(l float64) Option {
	return func(b *Block) {
		b.Celent = l
	}
}

// WithCoordinates set the integration point coordinates.
func WithCoordinates(x, y, z float64) Option {
	return func(b *Block) {
		b.Coords = [3]float64{x, y, z}
	}
}

// WithStrainIncrement copy up to NTENS components into DSTRAN.
func WithStrainIncrement(d ...float64) Option {
	return func(b *Block) {
		copy(b.Dstran[:], d)
	}
}

// Prepare build a Block for one call.
//
// Vectors and matrices are zero, NDI/NSHR/NTENS are 3/3/6, props is copied into PROPS with NPROPS = len(props)
// and imposedStrain goes to STRAN[0]. Scalars the kernel may read before writing are defined:
// rotation and deformation gradients are identity, PNEWDT is 1, element, point, layer, section, step and increment are 1,
// the material name is blank. NPROPS is not checked against what the kernel expects.
func Prepare(props []float64, imposedStrain float64, opts ...Option) *Block {
	b := new(Block)
	b.Ndi, b.Nshr, b.Ntens = NDI, NSHR, NTENS
	b.Cmname = NewName("")
	b.Drot = identity3()
	b.Dfgrd0 = identity3()
	b.Dfgrd1 = identity3()
	b.Pnewdt = 1
	b.Noel, b.Npt, b.Layer, b.Kspt, b.Kstep, b.Kinc = 1, 1, 1, 1, 1, 1
	// PROPS and STATEV keep at least one element so their addresses are valid.
	b.Props = make([]float64, max(len(props), 1))
	copy(b.Props, props)
	b.Nprops = int32(len(props))
	b.Statev = make([]float64, 1)
	b.Stran[0] = imposedStrain
	for _, o := range opts {
		o(b)
	}
	return b
}

// Tangent read DDSDDE(i,j).
func (b *Block) Tangent(i, j int) float64 {
	return b.Ddsdde.At(i, j)
}

// Material return the material name without padding.
func (b *Block) Material() string {
	return b.Cmname.String()
}

func (b *Block) validate() error {
	switch {
	case len(b.Statev) == 0 || int(b.Nstatv) > len(b.Statev) || b.Nstatv < 0:
		return fmt.Errorf("%w: STATEV holds %d values, NSTATV is %d", ErrMalformedBlock, len(b.Statev), b.Nstatv)
	case len(b.Props) == 0 || int(b.Nprops) > len(b.Props) || b.Nprops < 0:
		return fmt.Errorf("%w: PROPS holds %d values, NPROPS is %d", ErrMalformedBlock, len(b.Props), b.Nprops)
	case b.Ntens != NTENS || b.Ndi+b.Nshr != b.Ntens:
		return fmt.Errorf("%w: NDI=%d NSHR=%d NTENS=%d", ErrMalformedBlock, b.Ndi, b.Nshr, b.Ntens)
	}
	return nil
}

// args is the only place field addresses are taken; the order is the order of [Contract].
func (b *Block) args() (a [argCount]unsafe.Pointer) {
	a = [argCount]unsafe.Pointer{
		unsafe.Pointer(&b.Stress[0]),
		unsafe.Pointer(&b.Statev[0]),
		unsafe.Pointer(&b.Ddsdde[0]),
		unsafe.Pointer(&b.Sse),
		unsafe.Pointer(&b.Spd),
		unsafe.Pointer(&b.Scd),
		unsafe.Pointer(&b.Rpl),
		unsafe.Pointer(&b.Ddsddt[0]),
		unsafe.Pointer(&b.Drplde[0]),
		unsafe.Pointer(&b.Drpldt),
		unsafe.Pointer(&b.Stran[0]),
		unsafe.Pointer(&b.Dstran[0]),
		unsafe.Pointer(&b.Time[0]),
		unsafe.Pointer(&b.Dtime),
		unsafe.Pointer(&b.Temp),
		unsafe.Pointer(&b.Dtemp),
		unsafe.Pointer(&b.Predef[0]),
		unsafe.Pointer(&b.Dpred[0]),
		unsafe.Pointer(&b.Cmname[0]),
		unsafe.Pointer(&b.Ndi),
		unsafe.Pointer(&b.Nshr),
		unsafe.Pointer(&b.Ntens),
		unsafe.Pointer(&b.Nstatv),
		unsafe.Pointer(&b.Props[0]),
		unsafe.Pointer(&b.Nprops),
		unsafe.Pointer(&b.Coords[0]),
		unsafe.Pointer(&b.Drot[0]),
		unsafe.Pointer(&b.Pnewdt),
		unsafe.Pointer(&b.Celent),
		unsafe.Pointer(&b.Dfgrd0[0]),
		unsafe.Pointer(&b.Dfgrd1[0]),
		unsafe.Pointer(&b.Noel),
		unsafe.Pointer(&b.Npt),
		unsafe.Pointer(&b.Layer),
		unsafe.Pointer(&b.Kspt),
		unsafe.Pointer(&b.Kstep),
		unsafe.Pointer(&b.Kinc),
	}
	return
}

// Outputs is a read-only copy of what the kernel left in a Block.
type Outputs struct {
	Stress Vector
	Ddsdde Stiffness
	Statev []float64
	Sse    float64
	Spd    float64
	Scd    float64
	Rpl    float64
	Ddsddt Vector
	Drplde Vector
	Drpldt float64
	Pnewdt float64
}

// Inspect copy the post-call state of every kernel written field.
func (b *Block) Inspect() Outputs {
	n := max(min(int(b.Nstatv), len(b.Statev)), 0)
	return Outputs{
		Stress: b.Stress,
		Ddsdde: b.Ddsdde,
		Statev: append([]float64(nil), b.Statev[:n]...),
		Sse:    b.Sse,
		Spd:    b.Spd,
		Scd:    b.Scd,
		Rpl:    b.Rpl,
		Ddsddt: b.Ddsddt,
		Drplde: b.Drplde,
		Drpldt: b.Drpldt,
		Pnewdt: b.Pnewdt,
	}
}

// Tangent read DDSDDE(i,j).
func (o Outputs) Tangent(i, j int) float64 {
	return o.Ddsdde.At(i, j)
}

// WantsSmallerStep reports the kernel asked for a smaller time increment through PNEWDT.
// Acting on it is up to an enclosing step control loop.
func (o Outputs) WantsSmallerStep() bool {
	return o.Pnewdt < 1
}

// NewName build a blank padded material name.
func NewName(s string) (n Name) {
	copy(n[:], s)
	for i := min(len(s), NameLen); i < NameLen; i++ {
		n[i] = ' '
	}
	return
}

func (n Name) String() string {
	return string(bytes.TrimRight(n[:], " \x00"))
}
