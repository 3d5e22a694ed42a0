package umat

import "unsafe"

// Counts of the 3-D stress state this harness drives.
const (
	NDI     = 3          // direct stress components
	NSHR    = 3          // shear stress components
	NTENS   = NDI + NSHR // stress and strain vector length
	NameLen = 80         // CMNAME is CHARACTER*80
)

type (
	// Vector holds NTENS stress or strain components.
	Vector [NTENS]float64
	// Stiffness is the NTENS×NTENS tangent in column-major order, element (i,j) at j*NTENS+i.
	Stiffness [NTENS * NTENS]float64
	// Matrix3 is a 3×3 matrix in column-major order.
	Matrix3 [9]float64
	// Name is a blank padded Fortran character buffer.
	Name [NameLen]byte
)

// At read element (i,j).
func (s *Stiffness) At(i, j int) float64 {
	return s[j*NTENS+i]
}

// Set write element (i,j).
func (s *Stiffness) Set(i, j int, v float64) {
	s[j*NTENS+i] = v
}

// At read element (i,j).
func (m *Matrix3) At(i, j int) float64 {
	return m[j*3+i]
}

func identity3() Matrix3 {
	return Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// the foreign side reads these types as raw memory.
var (
	_ [unsafe.Sizeof(Vector{}) - NTENS*8]struct{}
	_ [NTENS*8 - unsafe.Sizeof(Vector{})]struct{}
	_ [unsafe.Sizeof(Stiffness{}) - NTENS*NTENS*8]struct{}
	_ [NTENS*NTENS*8 - unsafe.Sizeof(Stiffness{})]struct{}
	_ [unsafe.Sizeof(Matrix3{}) - 72]struct{}
	_ [72 - unsafe.Sizeof(Matrix3{})]struct{}
	_ [unsafe.Sizeof(Name{}) - NameLen]struct{}
	_ [NameLen - unsafe.Sizeof(Name{})]struct{}
	_ [unsafe.Sizeof(int32(0)) - 4]struct{}
)

// Elem is the element type of one argument slot.
type Elem uint8

const (
	Float64 Elem = iota + 1 // REAL*8
	Int32                   // INTEGER
	Char                    // CHARACTER
	Length                  // hidden character length, passed by value
)

// Size of one element in bytes.
func (e Elem) Size() uintptr {
	switch e {
	case Float64:
		return 8
	case Int32:
		return 4
	case Char:
		return 1
	case Length:
		return unsafe.Sizeof(uintptr(0))
	}
	return 0
}

func (e Elem) String() string {
	switch e {
	case Float64:
		return "double"
	case Int32:
		return "int"
	case Char:
		return "char"
	case Length:
		return "size_t"
	}
	return "unknown"
}

// Dir is the data direction of a slot as seen by the kernel.
type Dir uint8

const (
	In Dir = iota + 1
	Out
	InOut
)

func (d Dir) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case InOut:
		return "inout"
	}
	return "unknown"
}

// Slot describes one positional argument.
type Slot struct {
	Name  string
	Elem  Elem
	Len   int    // element count, 0 when sized at runtime by Count
	Count string // slot holding the runtime length
	Dir   Dir
}

// Size in bytes of a fixed length slot, 0 for runtime sized slots.
func (s Slot) Size() uintptr {
	return uintptr(s.Len) * s.Elem.Size()
}

// argCount is the number of by-address arguments; the hidden CMNAME length follows them.
const argCount = 37

// contract is the UMAT argument list in call order.
var contract = [argCount + 1]Slot{
	{Name: "STRESS", Elem: Float64, Len: NTENS, Dir: InOut},
	{Name: "STATEV", Elem: Float64, Count: "NSTATV", Dir: InOut},
	{Name: "DDSDDE", Elem: Float64, Len: NTENS * NTENS, Dir: Out},
	{Name: "SSE", Elem: Float64, Len: 1, Dir: InOut},
	{Name: "SPD", Elem: Float64, Len: 1, Dir: InOut},
	{Name: "SCD", Elem: Float64, Len: 1, Dir: InOut},
	{Name: "RPL", Elem: Float64, Len: 1, Dir: Out},
	{Name: "DDSDDT", Elem: Float64, Len: NTENS, Dir: Out},
	{Name: "DRPLDE", Elem: Float64, Len: NTENS, Dir: Out},
	{Name: "DRPLDT", Elem: Float64, Len: 1, Dir: Out},
	{Name: "STRAN", Elem: Float64, Len: NTENS, Dir: In},
	{Name: "DSTRAN", Elem: Float64, Len: NTENS, Dir: In},
	{Name: "TIME", Elem: Float64, Len: 2, Dir: In},
	{Name: "DTIME", Elem: Float64, Len: 1, Dir: In},
	{Name: "TEMP", Elem: Float64, Len: 1, Dir: In},
	{Name: "DTEMP", Elem: Float64, Len: 1, Dir: In},
	{Name: "PREDEF", Elem: Float64, Len: 1, Dir: In},
	{Name: "DPRED", Elem: Float64, Len: 1, Dir: In},
	{Name: "CMNAME", Elem: Char, Len: NameLen, Dir: In},
	{Name: "NDI", Elem: Int32, Len: 1, Dir: In},
	{Name: "NSHR", Elem: Int32, Len: 1, Dir: In},
	{Name: "NTENS", Elem: Int32, Len: 1, Dir: In},
	{Name: "NSTATV", Elem: Int32, Len: 1, Dir: In},
	{Name: "PROPS", Elem: Float64, Count: "NPROPS", Dir: In},
	{Name: "NPROPS", Elem: Int32, Len: 1, Dir: In},
	{Name: "COORDS", Elem: Float64, Len: 3, Dir: In},
	{Name: "DROT", Elem: Float64, Len: 9, Dir: In},
	{Name: "PNEWDT", Elem: Float64, Len: 1, Dir: InOut},
	{Name: "CELENT", Elem: Float64, Len: 1, Dir: In},
	{Name: "DFGRD0", Elem: Float64, Len: 9, Dir: In},
	{Name: "DFGRD1", Elem: Float64, Len: 9, Dir: In},
	{Name: "NOEL", Elem: Int32, Len: 1, Dir: In},
	{Name: "NPT", Elem: Int32, Len: 1, Dir: In},
	{Name: "LAYER", Elem: Int32, Len: 1, Dir: In},
	{Name: "KSPT", Elem: Int32, Len: 1, Dir: In},
	{Name: "KSTEP", Elem: Int32, Len: 1, Dir: In},
	{Name: "KINC", Elem: Int32, Len: 1, Dir: In},
	{Name: "CMNAME_LEN", Elem: Length, Len: 1, Dir: In},
}

// Contract return a copy of the UMAT argument list in call order.
func Contract() [argCount + 1]Slot {
	return contract
}

// SlotIndex return the position of the named slot, or -1.
func SlotIndex(name string) int {
	for i, s := range contract {
		if s.Name == name {
			return i
		}
	}
	return -1
}
