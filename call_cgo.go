//go:build linux || darwin

package umat

/*
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>

typedef void (*umat_entry)(
	double* stress, double* statev, double* ddsdde,
	double* sse, double* spd, double* scd, double* rpl,
	double* ddsddt, double* drplde, double* drpldt,
	double* stran, double* dstran, double* time, double* dtime,
	double* temp, double* dtemp, double* predef, double* dpred,
	char* cmname, int* ndi, int* nshr, int* ntens, int* nstatv,
	double* props, int* nprops, double* coords, double* drot,
	double* pnewdt, double* celent, double* dfgrd0, double* dfgrd1,
	int* noel, int* npt, int* layer, int* kspt, int* kstep, int* kinc,
	size_t cmname_len);

static void umat_call(uintptr_t entry, void** a, size_t cmname_len) {
	((umat_entry)entry)(
		(double*)a[0], (double*)a[1], (double*)a[2],
		(double*)a[3], (double*)a[4], (double*)a[5], (double*)a[6],
		(double*)a[7], (double*)a[8], (double*)a[9],
		(double*)a[10], (double*)a[11], (double*)a[12], (double*)a[13],
		(double*)a[14], (double*)a[15], (double*)a[16], (double*)a[17],
		(char*)a[18], (int*)a[19], (int*)a[20], (int*)a[21], (int*)a[22],
		(double*)a[23], (int*)a[24], (double*)a[25], (double*)a[26],
		(double*)a[27], (double*)a[28], (double*)a[29], (double*)a[30],
		(int*)a[31], (int*)a[32], (int*)a[33], (int*)a[34], (int*)a[35], (int*)a[36],
		cmname_len);
}
*/
import "C"

import (
	"runtime"
	"unsafe"
)

var (
	_ [unsafe.Sizeof(C.int(0)) - 4]struct{}
	_ [4 - unsafe.Sizeof(C.int(0))]struct{}
	_ [unsafe.Sizeof(C.double(0)) - 8]struct{}
	_ [8 - unsafe.Sizeof(C.double(0))]struct{}
)

// call pin b and the backing arrays of its slices, then hand the kernel a
// C-allocated table of field addresses. Pinned pointers may live in C memory
// for the duration of the call.
func call(entry uintptr, b *Block) {
	var pin runtime.Pinner
	defer pin.Unpin()
	pin.Pin(b)
	pin.Pin(&b.Statev[0])
	pin.Pin(&b.Props[0])
	table := (*[argCount]unsafe.Pointer)(C.calloc(argCount, C.size_t(unsafe.Sizeof(unsafe.Pointer(nil)))))
	defer C.free(unsafe.Pointer(table))
	*table = b.args()
	C.umat_call(C.uintptr_t(entry), (*unsafe.Pointer)(unsafe.Pointer(&table[0])), C.size_t(NameLen))
}
