/*
Package umat binds a compiled material kernel that follows the Abaqus UMAT convention and calls it once.

# Underwater

 1. The artifact is opened with eager binding (RTLD_NOW) through [purego], so unresolved references fail at [Load], not at call time.
 2. The entry point is looked up by its exact decorated name, gfortran for example exports umat_.
 3. Arguments travel by address in a fixed order of 37 slots plus the hidden CMNAME length, see [Contract].
    The call goes through a small C trampoline, which is why the package needs cgo.
 4. Every field lives in one heap allocated [Block], pinned for the duration of the call.

# Notes

 1. A fault inside the kernel is not recoverable, it ends the process. Run the harness in a child process when the kernel is not trusted.
 2. One artifact maps to one live [Handle] per process. Close it on every exit path or use [Use] / [Run].
 3. PNEWDT below 1 means the kernel wants a smaller increment, the harness only reports it.

# Use

	h, err := umat.Load("./libumat.so")
	if err != nil {
		return err
	}
	defer h.Close()
	k, err := h.Resolve("umat_")
	if err != nil {
		return err
	}
	b := umat.Prepare([]float64{100, 0.2}, 0.001)
	if err = k.Invoke(b); err != nil {
		return err
	}
	out := b.Inspect()

# Run tool

The run tool executes a scenario, lists artifact symbols and builds kernels from sources:

	go install github.com/ZenLiuCN/umat/umatrun@latest

For more details see the cli help:

	umatrun -h

[purego]: https://github.com/ebitengine/purego
*/
package umat
