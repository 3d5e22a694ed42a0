package umat

import (
	"testing"

	"github.com/ZenLiuCN/fn"
)

func BenchmarkLoadAndResolve(b *testing.B) {
	path := stubArtifact
	if path == "" {
		b.Skip("kernel artifact unavailable")
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h := fn.Panic1(Load(path))
		fn.Panic1(h.Resolve(symUmat))
		fn.Panic(h.Close())
	}
}

func BenchmarkPrepare(b *testing.B) {
	props := []float64{100.0, 0.2}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Prepare(props, 0.001)
	}
}

func BenchmarkPrepareAndInvoke(b *testing.B) {
	path := stubArtifact
	if path == "" {
		b.Skip("kernel artifact unavailable")
	}
	h := fn.Panic1(Load(path))
	defer fn.IgnoreClose(h)
	k := fn.Panic1(h.Resolve(symUmat))
	props := []float64{100.0, 0.2}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fn.Panic(k.Invoke(Prepare(props, 0.001)))
	}
}
