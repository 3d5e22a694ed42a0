package umat

import (
	"fmt"
	"io"
	"strings"
)

// ReportStrain write the imposed STRAN array.
func ReportStrain(w io.Writer, b *Block) error {
	s := strings.Builder{}
	s.WriteString("Imposed strain STRAN array:\n")
	for i, v := range b.Stran {
		s.WriteString(fmt.Sprintf("STRAN[%d] = %g\n", i, v))
	}
	_, err := io.WriteString(w, s.String())
	return err
}

// ReportOutputs write the tangent and stress left by the kernel.
func ReportOutputs(w io.Writer, o Outputs) error {
	s := strings.Builder{}
	s.WriteString("\nDDSDDE array after UMAT call:\n")
	for i := 0; i < NTENS; i++ {
		for j := 0; j < NTENS; j++ {
			s.WriteString(fmt.Sprintf("DDSDDE[%d,%d] = %g\n", i, j, o.Tangent(i, j)))
		}
	}
	s.WriteString("\nSTRESS array after UMAT call:\n")
	for i, v := range o.Stress {
		s.WriteString(fmt.Sprintf("STRESS[%d] = %g\n", i, v))
	}
	if o.WantsSmallerStep() {
		s.WriteString(fmt.Sprintf("\nPNEWDT = %g (kernel requests a smaller increment)\n", o.Pnewdt))
	}
	_, err := io.WriteString(w, s.String())
	return err
}
