package umat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareZero(t *testing.T) {
	b := Prepare(nil, 0)
	assert.Equal(t, Vector{}, b.Stran)
	assert.Equal(t, Vector{}, b.Dstran)
	assert.Equal(t, Vector{}, b.Stress)
	assert.Equal(t, Stiffness{}, b.Ddsdde)
	assert.Equal(t, Vector{}, b.Ddsddt)
	assert.Equal(t, Vector{}, b.Drplde)
	assert.Equal(t, [3]float64{}, b.Coords)
	assert.Equal(t, [2]float64{}, b.Time)
	assert.Zero(t, b.Sse)
	assert.Zero(t, b.Spd)
	assert.Zero(t, b.Scd)
	assert.Zero(t, b.Rpl)
	assert.Zero(t, b.Drpldt)
	assert.EqualValues(t, NDI, b.Ndi)
	assert.EqualValues(t, NSHR, b.Nshr)
	assert.EqualValues(t, NTENS, b.Ntens)
	assert.Zero(t, b.Nprops)
	assert.Zero(t, b.Nstatv)
	assert.Len(t, b.Props, 1)
	assert.Len(t, b.Statev, 1)
	assert.Equal(t, identity3(), b.Drot)
	assert.Equal(t, identity3(), b.Dfgrd0)
	assert.Equal(t, identity3(), b.Dfgrd1)
	assert.Equal(t, 1.0, b.Pnewdt)
	assert.Equal(t, strings.Repeat(" ", NameLen), string(b.Cmname[:]))
	assert.NoError(t, b.validate())
}

func TestPrepareInputs(t *testing.T) {
	props := []float64{100.0, 0.2}
	b := Prepare(props, 0.001)
	assert.Equal(t, Vector{0.001}, b.Stran)
	assert.Equal(t, Vector{}, b.Dstran)
	assert.Equal(t, props, b.Props)
	assert.EqualValues(t, 2, b.Nprops)
	props[0] = -1
	assert.Equal(t, 100.0, b.Props[0], "props must be copied")
}

func TestPrepareOptions(t *testing.T) {
	statev := []float64{1, 2, 3}
	b := Prepare([]float64{1}, 0,
		WithMaterial("STEEL"),
		WithStateVariables(statev),
		WithTime(0.5, 1.5, 0.1),
		WithTemperature(20, 1),
		WithElement(7, 3),
		WithIncrement(2, 9),
		WithCharacteristicLength(0.25),
		WithCoordinates(1, 2, 3),
		WithStrainIncrement(0, 0.002),
	)
	assert.Equal(t, "STEEL", b.Material())
	assert.Equal(t, byte(' '), b.Cmname[5])
	assert.Equal(t, statev, b.Statev)
	assert.EqualValues(t, 3, b.Nstatv)
	statev[0] = 9
	assert.Equal(t, 1.0, b.Statev[0])
	assert.Equal(t, [2]float64{0.5, 1.5}, b.Time)
	assert.Equal(t, 0.1, b.Dtime)
	assert.Equal(t, 20.0, b.Temp)
	assert.Equal(t, 1.0, b.Dtemp)
	assert.EqualValues(t, 7, b.Noel)
	assert.EqualValues(t, 3, b.Npt)
	assert.EqualValues(t, 2, b.Kstep)
	assert.EqualValues(t, 9, b.Kinc)
	assert.Equal(t, 0.25, b.Celent)
	assert.Equal(t, [3]float64{1, 2, 3}, b.Coords)
	assert.Equal(t, Vector{0, 0.002}, b.Dstran)
	assert.NoError(t, b.validate())
}

func TestNameTruncate(t *testing.T) {
	long := strings.Repeat("M", NameLen+10)
	n := NewName(long)
	assert.Equal(t, long[:NameLen], n.String())
	assert.Equal(t, "", NewName("").String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(b *Block)
	}{
		{"statev emptied", func(b *Block) { b.Statev = nil }},
		{"nstatv beyond statev", func(b *Block) { b.Nstatv = 5 }},
		{"props emptied", func(b *Block) { b.Props = b.Props[:0] }},
		{"nprops beyond props", func(b *Block) { b.Nprops = 3 }},
		{"negative nprops", func(b *Block) { b.Nprops = -1 }},
		{"ntens changed", func(b *Block) { b.Ntens = 4 }},
		{"shear count changed", func(b *Block) { b.Nshr = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Prepare([]float64{1, 2}, 0)
			tt.modify(b)
			assert.ErrorIs(t, b.validate(), ErrMalformedBlock)
		})
	}
}

func TestInspectCopies(t *testing.T) {
	b := Prepare(nil, 0, WithStateVariables([]float64{4, 5}))
	b.Stress[2] = 3
	b.Ddsdde.Set(2, 3, 8)
	b.Pnewdt = 0.25
	o := b.Inspect()
	require.Equal(t, []float64{4, 5}, o.Statev)
	assert.Equal(t, 3.0, o.Stress[2])
	assert.Equal(t, 8.0, o.Tangent(2, 3))
	assert.True(t, o.WantsSmallerStep())

	b.Stress[2] = 0
	b.Statev[0] = 0
	assert.Equal(t, 3.0, o.Stress[2])
	assert.Equal(t, 4.0, o.Statev[0])

	b.Nstatv = 10
	assert.Len(t, b.Inspect().Statev, 2)
}
