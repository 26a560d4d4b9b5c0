package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideType_CodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		st   SideType
		code int
	}{
		{"side", SideRole(), -1},
		{"center", CenterRole(), 0},
		{"symmetry", SymmetryOf(7), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.st.Code())
			assert.Equal(t, tt.st, SideTypeFromCode(tt.code))
		})
	}
}

func TestSideTypeFromCode_AnyNegativeIsSide(t *testing.T) {
	assert.True(t, SideTypeFromCode(-5).IsSide())
	assert.Equal(t, -1, SideTypeFromCode(-5).Code())
}

func TestSideType_Predicates(t *testing.T) {
	var zero SideType
	assert.True(t, zero.IsSide(), "zero value must be Side")
	assert.True(t, CenterRole().IsIndependent())
	assert.False(t, SymmetryOf(2).IsIndependent())
	assert.Equal(t, 2, SymmetryOf(2).Ref())
	assert.Equal(t, 0, SideRole().Ref())
	assert.Equal(t, "symmetry(2)", SymmetryOf(2).String())
}

func TestSideType_Invalid(t *testing.T) {
	st := InvalidSideType()
	assert.False(t, st.IsValid())
	assert.False(t, st.IsSide())
	assert.False(t, st.IsCenter())
	assert.False(t, st.IsSymmetry())
	assert.False(t, st.IsIndependent())
	assert.Equal(t, 0, st.Code())
	assert.Equal(t, 0, st.Ref())
	assert.Equal(t, "invalid", st.String())
	assert.True(t, SideRole().IsValid())

	var table RoleTable
	assert.Equal(t, st, table.Type(0))
	assert.Equal(t, st, table.Type(12))
	assert.True(t, table.Type(1).IsSide())
}
