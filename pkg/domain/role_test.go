package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleTable_Defaults(t *testing.T) {
	table := NewRoleTable()
	for unum := 1; unum <= MaxPlayer; unum++ {
		r, ok := table.Get(unum)
		assert.True(t, ok)
		assert.True(t, r.Type.IsSide())
		assert.False(t, r.Assigned())
	}

	_, ok := table.Get(0)
	assert.False(t, ok)
	_, ok = table.Get(12)
	assert.False(t, ok)
}

func TestRoleTable_IsValueType(t *testing.T) {
	a := NewRoleTable()
	a.Set(2, Role{Name: "CenterBack", Type: SideRole()})

	b := a
	b.Set(2, Role{Name: "Changed", Type: CenterRole()})

	assert.Equal(t, "CenterBack", a.Name(2))
	assert.Equal(t, "Changed", b.Name(2))
}

func TestRoleTable_CheckTransition(t *testing.T) {
	table := NewRoleTable()
	table.Set(2, Role{Name: "CenterBack", Type: SideRole()})
	table.Set(6, Role{Name: "DefensiveHalf", Type: CenterRole()})
	table.Set(3, Role{Name: "CenterBack", Type: SymmetryOf(2)})

	tests := []struct {
		name string
		unum int
		next SideType
		err  error
	}{
		{"unum too low", 0, SideRole(), ErrInvalidUnum},
		{"unum too high", 12, SideRole(), ErrInvalidUnum},
		{"mirror side", 5, SymmetryOf(2), nil},
		{"mirror self", 2, SymmetryOf(2), ErrInvalidReference},
		{"mirror center", 5, SymmetryOf(6), ErrInvalidReference},
		{"mirror symmetry", 5, SymmetryOf(3), ErrInvalidReference},
		{"mirror unassigned side", 5, SymmetryOf(9), ErrInvalidReference},
		{"mirror out of range", 5, SymmetryOf(14), ErrInvalidReference},
		{"retype referenced side", 2, CenterRole(), ErrInvalidReference},
		{"keep referenced side", 2, SideRole(), nil},
		{"retype free center", 6, SideRole(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.CheckTransition(tt.unum, tt.next)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestRoleTable_Dependents(t *testing.T) {
	table := NewRoleTable()
	table.Set(2, Role{Name: "CenterBack", Type: SideRole()})
	table.Set(3, Role{Name: "CenterBack", Type: SymmetryOf(2)})
	table.Set(5, Role{Name: "CenterBack", Type: SymmetryOf(2)})

	assert.Equal(t, []int{3, 5}, table.Dependents(2))
	assert.Empty(t, table.Dependents(4))
}

func TestValidRoleName(t *testing.T) {
	assert.True(t, ValidRoleName("Goalie"))
	assert.False(t, ValidRoleName(""))
	assert.False(t, ValidRoleName("Center Back"))
	assert.False(t, ValidRoleName("#hash"))
	assert.False(t, ValidRoleName(UnassignedRoleName))
}

func TestFormatError(t *testing.T) {
	err := NewFormatError(3, "unexpected token %q", "foo")
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, `format error: line 3: unexpected token "foo"`, err.Error())
	assert.Equal(t, "format error: eof", NewFormatError(0, "eof").Error())
}

func TestRoleTable_Independent(t *testing.T) {
	table := NewRoleTable()
	table.Set(1, Role{Name: "Goalie", Type: CenterRole()})
	table.Set(2, Role{Name: "CenterBack", Type: SideRole()})
	table.Set(3, Role{Name: "CenterBack", Type: SymmetryOf(2)})

	var got []int
	for unum := range table.Independent() {
		got = append(got, unum)
	}
	assert.Equal(t, []int{1, 2}, got)
}
