package domain

import "iter"

// Role is the name and classification of one team slot.
// An empty name means no role parameters are assigned yet.
type Role struct {
	Name string
	Type SideType
}

// Assigned reports whether the slot carries a role name.
func (r Role) Assigned() bool {
	return r.Name != ""
}

// RoleTable is the fixed 11-slot role/symmetry table, indexed 1..MaxPlayer.
// It is a value type: assigning it copies every slot.
type RoleTable struct {
	roles [MaxPlayer]Role
}

// NewRoleTable returns a table with every slot Side and unnamed.
func NewRoleTable() RoleTable {
	return RoleTable{}
}

// Get returns the role at unum. Out-of-range unums yield the zero Role.
func (t *RoleTable) Get(unum int) (Role, bool) {
	if !ValidUnum(unum) {
		return Role{}, false
	}
	return t.roles[unum-1], true
}

// Set stores the role at unum without any invariant check.
// Callers enforce the table invariants; see CheckTransition.
func (t *RoleTable) Set(unum int, r Role) {
	if !ValidUnum(unum) {
		return
	}
	t.roles[unum-1] = r
}

// Type returns the classification at unum, or InvalidSideType for
// out-of-range values.
func (t *RoleTable) Type(unum int) SideType {
	r, ok := t.Get(unum)
	if !ok {
		return InvalidSideType()
	}
	return r.Type
}

// Name returns the role name at unum, or "".
func (t *RoleTable) Name(unum int) string {
	r, _ := t.Get(unum)
	return r.Name
}

// Dependents returns the unums whose Symmetry reference is ref.
func (t *RoleTable) Dependents(ref int) []int {
	var out []int
	for i, r := range t.roles {
		if r.Type.IsSymmetry() && r.Type.Ref() == ref {
			out = append(out, i+1)
		}
	}
	return out
}

// CheckTransition validates moving unum to type next without mutating the table.
func (t *RoleTable) CheckTransition(unum int, next SideType) error {
	if !ValidUnum(unum) {
		return ErrInvalidUnum
	}
	cur := t.roles[unum-1].Type
	if !next.IsSide() && len(t.Dependents(unum)) > 0 && cur != next {
		return ErrInvalidReference
	}
	if !next.IsSymmetry() {
		return nil
	}

	ref := next.Ref()
	if ref == unum || !ValidUnum(ref) {
		return ErrInvalidReference
	}
	target := t.roles[ref-1]
	if !target.Type.IsSide() || !target.Assigned() {
		return ErrInvalidReference
	}
	return nil
}

// Each calls fn for every slot in unum order.
func (t *RoleTable) Each(fn func(unum int, r Role)) {
	for i, r := range t.roles {
		fn(i+1, r)
	}
}

// Independent yields, in unum order, every named Side or Center slot: the
// slots that carry their own model parameters.
func (t *RoleTable) Independent() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, r := range t.roles {
			if r.Assigned() && r.Type.IsIndependent() && !yield(i+1) {
				return
			}
		}
	}
}

// UnassignedRoleName marks an unassigned Side slot in a document role row.
const UnassignedRoleName = "-"

// ValidRoleName reports whether name can be stored in a role row: it must be
// a single non-empty token other than UnassignedRoleName.
func ValidRoleName(name string) bool {
	if name == "" || name == UnassignedRoleName {
		return false
	}
	for _, r := range name {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '#' {
			return false
		}
	}
	return true
}
