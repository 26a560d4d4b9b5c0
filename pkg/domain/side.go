package domain

import "fmt"

// SideKind enumerates the side-type classifications.
type SideKind int

const (
	// KindSide is an independent role with full-field parameters.
	KindSide SideKind = iota
	// KindCenter is an independent role constrained to the central region.
	KindCenter
	// KindSymmetry derives its position by mirroring a Side role.
	KindSymmetry
	// KindInvalid is reported for slots outside the table.
	KindInvalid
)

func (k SideKind) String() string {
	switch k {
	case KindSide:
		return "side"
	case KindCenter:
		return "center"
	case KindSymmetry:
		return "symmetry"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// SideType is the tagged union {Side, Center, Symmetry(ref)}.
// The zero value is Side.
type SideType struct {
	kind SideKind
	ref  int
}

// SideRole returns the Side classification.
func SideRole() SideType { return SideType{kind: KindSide} }

// CenterRole returns the Center classification.
func CenterRole() SideType { return SideType{kind: KindCenter} }

// SymmetryOf returns the classification mirroring role ref.
func SymmetryOf(ref int) SideType { return SideType{kind: KindSymmetry, ref: ref} }

// InvalidSideType is the classification of an out-of-range unum. It is
// neither Side, Center nor Symmetry.
func InvalidSideType() SideType { return SideType{kind: KindInvalid} }

// IsValid reports whether t is one of Side, Center or Symmetry.
func (t SideType) IsValid() bool { return t.kind != KindInvalid }

// Kind returns the classification tag.
func (t SideType) Kind() SideKind { return t.kind }

// Ref returns the mirrored unum for Symmetry roles and 0 otherwise.
func (t SideType) Ref() int {
	if t.kind != KindSymmetry {
		return 0
	}
	return t.ref
}

func (t SideType) IsSide() bool     { return t.kind == KindSide }
func (t SideType) IsCenter() bool   { return t.kind == KindCenter }
func (t SideType) IsSymmetry() bool { return t.kind == KindSymmetry }

// IsIndependent reports whether the role owns its own model parameters.
func (t SideType) IsIndependent() bool {
	return t.kind == KindSide || t.kind == KindCenter
}

// Code converts the classification to the signed integer used in documents:
// -1 for Side, 0 for Center, the referenced unum for Symmetry. The invalid
// classification encodes as 0.
func (t SideType) Code() int {
	switch t.kind {
	case KindCenter, KindInvalid:
		return 0
	case KindSymmetry:
		return t.ref
	default:
		return -1
	}
}

// SideTypeFromCode is the inverse of Code. Any negative value is Side.
func SideTypeFromCode(code int) SideType {
	switch {
	case code < 0:
		return SideRole()
	case code == 0:
		return CenterRole()
	default:
		return SymmetryOf(code)
	}
}

func (t SideType) String() string {
	if t.kind == KindSymmetry {
		return fmt.Sprintf("symmetry(%d)", t.ref)
	}
	return t.kind.String()
}
