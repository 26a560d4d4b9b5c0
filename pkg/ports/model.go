package ports

import (
	"github.com/aretw0/formation/pkg/codec"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
)

// Model is the capability interface implemented by each concrete formation
// method. The formation core owns the role table and handles symmetry; a
// Model only ever computes positions for independent (Side or Center) roles.
type Model interface {
	// MethodName returns the constant registry tag of the model class.
	MethodName() string

	// CreateRole allocates the per-role parameters of unum, seeded so that the
	// role sits at home when the focus is at the center mark.
	CreateRole(unum int, t domain.SideType, home geom.Vector2D) error

	// Position returns the position of an independent role for focus.
	// Center roles are only queried with focus.Y <= 0.
	Position(unum int, focus geom.Vector2D) geom.Vector2D

	// Train refits the parameters from set. The core trains a clone and
	// discards it on error, so implementations may fail midway.
	Train(set TrainingSet) error

	// Clone returns a deep copy.
	Clone() Model

	// ReadConf parses the model block of a document. The role table has
	// already been read.
	ReadConf(r *codec.Reader, roles *domain.RoleTable) error

	// WriteConf writes the model block so that ReadConf restores it exactly.
	WriteConf(w *codec.Writer, roles *domain.RoleTable) error
}

// Observation is one observed position of an independent role.
type Observation struct {
	Focus    geom.Vector2D
	Position geom.Vector2D
}

// TrainingSet is the corpus prepared for a Model: observations grouped by
// independent role, with Center roles folded onto y <= 0 and mirrored roles
// contributing their reflected observations to the role they mirror.
type TrainingSet struct {
	Roles        domain.RoleTable
	Observations map[int][]Observation
	SampleCount  int
}

// For returns the observations of unum.
func (s TrainingSet) For(unum int) []Observation {
	return s.Observations[unum]
}
