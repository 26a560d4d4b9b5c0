package formation

import (
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/formation/internal/logging"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/ports"
	"github.com/aretw0/formation/pkg/samples"
)

// Formation is the handle callers use to query, train and persist a
// formation. It owns the role/symmetry table and delegates the position
// math of independent roles to its Model.
//
// A Formation performs no internal locking. Position and Positions may be
// called concurrently as long as no UpdateRole, Train, CreateDefaultData or
// Read runs on the same instance at the same time.
type Formation struct {
	version  int
	roles    domain.RoleTable
	samples  *samples.DataSet
	model    ports.Model
	newModel Constructor
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// New creates an empty Formation backed by a model built from ctor.
// Every slot starts as an unnamed Side role.
func New(ctor Constructor, opts ...Option) (*Formation, error) {
	if ctor == nil {
		return nil, errors.New("model constructor is required")
	}
	model := ctor()
	if model == nil {
		return nil, errors.New("model constructor returned nil")
	}

	f := &Formation{
		version:  FormatVersion,
		roles:    domain.NewRoleTable(),
		model:    model,
		newModel: ctor,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// MethodName returns the registry tag of the underlying model.
func (f *Formation) MethodName() string {
	return f.model.MethodName()
}

// Version returns the document format version of the loaded data.
func (f *Formation) Version() int {
	return f.version
}

// Samples returns the attached sample corpus, which may be nil.
func (f *Formation) Samples() *samples.DataSet {
	return f.samples
}

// SetSamples attaches ds, which may be shared with other holders.
// The Formation only reads from an attached corpus; Read replaces the
// attachment with a new DataSet instead of writing into the old one.
func (f *Formation) SetSamples(ds *samples.DataSet) {
	f.samples = ds
}

// Roles returns a copy of the role/symmetry table.
func (f *Formation) Roles() domain.RoleTable {
	return f.roles
}

// Clone returns an independent copy sharing the same sample corpus.
func (f *Formation) Clone() *Formation {
	c := *f
	c.model = f.model.Clone()
	return &c
}

// IsSideType reports whether unum is a Side role. Out-of-range unums yield false.
func (f *Formation) IsSideType(unum int) bool {
	r, ok := f.roles.Get(unum)
	return ok && r.Type.IsSide()
}

// IsCenterType reports whether unum is a Center role. Out-of-range unums yield false.
func (f *Formation) IsCenterType(unum int) bool {
	r, ok := f.roles.Get(unum)
	return ok && r.Type.IsCenter()
}

// IsSymmetryType reports whether unum mirrors another role. Out-of-range unums yield false.
func (f *Formation) IsSymmetryType(unum int) bool {
	r, ok := f.roles.Get(unum)
	return ok && r.Type.IsSymmetry()
}

// SymmetryCode returns the document encoding of unum's side type: -1 for
// Side, 0 for Center, the mirrored unum for Symmetry. Out-of-range unums yield 0.
func (f *Formation) SymmetryCode(unum int) int {
	r, ok := f.roles.Get(unum)
	if !ok {
		return 0
	}
	return r.Type.Code()
}

// SideTypeOf returns the side type of unum. Out-of-range unums yield
// domain.InvalidSideType, for which every IsSide/IsCenter/IsSymmetry check is false.
func (f *Formation) SideTypeOf(unum int) domain.SideType {
	return f.roles.Type(unum)
}

// RoleName returns the role name of unum, or "" when no role is assigned.
func (f *Formation) RoleName(unum int) string {
	return f.roles.Name(unum)
}

// Position returns the target position of unum for focus. Out-of-range
// unums yield the zero vector.
func (f *Formation) Position(unum int, focus geom.Vector2D) geom.Vector2D {
	r, ok := f.roles.Get(unum)
	if !ok {
		return geom.Vector2D{}
	}
	if r.Type.IsSymmetry() {
		return f.independentPosition(r.Type.Ref(), focus.ReverseY()).ReverseY()
	}
	return f.independentPosition(unum, focus)
}

func (f *Formation) independentPosition(unum int, focus geom.Vector2D) geom.Vector2D {
	if f.roles.Type(unum).IsCenter() && focus.Y > 0 {
		return f.model.Position(unum, focus.ReverseY()).ReverseY()
	}
	return f.model.Position(unum, focus)
}

// Positions fills out with the position of every slot for focus, index i
// holding unum i+1, and returns it. out is reallocated when too small.
func (f *Formation) Positions(focus geom.Vector2D, out []geom.Vector2D) []geom.Vector2D {
	if cap(out) < domain.MaxPlayer {
		out = make([]geom.Vector2D, domain.MaxPlayer)
	}
	out = out[:domain.MaxPlayer]
	for unum := 1; unum <= domain.MaxPlayer; unum++ {
		out[unum-1] = f.Position(unum, focus)
	}
	return out
}

func (f *Formation) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Method: f.MethodName()}
}
