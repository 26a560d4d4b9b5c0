package formation_test

import (
	"errors"
	"fmt"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/codec"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/ports"
)

// linearModel places each role at home + a skewed share of the focus point.
// The skew makes the y component depend on focus.X so that mirroring is not
// trivially satisfied.
type linearModel struct {
	name     string
	homes    map[int]geom.Vector2D
	created  []int
	trainErr error
	seen     *ports.TrainingSet // shared by clones
}

func linear(name string) formation.Constructor {
	return func() ports.Model {
		return &linearModel{name: name, homes: make(map[int]geom.Vector2D)}
	}
}

func (m *linearModel) MethodName() string { return m.name }

func (m *linearModel) CreateRole(unum int, t domain.SideType, home geom.Vector2D) error {
	m.homes[unum] = home
	m.created = append(m.created, unum)
	return nil
}

func (m *linearModel) Position(unum int, focus geom.Vector2D) geom.Vector2D {
	h := m.homes[unum]
	return geom.V(h.X+0.5*focus.X, h.Y+0.3*focus.Y+0.1*focus.X)
}

func (m *linearModel) Train(set ports.TrainingSet) error {
	if m.seen != nil {
		*m.seen = set
	}
	for unum, obs := range set.Observations {
		var sum geom.Vector2D
		for _, o := range obs {
			p := m.Position(unum, o.Focus).Sub(m.homes[unum])
			sum = sum.Add(o.Position.Sub(p))
		}
		m.homes[unum] = sum.Scale(1 / float64(len(obs)))
		if m.trainErr != nil {
			return m.trainErr
		}
	}
	return nil
}

func (m *linearModel) Clone() ports.Model {
	c := *m
	c.homes = make(map[int]geom.Vector2D, len(m.homes))
	for k, v := range m.homes {
		c.homes[k] = v
	}
	c.created = append([]int(nil), m.created...)
	return &c
}

func (m *linearModel) ReadConf(r *codec.Reader, roles *domain.RoleTable) error {
	if _, err := r.Expect("Begin", m.name); err != nil {
		return err
	}
	for unum := range roles.Independent() {
		xy, err := r.Row(unum, 2)
		if err != nil {
			return err
		}
		m.homes[unum] = geom.V(xy[0], xy[1])
	}
	_, err := r.Expect("End", m.name)
	return err
}

func (m *linearModel) WriteConf(w *codec.Writer, roles *domain.RoleTable) error {
	w.Line("Begin", m.name)
	for unum := range roles.Independent() {
		h := m.homes[unum]
		w.Line(unum, h.X, h.Y)
	}
	w.Line("End", m.name)
	return w.Err()
}

// failingRoleModel rejects every role creation.
type failingRoleModel struct{ linearModel }

var errNoRoles = errors.New("no roles for you")

func (m *failingRoleModel) CreateRole(int, domain.SideType, geom.Vector2D) error {
	return errNoRoles
}

func (m *failingRoleModel) Clone() ports.Model {
	return &failingRoleModel{linearModel: *m.linearModel.Clone().(*linearModel)}
}

var focusPoints = []geom.Vector2D{
	geom.V(0, 0),
	geom.V(10, -5),
	geom.V(-30.5, 20.25),
	geom.V(45, 30),
	geom.V(-52.5, -34),
	geom.V(3.3, 0.7),
}

func newRegistry(names ...string) *formation.Registry {
	reg := formation.NewRegistry()
	for _, name := range names {
		reg.MustRegister(name, linear(name))
	}
	return reg
}

func mustCreate(reg *formation.Registry, name string, opts ...formation.Option) *formation.Formation {
	f, err := reg.Create(name, opts...)
	if err != nil {
		panic(fmt.Sprintf("create %s: %v", name, err))
	}
	return f
}
