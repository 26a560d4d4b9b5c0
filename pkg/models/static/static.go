// Package static implements the Static formation model: every independent
// role stands on a fixed spot regardless of the focus point.
package static

import (
	"fmt"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/codec"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/ports"
)

// MethodName is the registry tag and document header of the model.
const MethodName = "Static"

func init() {
	formation.MustRegister(MethodName, New)
}

// Model keeps one position per role.
type Model struct {
	pos [domain.MaxPlayer + 1]geom.Vector2D
}

// New returns an empty Static model.
func New() ports.Model {
	return &Model{}
}

func (m *Model) MethodName() string { return MethodName }

func (m *Model) CreateRole(unum int, _ domain.SideType, home geom.Vector2D) error {
	if !domain.ValidUnum(unum) {
		return domain.ErrInvalidUnum
	}
	m.pos[unum] = home
	return nil
}

// Position ignores focus.
func (m *Model) Position(unum int, _ geom.Vector2D) geom.Vector2D {
	if !domain.ValidUnum(unum) {
		return geom.Vector2D{}
	}
	return m.pos[unum]
}

// Train moves each observed role to the mean of its observations.
func (m *Model) Train(set ports.TrainingSet) error {
	for unum, obs := range set.Observations {
		if !domain.ValidUnum(unum) || len(obs) == 0 {
			continue
		}
		var sum geom.Vector2D
		for _, o := range obs {
			sum = sum.Add(o.Position)
		}
		mean := sum.Scale(1 / float64(len(obs)))
		if !mean.IsValid() {
			return fmt.Errorf("%w: role %d mean is not finite", domain.ErrTraining, unum)
		}
		m.pos[unum] = mean
	}
	return nil
}

func (m *Model) Clone() ports.Model {
	c := *m
	return &c
}

// ReadConf reads
//
//	Begin Static
//	<unum> <x> <y>    (one row per named Side or Center role)
//	End Static
func (m *Model) ReadConf(r *codec.Reader, roles *domain.RoleTable) error {
	if _, err := r.Expect("Begin", MethodName); err != nil {
		return err
	}
	for unum := range roles.Independent() {
		xy, err := r.Row(unum, 2)
		if err != nil {
			return err
		}
		m.pos[unum] = geom.V(xy[0], xy[1])
	}
	_, err := r.Expect("End", MethodName)
	return err
}

func (m *Model) WriteConf(w *codec.Writer, roles *domain.RoleTable) error {
	w.Line("Begin", MethodName)
	for unum := range roles.Independent() {
		w.Line(unum, m.pos[unum].X, m.pos[unum].Y)
	}
	w.Line("End", MethodName)
	return w.Err()
}
