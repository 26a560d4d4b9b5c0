// Package knn implements a nearest-neighbour formation model. Training keeps
// the observations of every role; a position is the inverse-distance weighted
// mean of the K observations whose focus points lie closest to the query.
// A role with no observations stays on its home position.
package knn

import (
	"fmt"
	"slices"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/codec"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/ports"
	"github.com/aretw0/formation/pkg/samples"
)

// MethodName is the registry tag and document header of the model.
const MethodName = "KNN"

// DefaultK is the neighbour count of new models.
const DefaultK = 3

// exact is the focus distance under which an observation is returned as is.
const exact = 1e-6

// maxObservations bounds a role's observations: one per sample plus one
// reflected per mirror of the role.
const maxObservations = samples.MaxSize * domain.MaxPlayer

func init() {
	formation.MustRegister(MethodName, New)
}

type role struct {
	home geom.Vector2D
	obs  []ports.Observation
}

// Model keeps home positions and observations per role.
type Model struct {
	k     int
	roles [domain.MaxPlayer + 1]role
}

// New returns an empty KNN model using DefaultK neighbours.
func New() ports.Model {
	return &Model{k: DefaultK}
}

func (m *Model) MethodName() string { return MethodName }

// K returns the neighbour count.
func (m *Model) K() int { return m.k }

func (m *Model) CreateRole(unum int, _ domain.SideType, home geom.Vector2D) error {
	if !domain.ValidUnum(unum) {
		return domain.ErrInvalidUnum
	}
	m.roles[unum] = role{home: home}
	return nil
}

func (m *Model) Position(unum int, focus geom.Vector2D) geom.Vector2D {
	if !domain.ValidUnum(unum) {
		return geom.Vector2D{}
	}
	r := m.roles[unum]
	if len(r.obs) == 0 {
		return r.home
	}

	type neighbour struct {
		d2  float64
		pos geom.Vector2D
	}
	near := make([]neighbour, len(r.obs))
	for i, o := range r.obs {
		near[i] = neighbour{d2: o.Focus.Dist2(focus), pos: o.Position}
	}
	slices.SortStableFunc(near, func(a, b neighbour) int {
		switch {
		case a.d2 < b.d2:
			return -1
		case a.d2 > b.d2:
			return 1
		}
		return 0
	})
	if near[0].d2 < exact*exact {
		return near[0].pos
	}

	var sum geom.Vector2D
	var total float64
	for _, n := range near[:min(m.k, len(near))] {
		w := 1 / n.d2
		sum = sum.Add(n.pos.Scale(w))
		total += w
	}
	return sum.Scale(1 / total)
}

// Train replaces the observations of every role present in set.
func (m *Model) Train(set ports.TrainingSet) error {
	for unum, obs := range set.Observations {
		if !domain.ValidUnum(unum) {
			continue
		}
		if len(obs) > maxObservations {
			return fmt.Errorf("%w: role %d has %d observations (max %d)", domain.ErrTraining, unum, len(obs), maxObservations)
		}
		m.roles[unum].obs = slices.Clone(obs)
	}
	return nil
}

func (m *Model) Clone() ports.Model {
	c := *m
	for i := range c.roles {
		c.roles[i].obs = slices.Clone(m.roles[i].obs)
	}
	return &c
}

// ReadConf reads
//
//	Begin KNN <k>
//	<unum> <homeX> <homeY> <count>
//	<focusX> <focusY> <x> <y>     (count rows)
//	End KNN
//
// with one role block per named Side or Center role.
func (m *Model) ReadConf(r *codec.Reader, roles *domain.RoleTable) error {
	l, err := r.Next()
	if err != nil {
		return codec.Unexpected(err, "Begin "+MethodName)
	}
	if !l.HasPrefix("Begin", MethodName) || len(l.Fields) != 3 {
		return domain.NewFormatError(l.Num, "expected \"Begin %s <k>\"", MethodName)
	}
	k, err := l.Int(2)
	if err != nil {
		return err
	}
	if k < 1 {
		return domain.NewFormatError(l.Num, "illegal neighbour count %d", k)
	}
	m.k = k

	for unum := range roles.Independent() {
		v, err := r.Row(unum, 3)
		if err != nil {
			return err
		}
		count := int(v[2])
		if float64(count) != v[2] || count < 0 || count > maxObservations {
			return domain.NewFormatError(r.LineNum(), "role %d: illegal observation count %g", unum, v[2])
		}

		rl := role{home: geom.V(v[0], v[1]), obs: make([]ports.Observation, 0, count)}
		for range count {
			ol, err := r.Next()
			if err != nil {
				return codec.Unexpected(err, "observation row")
			}
			if len(ol.Fields) != 4 {
				return domain.NewFormatError(ol.Num, "expected 4 fields in observation row, got %d", len(ol.Fields))
			}
			f, err := ol.Floats(0, 4)
			if err != nil {
				return err
			}
			rl.obs = append(rl.obs, ports.Observation{Focus: geom.V(f[0], f[1]), Position: geom.V(f[2], f[3])})
		}
		if count == 0 {
			rl.obs = nil
		}
		m.roles[unum] = rl
	}
	_, err = r.Expect("End", MethodName)
	return err
}

func (m *Model) WriteConf(w *codec.Writer, roles *domain.RoleTable) error {
	w.Line("Begin", MethodName, m.k)
	for unum := range roles.Independent() {
		r := m.roles[unum]
		w.Line(unum, r.home.X, r.home.Y, len(r.obs))
		for _, o := range r.obs {
			w.Line(o.Focus.X, o.Focus.Y, o.Position.X, o.Position.Y)
		}
	}
	w.Line("End", MethodName)
	return w.Err()
}
