// Package uva implements the UvA formation model. Each independent role has
// a home position and an attraction factor per axis towards the focus point:
//
//	p = home + (attr.X * focus.X, attr.Y * focus.Y)
//
// after which p.X is clamped to [MinX, MaxX] and, for roles that must stay
// behind the ball, to at most focus.X.
package uva

import (
	"fmt"
	"math"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/codec"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/ports"
)

// MethodName is the registry tag and document header of the model.
const MethodName = "UvA"

// MaxAttraction bounds the absolute value of a trained attraction factor.
// A steeper fit means the corpus does not describe a formation.
const MaxAttraction = 1.5

// DefaultAttraction seeds new roles.
var DefaultAttraction = geom.V(0.5, 0.25)

func init() {
	formation.MustRegister(MethodName, New)
}

// Param is the parameter set of one role.
type Param struct {
	Home       geom.Vector2D
	Attr       geom.Vector2D
	MinX       float64
	MaxX       float64
	BehindBall bool
}

func (p Param) position(focus geom.Vector2D) geom.Vector2D {
	x := p.Home.X + p.Attr.X*focus.X
	y := p.Home.Y + p.Attr.Y*focus.Y
	x = min(max(x, p.MinX), p.MaxX)
	if p.BehindBall && x > focus.X {
		x = focus.X
	}
	return geom.V(x, y)
}

// Model keeps one Param per role.
type Model struct {
	params [domain.MaxPlayer + 1]Param
}

// New returns an empty UvA model.
func New() ports.Model {
	return &Model{}
}

func (m *Model) MethodName() string { return MethodName }

// Param returns the parameters of unum.
func (m *Model) Param(unum int) Param {
	if !domain.ValidUnum(unum) {
		return Param{}
	}
	return m.params[unum]
}

// CreateRole seeds unum with DefaultAttraction and the full pitch length as
// x range. Roles starting in the own penalty area stay behind the ball.
func (m *Model) CreateRole(unum int, _ domain.SideType, home geom.Vector2D) error {
	if !domain.ValidUnum(unum) {
		return domain.ErrInvalidUnum
	}
	m.params[unum] = Param{
		Home:       home,
		Attr:       DefaultAttraction,
		MinX:       -domain.PitchHalfLength,
		MaxX:       domain.PitchHalfLength,
		BehindBall: home.X <= -domain.PitchHalfLength+16.5,
	}
	return nil
}

func (m *Model) Position(unum int, focus geom.Vector2D) geom.Vector2D {
	if !domain.ValidUnum(unum) {
		return geom.Vector2D{}
	}
	return m.params[unum].position(focus)
}

// Train fits home and attraction per axis by least squares and sets the x
// range to the observed extent. An axis whose focus values do not vary keeps
// its attraction and only refits home.
func (m *Model) Train(set ports.TrainingSet) error {
	for unum, obs := range set.Observations {
		if !domain.ValidUnum(unum) || len(obs) == 0 {
			continue
		}
		p := m.params[unum]

		fx := make([]float64, len(obs))
		px := make([]float64, len(obs))
		fy := make([]float64, len(obs))
		py := make([]float64, len(obs))
		for i, o := range obs {
			fx[i], px[i] = o.Focus.X, o.Position.X
			fy[i], py[i] = o.Focus.Y, o.Position.Y
		}

		var ok bool
		if p.Home.X, p.Attr.X, ok = fit(fx, px, p.Attr.X); !ok {
			return fmt.Errorf("%w: role %d x attraction out of range", domain.ErrTraining, unum)
		}
		if p.Home.Y, p.Attr.Y, ok = fit(fy, py, p.Attr.Y); !ok {
			return fmt.Errorf("%w: role %d y attraction out of range", domain.ErrTraining, unum)
		}

		p.MinX, p.MaxX = math.Inf(1), math.Inf(-1)
		for _, x := range px {
			p.MinX = min(p.MinX, x)
			p.MaxX = max(p.MaxX, x)
		}
		if p.BehindBall {
			for i := range obs {
				if px[i] > fx[i] {
					p.BehindBall = false
					break
				}
			}
		}
		m.params[unum] = p
	}
	return nil
}

// fit returns intercept and slope of the least-squares line through (f, p).
// When f has no spread the slope stays at prev.
func fit(f, p []float64, prev float64) (intercept, slope float64, ok bool) {
	n := float64(len(f))
	var mf, mp float64
	for i := range f {
		mf += f[i]
		mp += p[i]
	}
	mf /= n
	mp /= n

	var sff, sfp float64
	for i := range f {
		sff += (f[i] - mf) * (f[i] - mf)
		sfp += (f[i] - mf) * (p[i] - mp)
	}

	slope = prev
	if sff > 1e-9 {
		slope = sfp / sff
	}
	intercept = mp - slope*mf
	ok = math.Abs(slope) <= MaxAttraction && !math.IsNaN(intercept) && !math.IsInf(intercept, 0)
	return intercept, slope, ok
}

func (m *Model) Clone() ports.Model {
	c := *m
	return &c
}

// ReadConf reads
//
//	Begin UvA
//	<unum> <homeX> <homeY> <attrX> <attrY> <minX> <maxX> <behindBall>
//	End UvA
//
// with one row per named Side or Center role.
func (m *Model) ReadConf(r *codec.Reader, roles *domain.RoleTable) error {
	if _, err := r.Expect("Begin", MethodName); err != nil {
		return err
	}
	for unum := range roles.Independent() {
		v, err := r.Row(unum, 7)
		if err != nil {
			return err
		}
		if v[4] > v[5] {
			return domain.NewFormatError(r.LineNum(), "role %d: minX %g exceeds maxX %g", unum, v[4], v[5])
		}
		m.params[unum] = Param{
			Home:       geom.V(v[0], v[1]),
			Attr:       geom.V(v[2], v[3]),
			MinX:       v[4],
			MaxX:       v[5],
			BehindBall: v[6] != 0,
		}
	}
	_, err := r.Expect("End", MethodName)
	return err
}

func (m *Model) WriteConf(w *codec.Writer, roles *domain.RoleTable) error {
	w.Line("Begin", MethodName)
	for unum := range roles.Independent() {
		p := m.params[unum]
		w.Line(unum, p.Home.X, p.Home.Y, p.Attr.X, p.Attr.Y, p.MinX, p.MaxX, p.BehindBall)
	}
	w.Line("End", MethodName)
	return w.Err()
}
