package http

import (
	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
)

// Role is the JSON view of one role table slot.
type Role struct {
	Unum int    `json:"unum"`
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
	Code int    `json:"code"`
	Ref  int    `json:"ref,omitempty"`
}

// Position is the target position of one slot.
type Position struct {
	Unum int     `json:"unum"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// PositionsResponse answers GET /positions.
type PositionsResponse struct {
	Method    string        `json:"method"`
	Focus     geom.Vector2D `json:"focus"`
	Positions []Position    `json:"positions"`
}

// UpdateRoleRequest is the body of PUT /roles/{unum}.
type UpdateRoleRequest struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// TrainResponse answers POST /train.
type TrainResponse struct {
	Method  string `json:"method"`
	Samples int    `json:"samples"`
}

// ErrorResponse carries a failure message.
type ErrorResponse struct {
	Error string `json:"error"`
}

func rolesOf(f *formation.Formation) []Role {
	table := f.Roles()
	out := make([]Role, 0, domain.MaxPlayer)
	table.Each(func(unum int, r domain.Role) {
		out = append(out, Role{
			Unum: unum,
			Name: r.Name,
			Type: r.Type.Kind().String(),
			Code: r.Type.Code(),
			Ref:  r.Type.Ref(),
		})
	})
	return out
}

func positionsOf(f *formation.Formation, focus geom.Vector2D) []Position {
	pos := f.Positions(focus, nil)
	out := make([]Position, len(pos))
	for i, p := range pos {
		out[i] = Position{Unum: i + 1, X: p.X, Y: p.Y}
	}
	return out
}
