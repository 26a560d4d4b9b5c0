package domain

import "github.com/aretw0/formation/pkg/geom"

// DefaultRole describes one slot of the canonical starting formation.
type DefaultRole struct {
	Unum int
	Name string
	Code int           // document encoding of the side type
	Home geom.Vector2D // position for a focus point at the center mark
}

// DefaultRoles is the canonical 4-3-3 pattern. Independent roles come before
// the roles that mirror them so the list can be applied in order.
var DefaultRoles = []DefaultRole{
	{Unum: 1, Name: "Goalie", Code: 0, Home: geom.V(-50, 0)},
	{Unum: 2, Name: "CenterBack", Code: -1, Home: geom.V(-20, -8)},
	{Unum: 3, Name: "CenterBack", Code: 2, Home: geom.V(-20, 8)},
	{Unum: 4, Name: "SideBack", Code: -1, Home: geom.V(-18, -18)},
	{Unum: 5, Name: "SideBack", Code: 4, Home: geom.V(-18, 18)},
	{Unum: 6, Name: "DefensiveHalf", Code: 0, Home: geom.V(-15, 0)},
	{Unum: 7, Name: "OffensiveHalf", Code: -1, Home: geom.V(0, -12)},
	{Unum: 8, Name: "OffensiveHalf", Code: 7, Home: geom.V(0, 12)},
	{Unum: 9, Name: "SideForward", Code: -1, Home: geom.V(10, -22)},
	{Unum: 10, Name: "SideForward", Code: 9, Home: geom.V(10, 22)},
	{Unum: 11, Name: "CenterForward", Code: 0, Home: geom.V(10, 0)},
}

// DefaultHome returns the canonical home position of a slot, or the center
// mark for out-of-range unums.
func DefaultHome(unum int) geom.Vector2D {
	for _, d := range DefaultRoles {
		if d.Unum == unum {
			return d.Home
		}
	}
	return geom.Vector2D{}
}
