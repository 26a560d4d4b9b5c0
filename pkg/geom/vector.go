// Package geom provides the 2D vector value type used for focus points and
// player positions.
package geom

import (
	"fmt"
	"math"
)

// Vector2D is a point (or displacement) on the pitch plane.
// The x axis runs along the field from the own goal to the opponent goal.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vector2D{X: x, Y: y}.
func V(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vector2D) Scale(k float64) Vector2D {
	return Vector2D{X: v.X * k, Y: v.Y * k}
}

// ReverseY reflects v across the longitudinal center axis (y = 0).
func (v Vector2D) ReverseY() Vector2D {
	return Vector2D{X: v.X, Y: -v.Y}
}

// R returns the vector length.
func (v Vector2D) R() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vector2D) Dist(o Vector2D) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Dist2 returns the squared distance between v and o.
func (v Vector2D) Dist2(o Vector2D) float64 {
	dx, dy := v.X-o.X, v.Y-o.Y
	return dx*dx + dy*dy
}

// IsValid reports whether both components are finite.
func (v Vector2D) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}
