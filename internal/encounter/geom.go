package encounter

import "math"

// Vec2 is a position or direction on the encounter plane, in game
// units. Geometry stays in floats; it never feeds the damage math.
type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Len() float64    { return math.Hypot(a.X, a.Y) }

func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// IsZero reports whether the vector is exactly zero. A zero facing
// means the actor has no orientation.
func (a Vec2) IsZero() bool { return a.X == 0 && a.Y == 0 }

// withinAngle reports whether dir lies within half-angle degrees of
// axis. A zero dir (coincident points) always passes.
func withinAngle(axis, dir Vec2, halfAngle float64) bool {
	if dir.IsZero() {
		return true
	}
	cos := axis.Norm().Dot(dir.Norm())
	return cos >= math.Cos(halfAngle*math.Pi/180)
}
