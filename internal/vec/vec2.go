// Package vec provides the 2D vector type shared by the physics core and the
// render hosts. Arithmetic is delegated to gonum's spatial/r2.
package vec

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is an immutable 2D vector. Every operation returns a new value.
type Vec2 r2.Vec

// Zero is the origin.
var Zero = Vec2{}

func New(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) r2() r2.Vec { return r2.Vec(v) }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2(r2.Add(v.r2(), o.r2())) }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2(r2.Sub(v.r2(), o.r2())) }

func (v Vec2) Scale(f float64) Vec2 { return Vec2(r2.Scale(f, v.r2())) }

// Div divides both components by f. Dividing by zero yields Inf/NaN components.
func (v Vec2) Div(f float64) Vec2 { return Vec2{X: v.X / f, Y: v.Y / f} }

func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

func (v Vec2) Dot(o Vec2) float64 { return r2.Dot(v.r2(), o.r2()) }

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return r2.Cross(v.r2(), o.r2()) }

// SqrMagnitude returns x²+y² without taking a square root.
func (v Vec2) SqrMagnitude() float64 { return r2.Norm2(v.r2()) }

func (v Vec2) Magnitude() float64 { return r2.Norm(v.r2()) }

// Normalize returns the unit vector in the direction of v.
// The zero vector has no direction; it is returned unchanged and callers
// must check IsZero first when the direction matters.
func (v Vec2) Normalize() Vec2 {
	if v.IsZero() {
		return Zero
	}
	return Vec2(r2.Unit(v.r2()))
}

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Equal compares by value.
func (v Vec2) Equal(o Vec2) bool { return v.X == o.X && v.Y == o.Y }

// IsValid reports whether both components are finite.
func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string { return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y) }
