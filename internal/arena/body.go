package arena

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is a circular particle. Force is only meaningful during a gravity step.
type Body struct {
	Pos   r2.Vec
	Vel   r2.Vec
	Acc   r2.Vec
	Force r2.Vec
	R     float64
	M     float64
}

// NewBody creates a body at rest at (x, y) with radius r, constant
// acceleration (ax, ay) and mass m.
func NewBody(x, y, r, ax, ay, m float64) *Body {
	return &Body{
		Pos: r2.Vec{X: x, Y: y},
		Acc: r2.Vec{X: ax, Y: ay},
		R:   r,
		M:   m,
	}
}

// WithVelocity sets the body's velocity and returns the body.
func (b *Body) WithVelocity(vx, vy float64) *Body {
	b.Vel = r2.Vec{X: vx, Y: vy}
	return b
}

// Validate reports ErrInvalidBody for r <= 0, m <= 0 or any NaN/Inf component.
func (b *Body) Validate() error {
	if !(b.R > 0) {
		return fmt.Errorf("%w: radius %v", ErrInvalidBody, b.R)
	}
	if !(b.M > 0) {
		return fmt.Errorf("%w: mass %v", ErrInvalidBody, b.M)
	}
	if !b.IsFinite() {
		return fmt.Errorf("%w: non-finite state", ErrInvalidBody)
	}
	return nil
}

// IsFinite reports whether position, velocity and acceleration are free of NaN and Inf.
func (b *Body) IsFinite() bool {
	for _, v := range [...]float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Acc.X, b.Acc.Y, b.R, b.M} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (b *Body) Kinetic() float64 {
	return 0.5 * b.M * r2.Norm2(b.Vel)
}

func (b *Body) Momentum() r2.Vec {
	return r2.Scale(b.M, b.Vel)
}

// Integrate advances b by dt under its own constant acceleration. Each
// velocity component is clamped to [-maxSpeed, maxSpeed] before the position
// update.
func Integrate(b *Body, dt, maxSpeed float64) {
	b.Vel = r2.Add(b.Vel, r2.Scale(dt, b.Acc))
	b.Vel.X = clamp(b.Vel.X, maxSpeed)
	b.Vel.Y = clamp(b.Vel.Y, maxSpeed)
	b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// EdgeMode selects how an overshooting body is put back inside the arena.
type EdgeMode int

const (
	// EdgeClamp places the body's edge exactly on the wall it crossed.
	EdgeClamp EdgeMode = iota
	// EdgeReflect measures overshoot against the diameter and mirrors it
	// back inside: overshoot = coord+2r-bound, coord = bound-overshoot-2r.
	EdgeReflect
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "clamp"
	case EdgeReflect:
		return "reflect"
	default:
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
}

// ParseEdgeMode maps "clamp" and "reflect" to their EdgeMode.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch s {
	case "clamp", "":
		return EdgeClamp, nil
	case "reflect":
		return EdgeReflect, nil
	}
	return 0, fmt.Errorf("%w: edge mode %q", ErrInvalidConfig, s)
}

type wall int

const (
	wallRight wall = iota
	wallBottom
	wallLeft
	wallTop
)

// ResolveEdges reflects b off the walls of a width x height arena, checked
// in the order right, bottom, left, top. The velocity and the constant
// acceleration on the crossed axis are both negated. With singleWall only
// the first crossed wall is corrected. It returns the number of walls hit.
func ResolveEdges(b *Body, width, height float64, mode EdgeMode, singleWall bool) int {
	hits := 0
	for _, w := range [...]wall{wallRight, wallBottom, wallLeft, wallTop} {
		if !crossed(b, w, width, height, mode) {
			continue
		}
		bounce(b, w, width, height, mode)
		hits++
		if singleWall {
			break
		}
	}
	return hits
}

func crossed(b *Body, w wall, width, height float64, mode EdgeMode) bool {
	extent := b.R
	near := b.R
	if mode == EdgeReflect {
		extent = 2 * b.R
		near = 0
	}
	switch w {
	case wallRight:
		return b.Pos.X+extent > width
	case wallBottom:
		return b.Pos.Y+extent > height
	case wallLeft:
		return b.Pos.X-near < 0
	default:
		return b.Pos.Y-near < 0
	}
}

func bounce(b *Body, w wall, width, height float64, mode EdgeMode) {
	switch w {
	case wallRight:
		b.Pos.X = farWall(b.Pos.X, b.R, width, mode)
		b.Vel.X, b.Acc.X = -b.Vel.X, -b.Acc.X
	case wallBottom:
		b.Pos.Y = farWall(b.Pos.Y, b.R, height, mode)
		b.Vel.Y, b.Acc.Y = -b.Vel.Y, -b.Acc.Y
	case wallLeft:
		b.Pos.X = nearWall(b.Pos.X, b.R, mode)
		b.Vel.X, b.Acc.X = -b.Vel.X, -b.Acc.X
	case wallTop:
		b.Pos.Y = nearWall(b.Pos.Y, b.R, mode)
		b.Vel.Y, b.Acc.Y = -b.Vel.Y, -b.Acc.Y
	}
}

func farWall(coord, r, bound float64, mode EdgeMode) float64 {
	if mode == EdgeReflect {
		overshoot := coord + 2*r - bound
		return bound - overshoot - 2*r
	}
	return bound - r
}

func nearWall(coord, r float64, mode EdgeMode) float64 {
	if mode == EdgeReflect {
		return -coord
	}
	return r
}
