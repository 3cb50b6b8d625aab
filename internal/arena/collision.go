package arena

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Strategy selects how an overlapping pair is resolved.
type Strategy int

const (
	// Push separates the pair along the collision normal, ignoring mass and velocity.
	Push Strategy = iota
	// Bounce separates the pair and exchanges an elastic impulse along the normal.
	Bounce
)

func (s Strategy) String() string {
	switch s {
	case Push:
		return "push"
	case Bounce:
		return "bounce"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Label is the capitalised name shown next to the strategy switch.
func (s Strategy) Label() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Toggle flips Push to Bounce and anything else to Push.
func (s Strategy) Toggle() Strategy {
	if s == Bounce {
		return Push
	}
	return Bounce
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "push", "":
		return Push, nil
	case "bounce":
		return Bounce, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Collision describes one overlapping pair at detection time.
type Collision struct {
	A, B  *Body
	Delta r2.Vec // B.Pos - A.Pos
	Dist  float64
}

// Check tests a and b for overlap.
func Check(a, b *Body) (Collision, bool) {
	delta := r2.Sub(b.Pos, a.Pos)
	d := r2.Norm(delta)
	if d < a.R+b.R {
		return Collision{A: a, B: b, Delta: delta, Dist: d}, true
	}
	return Collision{}, false
}

// Detect returns every overlapping pair (i, j) with i < j.
func Detect(bodies []*Body) []Collision {
	var out []Collision
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if c, ok := Check(bodies[i], bodies[j]); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// Resolve applies strategy s to c. A pair with coincident centers has no
// normal; it is left untouched and ErrCoincident is returned.
func Resolve(c Collision, s Strategy) error {
	switch s {
	case Push:
		_, err := separate(c)
		return err
	case Bounce:
		n, err := separate(c)
		if err != nil {
			return err
		}
		exchange(c.A, c.B, n)
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
}

// separate moves A and B apart by half the overlap each and returns the unit normal.
func separate(c Collision) (r2.Vec, error) {
	if c.Dist == 0 {
		return r2.Vec{}, ErrCoincident
	}
	n := r2.Scale(1/c.Dist, c.Delta)
	half := (c.A.R + c.B.R - c.Dist) / 2
	c.A.Pos = r2.Sub(c.A.Pos, r2.Scale(half, n))
	c.B.Pos = r2.Add(c.B.Pos, r2.Scale(half, n))
	return n, nil
}

// exchange applies the equal-restitution impulse along n. Tangential
// components are untouched.
func exchange(a, b *Body, n r2.Vec) {
	k := -2 * r2.Dot(r2.Sub(b.Vel, a.Vel), n) / (1/a.M + 1/b.M)
	a.Vel = r2.Sub(a.Vel, r2.Scale(k/a.M, n))
	b.Vel = r2.Add(b.Vel, r2.Scale(k/b.M, n))
}
