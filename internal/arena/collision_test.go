package arena

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-9

func TestCheck_Symmetry(t *testing.T) {
	tests := []struct {
		name string
		a, b *Body
		hit  bool
	}{
		{"overlapping", NewBody(0, 0, 10, 0, 0, 1), NewBody(12.3, -4.1, 5, 0, 0, 1), true},
		{"touching", NewBody(0, 0, 10, 0, 0, 1), NewBody(20, 0, 10, 0, 0, 1), false},
		{"apart", NewBody(3.7, 1.1, 2, 0, 0, 1), NewBody(40, 40, 2, 0, 0, 1), false},
		{"coincident", NewBody(5, 5, 1, 0, 0, 1), NewBody(5, 5, 1, 0, 0, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab, okAB := Check(tt.a, tt.b)
			ba, okBA := Check(tt.b, tt.a)
			if okAB != tt.hit || okBA != tt.hit {
				t.Fatalf("expected collided=%v, got %v and %v", tt.hit, okAB, okBA)
			}
			if !tt.hit {
				return
			}
			if ab.Delta != r2.Scale(-1, ba.Delta) {
				t.Errorf("deltas not negated: %v vs %v", ab.Delta, ba.Delta)
			}
			if ab.Dist != ba.Dist {
				t.Errorf("distances differ: %v vs %v", ab.Dist, ba.Dist)
			}
		})
	}
}

func TestDetect_Pairs(t *testing.T) {
	bodies := []*Body{
		NewBody(0, 0, 10, 0, 0, 1),
		NewBody(15, 0, 10, 0, 0, 1),
		NewBody(30, 0, 10, 0, 0, 1),
		NewBody(500, 500, 10, 0, 0, 1),
	}

	got := Detect(bodies)
	if len(got) != 2 {
		t.Fatalf("expected 2 collisions, got %d", len(got))
	}
	if got[0].A != bodies[0] || got[0].B != bodies[1] {
		t.Error("first collision should be (0, 1)")
	}
	if got[1].A != bodies[1] || got[1].B != bodies[2] {
		t.Error("second collision should be (1, 2)")
	}

	if n := len(Detect(nil)); n != 0 {
		t.Errorf("expected no collisions for empty world, got %d", n)
	}
}

func TestResolve_PushRemovesOverlap(t *testing.T) {
	a := NewBody(0, 0, 10, 0, 0, 1).WithVelocity(3, 4)
	b := NewBody(15, 5, 7, 0, 0, 50)

	c, ok := Check(a, b)
	if !ok {
		t.Fatal("expected collision")
	}
	if err := Resolve(c, Push); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	d := r2.Norm(r2.Sub(b.Pos, a.Pos))
	if math.Abs(d-17) > tol {
		t.Errorf("expected distance 17, got %v", d)
	}
	if a.Vel != (r2.Vec{X: 3, Y: 4}) || b.Vel != (r2.Vec{}) {
		t.Error("push must not touch velocities")
	}
}

func TestResolve_PushIsSymmetric(t *testing.T) {
	a := NewBody(100, 100, 10, 0, 0, 1)
	b := NewBody(110, 100, 10, 0, 0, 1000)
	c, _ := Check(a, b)
	if err := Resolve(c, Push); err != nil {
		t.Fatal(err)
	}
	if a.Pos.X != 95 || b.Pos.X != 115 {
		t.Errorf("expected each body moved by half the overlap, got %v and %v", a.Pos, b.Pos)
	}
}

func TestResolve_BounceConservesMomentum(t *testing.T) {
	tests := []struct {
		name   string
		a, b   *Body
	}{
		{"equal masses", NewBody(0, 0, 10, 0, 0, 100).WithVelocity(20, 0), NewBody(18, 3, 10, 0, 0, 100).WithVelocity(-5, 2)},
		{"unequal masses", NewBody(0, 0, 5, 0, 0, 10).WithVelocity(40, -10), NewBody(8, 8, 12, 0, 0, 300).WithVelocity(0, 0)},
		{"oblique", NewBody(50, 50, 8, 0, 0, 64).WithVelocity(-3, 7), NewBody(41, 57, 9, 0, 0, 81).WithVelocity(6, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := r2.Add(tt.a.Momentum(), tt.b.Momentum())
			keBefore := tt.a.Kinetic() + tt.b.Kinetic()

			c, ok := Check(tt.a, tt.b)
			if !ok {
				t.Fatal("expected collision")
			}
			if err := Resolve(c, Bounce); err != nil {
				t.Fatalf("resolve failed: %v", err)
			}

			after := r2.Add(tt.a.Momentum(), tt.b.Momentum())
			if r2.Norm(r2.Sub(after, before)) > 1e-6 {
				t.Errorf("momentum changed from %v to %v", before, after)
			}
			keAfter := tt.a.Kinetic() + tt.b.Kinetic()
			if math.Abs(keAfter-keBefore) > 1e-6*keBefore {
				t.Errorf("kinetic energy changed from %v to %v", keBefore, keAfter)
			}
		})
	}
}

func TestResolve_BounceEqualMassesExchangeNormalVelocity(t *testing.T) {
	a := NewBody(100, 56, 10, 0, 0, 100).WithVelocity(0, 20)
	b := NewBody(100, 74, 10, 0, 0, 100).WithVelocity(0, -20)

	c, _ := Check(a, b)
	if err := Resolve(c, Bounce); err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.Vel.Y+20) > tol || math.Abs(b.Vel.Y-20) > tol {
		t.Errorf("expected swapped velocities, got %v and %v", a.Vel, b.Vel)
	}
	if a.Vel.X != 0 || b.Vel.X != 0 {
		t.Error("tangential velocity must be untouched")
	}
}

func TestResolve_Coincident(t *testing.T) {
	for _, s := range []Strategy{Push, Bounce} {
		a := NewBody(5, 5, 3, 0, 0, 1).WithVelocity(1, 1)
		b := NewBody(5, 5, 3, 0, 0, 1)
		c, ok := Check(a, b)
		if !ok {
			t.Fatal("expected collision")
		}
		if err := Resolve(c, s); !errors.Is(err, ErrCoincident) {
			t.Errorf("%v: expected ErrCoincident, got %v", s, err)
		}
		if !a.IsFinite() || !b.IsFinite() {
			t.Errorf("%v: coincident resolution produced non-finite state", s)
		}
		if a.Pos != b.Pos {
			t.Errorf("%v: coincident pair must be left untouched", s)
		}
	}
}

func TestResolve_UnknownStrategy(t *testing.T) {
	c, _ := Check(NewBody(0, 0, 5, 0, 0, 1), NewBody(1, 0, 5, 0, 0, 1))
	if err := Resolve(c, Strategy(7)); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestStrategy(t *testing.T) {
	if Push.Toggle() != Bounce || Bounce.Toggle() != Push {
		t.Error("toggle should flip push and bounce")
	}
	if Bounce.Label() != "Bounce" {
		t.Errorf("unexpected label %q", Bounce.Label())
	}
	s, err := ParseStrategy("Bounce")
	if err != nil || s != Bounce {
		t.Errorf("expected bounce, got %v %v", s, err)
	}
	if _, err := ParseStrategy("stick"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}
