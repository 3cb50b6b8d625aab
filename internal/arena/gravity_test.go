package arena

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestApplyGravity_EqualAndOpposite(t *testing.T) {
	a := NewBody(0, 0, 1, 0, 0, 2)
	b := NewBody(6, 8, 1, 0, 0, 3)
	ApplyGravity([]*Body{a, b}, DefaultDt, DefaultG)

	if r2.Norm(r2.Add(a.Force, b.Force)) > tol {
		t.Errorf("forces not opposite: %v and %v", a.Force, b.Force)
	}

	// r = 10, f = 1000*2*3/100
	want := 60.0
	if got := r2.Norm(a.Force); math.Abs(got-want) > tol {
		t.Errorf("expected magnitude %v, got %v", want, got)
	}
	if a.Force.X <= 0 || a.Force.Y <= 0 {
		t.Errorf("force on a should point toward b, got %v", a.Force)
	}
}

func TestPairForce_Magnitude(t *testing.T) {
	tests := []struct {
		m1, m2, r float64
	}{
		{1, 1, 1},
		{100, 200, 37},
		{500, 3, 2.5},
	}

	for _, tt := range tests {
		f := PairForce(DefaultG, tt.m1, tt.m2, r2.Vec{X: 0, Y: tt.r})
		want := DefaultG * tt.m1 * tt.m2 / (tt.r * tt.r)
		if math.Abs(r2.Norm(f)-want) > 1e-9*want {
			t.Errorf("m1=%v m2=%v r=%v: expected %v, got %v", tt.m1, tt.m2, tt.r, want, r2.Norm(f))
		}
	}
}

func TestPairForce_FloorAndCoincident(t *testing.T) {
	f := PairForce(DefaultG, 1, 1, r2.Vec{X: 0.5})
	if math.IsInf(f.X, 0) || math.IsNaN(f.X) {
		t.Fatalf("expected finite force below the floor, got %v", f)
	}
	if f.X > DefaultG {
		t.Errorf("floored force should not exceed G*m1*m2, got %v", f.X)
	}
	if f := PairForce(DefaultG, 1, 1, r2.Vec{}); f != (r2.Vec{}) {
		t.Errorf("expected zero force for coincident centers, got %v", f)
	}
}

func TestApplyGravity_ZeroesAccumulator(t *testing.T) {
	a := NewBody(0, 0, 1, 0, 0, 1)
	a.Force = r2.Vec{X: 1e6, Y: -1e6}
	ApplyGravity([]*Body{a}, DefaultDt, DefaultG)
	if a.Force != (r2.Vec{}) || a.Vel != (r2.Vec{}) {
		t.Errorf("lone body should feel no force, got force=%v v=%v", a.Force, a.Vel)
	}
}

func TestApplyGravity_NoSpeedClamp(t *testing.T) {
	a := NewBody(0, 0, 1, 0, 0, 1e6)
	b := NewBody(10, 0, 1, 0, 0, 1e6)
	ApplyGravity([]*Body{a, b}, DefaultDt, DefaultG)
	if math.Abs(a.Vel.X) <= DefaultMaxSpeed {
		t.Errorf("gravity path should not clamp speed, got %v", a.Vel)
	}
}

func TestApplyGravity_IgnoresOwnAcceleration(t *testing.T) {
	a := NewBody(0, 0, 1, 5, 5, 1)
	ApplyGravity([]*Body{a}, DefaultDt, DefaultG)
	if a.Pos != (r2.Vec{}) {
		t.Errorf("constant acceleration must not apply under gravity, got %v", a.Pos)
	}
}

func TestApplyGravityApprox_MatchesExactForSmallTheta(t *testing.T) {
	mk := func() []*Body {
		return []*Body{
			NewBody(100, 100, 5, 0, 0, 50),
			NewBody(300, 120, 5, 0, 0, 80),
			NewBody(220, 400, 5, 0, 0, 20),
			NewBody(50, 350, 5, 0, 0, 10),
		}
	}
	exact, approx := mk(), mk()
	ApplyGravity(exact, DefaultDt, DefaultG)
	ApplyGravityApprox(approx, DefaultDt, DefaultG, 1e-9)

	for i := range exact {
		if r2.Norm(r2.Sub(exact[i].Force, approx[i].Force)) > 1e-6*(1+r2.Norm(exact[i].Force)) {
			t.Errorf("body %d: exact %v, approx %v", i, exact[i].Force, approx[i].Force)
		}
	}
}

func TestApplyGravityApprox_UnequalMassesFarCluster(t *testing.T) {
	// A tight, heavy cluster far from a light body is replaced by one mass at
	// its mass-weighted center once the cell is accepted.
	mk := func() []*Body {
		return []*Body{
			NewBody(0, 0, 1, 0, 0, 1),
			NewBody(1000, 1000, 1, 0, 0, 400),
			NewBody(1003, 1001, 1, 0, 0, 9),
			NewBody(1001, 1004, 1, 0, 0, 100),
			NewBody(1004, 1003, 1, 0, 0, 25),
		}
	}
	exact, approx := mk(), mk()
	ApplyGravity(exact, DefaultDt, DefaultG)
	ApplyGravityApprox(approx, DefaultDt, DefaultG, 0.5)

	want := exact[0].Force
	got := approx[0].Force
	if r2.Norm(r2.Sub(want, got)) > 1e-3*r2.Norm(want) {
		t.Errorf("lone body: exact %v, approx %v", want, got)
	}
}

func TestApplyGravityApprox_CoincidentBodies(t *testing.T) {
	bodies := []*Body{
		NewBody(10, 10, 1, 0, 0, 5),
		NewBody(10, 10, 1, 0, 0, 7),
		NewBody(40, 10, 1, 0, 0, 3),
	}
	ApplyGravityApprox(bodies, DefaultDt, DefaultG, 0.5)
	for i, b := range bodies {
		if !b.IsFinite() {
			t.Fatalf("body %d not finite: %+v", i, b)
		}
	}
	if bodies[2].Force.X >= 0 {
		t.Errorf("far body should be pulled toward the pair, got %v", bodies[2].Force)
	}
}

func TestApplyGravityApprox_Empty(t *testing.T) {
	ApplyGravityApprox(nil, DefaultDt, DefaultG, 0.5)
}
