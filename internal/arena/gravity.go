package arena

import "gonum.org/v1/gonum/spatial/r2"

// MinSeparation is the floor applied to the center distance in the gravity
// force so that close pairs stay finite.
const MinSeparation = 1.0

// PairForce returns the attraction on a body of mass m1 toward a body of
// mass m2 displaced by d: G·m1·m2/r² along d, with r floored at
// MinSeparation. Coincident centers yield a zero force.
func PairForce(g, m1, m2 float64, d r2.Vec) r2.Vec {
	if d.X == 0 && d.Y == 0 {
		return r2.Vec{}
	}
	r := r2.Norm(d)
	if r < MinSeparation {
		r = MinSeparation
	}
	f := g * m1 * m2 / (r * r)
	return r2.Scale(f/r, d)
}

// ApplyGravity replaces plain integration for one frame: every body's Force
// is recomputed from all pairs, then velocity and position are advanced by
// dt. No speed clamp is applied on this path.
func ApplyGravity(bodies []*Body, dt, g float64) {
	for _, b := range bodies {
		b.Force = r2.Vec{}
	}
	for i := 0; i < len(bodies); i++ {
		bi := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			bj := bodies[j]
			f := PairForce(g, bi.M, bj.M, r2.Sub(bj.Pos, bi.Pos))
			bi.Force = r2.Add(bi.Force, f)
			bj.Force = r2.Sub(bj.Force, f)
		}
	}
	advance(bodies, dt)
}

// ApplyGravityApprox is ApplyGravity with forces approximated by a
// Barnes-Hut quadtree with opening angle theta. Pair forces are no longer
// exactly equal and opposite.
func ApplyGravityApprox(bodies []*Body, dt, g, theta float64) {
	if len(bodies) == 0 {
		return
	}
	tree := newQuadTree(bodies)
	forces := make([]r2.Vec, len(bodies))
	for i, b := range bodies {
		forces[i] = tree.forceOn(b, g, theta)
	}
	for i, b := range bodies {
		b.Force = forces[i]
	}
	advance(bodies, dt)
}

func advance(bodies []*Body, dt float64) {
	for _, b := range bodies {
		a := r2.Scale(1/b.M, b.Force)
		b.Vel = r2.Add(b.Vel, r2.Scale(dt, a))
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	}
}
