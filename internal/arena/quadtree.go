package arena

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// maxTreeDepth bounds subdivision so bodies sharing a position end up
// together in one leaf.
const maxTreeDepth = 32

// quadNode is a square cell of the Barnes-Hut tree. Leaves hold bodies,
// inner nodes hold up to four children. mass and center summarise every
// body below the node, with center weighted by mass.
type quadNode struct {
	min    r2.Vec
	size   float64
	mass   float64
	center r2.Vec
	bodies []*Body
	kids   *[4]*quadNode
}

func newQuadTree(bodies []*Body) *quadNode {
	lo := bodies[0].Pos
	hi := bodies[0].Pos
	for _, b := range bodies[1:] {
		lo.X, lo.Y = math.Min(lo.X, b.Pos.X), math.Min(lo.Y, b.Pos.Y)
		hi.X, hi.Y = math.Max(hi.X, b.Pos.X), math.Max(hi.Y, b.Pos.Y)
	}
	size := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	if !(size > 0) {
		size = 1
	}
	// Grow slightly so the far edge falls inside the half-open cell.
	root := &quadNode{min: lo, size: size * (1 + 1e-9)}
	for _, b := range bodies {
		root.insert(b, 0)
	}
	root.summarize()
	return root
}

func (n *quadNode) insert(b *Body, depth int) {
	if n.kids != nil {
		n.child(b).insert(b, depth+1)
		return
	}
	n.bodies = append(n.bodies, b)
	if len(n.bodies) == 1 || depth >= maxTreeDepth {
		return
	}
	held := n.bodies
	n.bodies = nil
	n.kids = &[4]*quadNode{}
	for _, h := range held {
		n.child(h).insert(h, depth+1)
	}
}

func (n *quadNode) child(b *Body) *quadNode {
	half := n.size / 2
	i, lo := 0, n.min
	if b.Pos.X >= n.min.X+half {
		i |= 1
		lo.X += half
	}
	if b.Pos.Y >= n.min.Y+half {
		i |= 2
		lo.Y += half
	}
	if n.kids[i] == nil {
		n.kids[i] = &quadNode{min: lo, size: half}
	}
	return n.kids[i]
}

func (n *quadNode) summarize() {
	var weighted r2.Vec
	if n.kids == nil {
		for _, b := range n.bodies {
			n.mass += b.M
			weighted = r2.Add(weighted, r2.Scale(b.M, b.Pos))
		}
	} else {
		for _, k := range n.kids {
			if k == nil {
				continue
			}
			k.summarize()
			n.mass += k.mass
			weighted = r2.Add(weighted, r2.Scale(k.mass, k.center))
		}
	}
	if n.mass > 0 {
		n.center = r2.Scale(1/n.mass, weighted)
	}
}

func (n *quadNode) contains(p r2.Vec) bool {
	return p.X >= n.min.X && p.X < n.min.X+n.size &&
		p.Y >= n.min.Y && p.Y < n.min.Y+n.size
}

// forceOn sums the attraction on b. A cell not containing b whose
// size/distance ratio is below theta acts as a single mass at its center.
func (n *quadNode) forceOn(b *Body, g, theta float64) r2.Vec {
	var f r2.Vec
	if n.kids == nil {
		for _, o := range n.bodies {
			if o != b {
				f = r2.Add(f, PairForce(g, b.M, o.M, r2.Sub(o.Pos, b.Pos)))
			}
		}
		return f
	}

	d := r2.Sub(n.center, b.Pos)
	if r := r2.Norm(d); r > 0 && !n.contains(b.Pos) && n.size/r < theta {
		return PairForce(g, b.M, n.mass, d)
	}
	for _, k := range n.kids {
		if k != nil {
			f = r2.Add(f, k.forceOn(b, g, theta))
		}
	}
	return f
}
