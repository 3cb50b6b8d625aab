package metrics

import "github.com/san-kum/collide/internal/arena"

// Collisions counts resolved body pairs across all frames.
type Collisions struct {
	name  string
	total int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(w *arena.World, st arena.Stats, t float64) {
	c.total += st.Resolved
}

func (c *Collisions) Value() float64 { return float64(c.total) }
func (c *Collisions) Reset()         { c.total = 0 }

// EdgeHits counts wall reflections across all frames.
type EdgeHits struct {
	name  string
	total int
}

func NewEdgeHits() *EdgeHits {
	return &EdgeHits{name: "edge_hits"}
}

func (e *EdgeHits) Name() string { return e.name }

func (e *EdgeHits) Observe(w *arena.World, st arena.Stats, t float64) {
	e.total += st.EdgeHits
}

func (e *EdgeHits) Value() float64 { return float64(e.total) }
func (e *EdgeHits) Reset()         { e.total = 0 }
