package arena_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/collide/internal/arena"
)

var _ = Describe("Frame driver", func() {
	var (
		w   *arena.World
		cfg arena.Config
	)

	BeforeEach(func() {
		cfg = arena.DefaultConfig()
	})

	Context("two equal bodies approaching head-on under bounce", func() {
		var a, b *arena.Body

		BeforeEach(func() {
			cfg.Strategy = arena.Bounce
			a = arena.NewBody(100, 50, 10, 0, 0, 100).WithVelocity(0, 20)
			b = arena.NewBody(100, 80, 10, 0, 0, 100).WithVelocity(0, -20)
			w = arena.NewWorld(a, b)
		})

		It("does not touch before they overlap", func() {
			for i := 0; i < 2; i++ {
				Expect(w.Step(cfg).Collisions).To(BeZero())
			}
		})

		It("separates them and swaps velocities along the line of centers", func() {
			total := 0
			for i := 0; i < 10; i++ {
				total += w.Step(cfg).Resolved
			}
			Expect(total).To(Equal(1))

			d := r2.Norm(r2.Sub(b.Pos, a.Pos))
			Expect(d).To(BeNumerically(">=", a.R+b.R-1e-9))
			Expect(a.Vel.Y).To(BeNumerically("~", -20, 1e-9))
			Expect(b.Vel.Y).To(BeNumerically("~", 20, 1e-9))
			Expect(a.Vel.X).To(BeZero())
			Expect(b.Vel.X).To(BeZero())
		})

		It("conserves total momentum through the collision", func() {
			px0, py0 := w.Momentum()
			for i := 0; i < 10; i++ {
				w.Step(cfg)
			}
			px, py := w.Momentum()
			Expect(px).To(BeNumerically("~", px0, 1e-9))
			Expect(py).To(BeNumerically("~", py0, 1e-9))
		})
	})

	Context("the same pair under push", func() {
		It("removes the overlap but keeps the velocities", func() {
			a := arena.NewBody(100, 50, 10, 0, 0, 100).WithVelocity(0, 20)
			b := arena.NewBody(100, 80, 10, 0, 0, 100).WithVelocity(0, -20)
			w = arena.NewWorld(a, b)
			for i := 0; i < 3; i++ {
				w.Step(cfg)
			}
			Expect(r2.Norm(r2.Sub(b.Pos, a.Pos))).To(BeNumerically("~", 20, 1e-9))
			Expect(a.Vel.Y).To(Equal(20.0))
			Expect(b.Vel.Y).To(Equal(-20.0))
		})
	})

	Context("a body drifting into a wall", func() {
		It("flips its drift permanently", func() {
			body := arena.NewBody(cfg.Width-15, 300, 10, 5, 0, 1)
			w = arena.NewWorld(body)
			for i := 0; i < 200 && body.Acc.X > 0; i++ {
				w.Step(cfg)
			}
			Expect(body.Acc.X).To(Equal(-5.0))
			for i := 0; i < 50; i++ {
				w.Step(cfg)
			}
			Expect(body.Acc.X).To(Equal(-5.0))
			Expect(body.Pos.X + body.R).To(BeNumerically("<=", cfg.Width))
		})
	})

	Context("gravity mode", func() {
		BeforeEach(func() {
			cfg.Gravity = true
		})

		It("pulls two bodies together with equal and opposite forces", func() {
			a := arena.NewBody(300, 300, 5, 0, 0, 10)
			b := arena.NewBody(400, 300, 5, 0, 0, 40)
			w = arena.NewWorld(a, b)
			w.Step(cfg)

			Expect(a.Force.X).To(BeNumerically(">", 0))
			Expect(a.Force.X + b.Force.X).To(BeNumerically("~", 0, 1e-9))
			Expect(a.Vel.X).To(BeNumerically(">", 0))
			Expect(b.Vel.X).To(BeNumerically("<", 0))
		})

		It("keeps every body finite when centers coincide", func() {
			w = arena.NewWorld(arena.NewBody(200, 200, 5, 0, 0, 10), arena.NewBody(200, 200, 5, 0, 0, 10))
			for i := 0; i < 5; i++ {
				w.Step(cfg)
			}
			Expect(w.IsValid()).To(BeTrue())
		})
	})
})
