package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/san-kum/collide/internal/arena"
	"github.com/san-kum/collide/internal/scenario"
)

// Hub owns the world. Only the Run goroutine touches it; clients talk to
// it through channels.
type Hub struct {
	world   *arena.World
	base    arena.Config
	cfg     arena.Config
	preset  string
	rng     *rand.Rand
	paused  bool
	rate    time.Duration
	logger  *log.Logger
	clients map[*client]bool

	register   chan *client
	unregister chan *client
	commands   chan Command
	done       chan struct{}
}

func newHub(cfg arena.Config, preset string, seed int64, rate time.Duration, logger *log.Logger) (*Hub, error) {
	h := &Hub{
		world:      arena.NewWorld(),
		base:       cfg,
		rng:        rand.New(rand.NewSource(seed)),
		rate:       rate,
		logger:     logger,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		commands:   make(chan Command, 16),
		done:       make(chan struct{}),
	}
	if err := h.load(preset); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Hub) load(name string) error {
	cfg, err := scenario.Load(h.world, name, h.base, h.rng)
	if err != nil {
		return err
	}
	h.cfg, h.preset = cfg, name
	return nil
}

// Run steps the world at the hub's rate until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.rate)
	defer ticker.Stop()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.logger.Printf("client connected (%d total)", len(h.clients))
			h.sendTo(c)
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
				h.logger.Printf("client disconnected (%d total)", len(h.clients))
			}
		case cmd := <-h.commands:
			if err := h.apply(cmd); err != nil {
				h.logger.Printf("command %q: %v", cmd.Type, err)
			}
		case <-ticker.C:
			if !h.paused {
				h.world.Step(h.cfg)
			}
			h.broadcast()
		}
	}
}

func (h *Hub) apply(cmd Command) error {
	switch cmd.Type {
	case "preset":
		return h.load(cmd.Preset)
	case "reset":
		return h.load(h.preset)
	case "switch_collision":
		h.cfg.Strategy = h.cfg.Strategy.Toggle()
	case "toggle_gravity":
		h.cfg.Gravity = !h.cfg.Gravity
	case "pause":
		h.paused = !h.paused
	case "create":
		held := time.Duration(cmd.HeldMs) * time.Millisecond
		b, err := scenario.Charge(cmd.X, cmd.Y, held, h.rng)
		if errors.Is(err, scenario.ErrTooShort) {
			return nil
		}
		if err != nil {
			return err
		}
		return h.world.Add(b)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}

func (h *Hub) encode() ([]byte, error) {
	return json.Marshal(newFrame(h.world, h.cfg, h.preset, h.paused))
}

func (h *Hub) sendTo(c *client) {
	data, err := h.encode()
	if err != nil {
		h.logger.Println("encode error:", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) broadcast() {
	if len(h.clients) == 0 {
		return
	}
	data, err := h.encode()
	if err != nil {
		h.logger.Println("encode error:", err)
		return
	}
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// too slow to keep up
			delete(h.clients, c)
			close(c.send)
			h.logger.Println("dropped slow client")
		}
	}
}

// submit hands cmd to the Run goroutine. It reports false once the hub has stopped.
func (h *Hub) submit(cmd Command) bool {
	select {
	case h.commands <- cmd:
		return true
	case <-h.done:
		return false
	}
}
