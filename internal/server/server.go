// Package server streams an arena to browsers: an HTML page draws the
// bodies on a <canvas> and sends commands back over a websocket.
package server

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/collide/internal/arena"
)

//go:embed index.html
var indexHTML []byte

const DefaultRate = time.Second / 60

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Options struct {
	Addr   string
	Arena  arena.Config
	Preset string
	Seed   int64
	Rate   time.Duration // step interval, DefaultRate when zero
	Logger *log.Logger
}

type Server struct {
	addr   string
	hub    *Hub
	logger *log.Logger
}

func New(opts Options) (*Server, error) {
	if err := opts.Arena.Validate(); err != nil {
		return nil, err
	}
	if opts.Rate <= 0 {
		opts.Rate = DefaultRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "[collide] ", log.LstdFlags)
	}
	hub, err := newHub(opts.Arena, opts.Preset, opts.Seed, opts.Rate, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Server{addr: opts.Addr, hub: hub, logger: opts.Logger}, nil
}

// Handler serves the page at / and the websocket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Println("upgrade error:", err)
		return
	}

	c := &client{hub: s.hub, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case s.hub.register <- c:
	case <-s.hub.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// Start runs the hub in the background until ctx is cancelled.
func (s *Server) Start(ctx context.Context) {
	go s.hub.Run(ctx)
}

// Run starts the hub and listens on the configured address until ctx is
// cancelled, then shuts the listener down.
func (s *Server) Run(ctx context.Context) error {
	s.Start(ctx)

	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on http://%s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
