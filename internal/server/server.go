// Package server serves the status page, the live websocket feed and a
// small JSON API.
package server

import (
	"context"
	"io/fs"
	"log"
	"net/http"

	"github.com/soar/joymap/internal/hub"
)

// Input is what the server needs from the input loop.
type Input interface {
	hub.StateSource
	hub.CommandSubmitter
}

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	input       Input
	frontendFS  fs.FS
	addr        string
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, input Input, frontendFS fs.FS, addr string) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		input:       input,
		frontendFS:  frontendFS,
		addr:        addr,
	}
}

// Handler builds the routes.
func (s *Server) Handler() (http.Handler, error) {
	static, err := loadAssets(s.frontendFS)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.input))
	mux.HandleFunc("GET /api/state", handleState(s.input))
	mux.HandleFunc("POST /api/command", handleCommand(s.input))
	mux.Handle("/", static)
	return mux, nil
}

func (s *Server) ListenAndServe() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}

	log.Printf("HTTP server listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down HTTP server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
