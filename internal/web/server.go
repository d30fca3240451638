// Package web serves the encoder's status page and JSON snapshot.
package web

import (
	"context"
	"net"
	"net/http"

	"github.com/sweeney/rotary-encoder/internal/status"
)

// Server is the HTTP status server. It only reads from the tracker.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
}

// New creates a Server on addr backed by tracker.
func New(addr string, tracker *status.Tracker) *Server {
	s := &Server{tracker: tracker}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /index.html", s.handleIndex)
	mux.HandleFunc("GET /index.json", s.handleJSON)

	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	return s
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, s.tracker.Snapshot())
}

func (s *Server) handleJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(s.tracker.Snapshot()))
}
