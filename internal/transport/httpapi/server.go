package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/campusbot/internal/config"
	"github.com/sandevgo/campusbot/internal/service/answer"
	"github.com/sandevgo/campusbot/pkg/log"
)

// Server exposes the question answering pipeline over HTTP. It satisfies
// srv.Service so lifecycle handling matches the other long-running parts.
type Server struct {
	httpServer *http.Server
	appCfg     *config.AppConfig
	svcCfg     *config.ServiceConfig
	gen        *answer.Generator
	startedAt  time.Time
}

func NewServer(appCfg *config.AppConfig, svcCfg *config.ServiceConfig, gen *answer.Generator) *Server {
	s := &Server{
		appCfg:    appCfg,
		svcCfg:    svcCfg,
		gen:       gen,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/chat", s.handleHealth)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/chat/stream", s.handleChatStream)
	mux.HandleFunc("GET /api/chat/history", s.handleHistory)
	mux.HandleFunc("DELETE /api/chat/history", s.handleClearHistory)
	mux.HandleFunc("GET /api/chat/status", s.handleStatus)
	mux.HandleFunc("GET /api/chat/check", s.handleCheck)
	mux.HandleFunc("GET /api/chat/selftest", s.handleSelfTest)

	s.httpServer = &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.httpServer.Addr).Msg("starting http server")

	// Hand the logger-bearing context to every request.
	s.httpServer.BaseContext = func(net.Listener) context.Context {
		return ctx
	}

	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	// The lifecycle context is already canceled here; give in-flight
	// requests their own grace window.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.FromCtx(ctx).Info().Msg("shutting down http server")
	return s.httpServer.Shutdown(shutdownCtx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
