// Package server exposes the Telegram webhook and a health check over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	WebhookPath = "/webhook"
	serviceName = "cook-companion"
)

type Server struct {
	updates chan<- tgbotapi.Update
	router  chi.Router
	srv     *http.Server
}

// New builds the HTTP server. Decoded webhook updates are pushed to updates.
func New(addr string, updates chan<- tgbotapi.Update) *Server {
	s := &Server{updates: updates}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleHealth)
	r.Get("/health", s.handleHealth)
	r.Post(WebhookPath, s.handleWebhook)
	s.router = r
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) ListenAndServe() error {
	log.Printf("🌐 HTTP server listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": serviceName})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var u tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		log.Printf("⚠️ bad webhook payload: %v", err)
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}
	select {
	case s.updates <- u:
	case <-r.Context().Done():
		http.Error(w, "busy", http.StatusServiceUnavailable)
		return
	}
	_, _ = w.Write([]byte("OK"))
}
