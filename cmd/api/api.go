package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"

	"payment-dashboard/internal/auth"
	"payment-dashboard/internal/dashboard"
	"payment-dashboard/internal/model"
	"payment-dashboard/internal/supabase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encoding response")
	}
}

func upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	newrelic.FromContext(r.Context()).NoticeError(err)
	log.WithError(err).WithField("path", r.URL.Path).Error("fetching payment intents")
	writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: errorMessage(err)})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.deps.Ping != nil {
		if err := s.deps.Ping(r.Context()); err != nil {
			log.WithError(err).Warn("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// token exchanges credentials for a token pair usable as a bearer token on
// the other API routes.
func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	var request SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := s.deps.Auth.Provider().SignIn(r.Context(), request.Email, request.Password)
	if err != nil {
		status := http.StatusBadGateway
		var upstream *supabase.Error
		if errors.Is(err, auth.ErrInvalidCredentials) || (errors.As(err, &upstream) && upstream.Status < http.StatusInternalServerError) {
			status = http.StatusUnauthorized
		}
		writeJSON(w, status, ErrorResponse{Error: errorMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, newTokenResponse(session))
}

func (s *Server) listIntents(w http.ResponseWriter, r *http.Request) {
	page, err := s.deps.Dashboard.Load(r.Context(), dashboard.QueryFromValues(r.URL.Query()))
	if err != nil {
		upstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Stats:   page.Stats,
		Cards:   page.Cards,
		Intents: page.Intents,
	})
}

func (s *Server) getIntent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	intent, detail, err := s.deps.Dashboard.Intent(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "payment intent not found"})
			return
		}
		upstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, IntentResponse{Intent: intent, Detail: detail})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Dashboard.Stats(r.Context())
	if err != nil {
		upstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{Stats: stats, Cards: stats.Cards()})
}
