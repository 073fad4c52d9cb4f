package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"

	"payment-dashboard/internal/auth"
	"payment-dashboard/internal/model"
	"payment-dashboard/internal/supabase"
)

const (
	accessCookie    = "sb-access-token"
	refreshCookie   = "sb-refresh-token"
	requestIDHeader = "X-Request-ID"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"latency":    time.Since(start),
		}).Info("request served")
	})
}

func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				log.WithField("path", r.URL.Path).Errorf("recovered from panic: %v", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// sameOrigin rejects state-changing requests whose Origin, or Referer when
// Origin is absent, names another host than this service.
func (s *Server) sameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		source := r.Header.Get("Origin")
		if source == "" {
			source = r.Header.Get("Referer")
		}
		if source != "" && !s.trustedOrigin(source, r.Host) {
			log.WithFields(log.Fields{"origin": source, "path": r.URL.Path}).Warn("rejecting cross-origin request")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) trustedOrigin(source, requestHost string) bool {
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return false
	}
	if s.publicURL != nil {
		return strings.EqualFold(u.Scheme, s.publicURL.Scheme) && strings.EqualFold(u.Host, s.publicURL.Host)
	}
	return strings.EqualFold(u.Host, requestHost)
}

// sessionRejected reports whether err means the tokens are bad, as opposed
// to the identity provider being unreachable.
func sessionRejected(err error) bool {
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrTokenExpired) || errors.Is(err, auth.ErrInvalidCredentials) {
		return true
	}
	var upstream *supabase.Error
	return errors.As(err, &upstream) && upstream.Status >= http.StatusBadRequest && upstream.Status < http.StatusInternalServerError
}

// requireSession resolves the caller's session and stores it in the request
// context. Pages without a session are redirected to the login form, API
// calls get a 401. When the identity provider cannot be reached the cookies
// are kept and the request fails with 502.
func (s *Server) requireSession(api bool) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := s.session(w, r)
			if err != nil && !sessionRejected(err) {
				newrelic.FromContext(r.Context()).NoticeError(err)
				log.WithError(err).Error("resolving session")
				if api {
					writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: errorMessage(err)})
					return
				}
				s.renderError(w, r, err)
				return
			}
			if err != nil {
				log.WithError(err).Debug("request without a valid session")
				if api {
					writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
					return
				}
				s.clearSessionCookies(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

// session authenticates the request tokens, persisting refreshed tokens
// back to the browser.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*model.Session, error) {
	accessToken, refreshToken, fromCookies := tokensFromRequest(r)

	session, refreshed, err := s.deps.Auth.Authenticate(r.Context(), accessToken, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("authenticating request: %w", err)
	}

	if refreshed && fromCookies {
		s.setSessionCookies(w, session)
	}

	return session, nil
}

// tokensFromRequest prefers an Authorization bearer token over the session
// cookies.
func tokensFromRequest(r *http.Request) (accessToken, refreshToken string, fromCookies bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token), "", false
		}
	}

	if c, err := r.Cookie(accessCookie); err == nil {
		accessToken = c.Value
	}
	if c, err := r.Cookie(refreshCookie); err == nil {
		refreshToken = c.Value
	}
	return accessToken, refreshToken, true
}

func (s *Server) sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Server) setSessionCookies(w http.ResponseWriter, session *model.Session) {
	maxAge := int(s.cookieTTL.Seconds())
	http.SetCookie(w, s.sessionCookie(accessCookie, session.AccessToken, maxAge))
	if session.RefreshToken != "" {
		http.SetCookie(w, s.sessionCookie(refreshCookie, session.RefreshToken, maxAge))
	}
}

func (s *Server) clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, s.sessionCookie(accessCookie, "", -1))
	http.SetCookie(w, s.sessionCookie(refreshCookie, "", -1))
}
