package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"

	"payment-dashboard/internal/auth"
	"payment-dashboard/internal/dashboard"
	"payment-dashboard/internal/model"
	"payment-dashboard/internal/supabase"
	"payment-dashboard/internal/view"
)

const (
	modeSignUp        = "signup"
	confirmationSent  = "Check your email for the confirmation link!"
	dashboardErrTitle = "Error Loading Dashboard"
)

func (s *Server) themeFor(r *http.Request) string {
	return view.NormalizeTheme(r.URL.Query().Get("theme"), s.theme)
}

// errorMessage is the text shown to the merchant for err: the upstream
// message for Supabase errors, the full chain otherwise.
func errorMessage(err error) string {
	var upstream *supabase.Error
	if errors.As(err, &upstream) && upstream.Message != "" {
		return upstream.Message
	}
	return err.Error()
}

func (s *Server) renderHTML(w http.ResponseWriter, status int, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		log.WithError(err).Error("rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Warn("writing page")
	}
}

func (s *Server) renderLogin(w http.ResponseWriter, data view.LoginData) {
	s.renderHTML(w, http.StatusOK, func(out io.Writer) error {
		return s.deps.Views.Login(out, data)
	})
}

// renderError serves the dashboard error page with a 502.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	s.renderHTML(w, http.StatusBadGateway, func(out io.Writer) error {
		return s.deps.Views.Error(out, view.ErrorData{
			Theme:   s.themeFor(r),
			Title:   dashboardErrTitle,
			Message: errorMessage(err),
		})
	})
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := s.session(w, r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	s.renderLogin(w, view.LoginData{
		Theme:  s.themeFor(r),
		SignUp: r.URL.Query().Get("mode") == modeSignUp,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")
	data := view.LoginData{
		Theme:  view.NormalizeTheme(r.Form.Get("theme"), s.theme),
		SignUp: r.PostForm.Get("mode") == modeSignUp,
		Email:  email,
	}

	provider := s.deps.Auth.Provider()

	var (
		session *model.Session
		err     error
	)
	if data.SignUp {
		session, err = provider.SignUp(r.Context(), email, password)
	} else {
		session, err = provider.SignIn(r.Context(), email, password)
	}
	if err != nil {
		log.WithError(err).WithField("sign_up", data.SignUp).Info("authentication failed")
		data.Error = errorMessage(err)
		s.renderLogin(w, data)
		return
	}

	if session == nil {
		data.SignUp = false
		data.Info = confirmationSent
		s.renderLogin(w, data)
		return
	}

	s.setSessionCookies(w, session)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	accessToken, _, _ := tokensFromRequest(r)
	if accessToken != "" {
		if err := s.deps.Auth.Provider().SignOut(r.Context(), accessToken); err != nil {
			log.WithError(err).Warn("signing out")
		}
	}

	s.clearSessionCookies(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) dashboardPage(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())
	theme := s.themeFor(r)

	page, err := s.deps.Dashboard.Load(r.Context(), dashboard.QueryFromValues(r.URL.Query()))
	if err != nil {
		newrelic.FromContext(r.Context()).NoticeError(err)
		log.WithError(err).WithField("user_id", session.User.ID).Error("loading dashboard")
		s.renderError(w, r, err)
		return
	}

	data := view.NewDashboardData(session.User, page, theme)
	s.renderHTML(w, http.StatusOK, func(out io.Writer) error {
		return s.deps.Views.Dashboard(out, data)
	})
}
