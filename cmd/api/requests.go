package main

import (
	"payment-dashboard/internal/dashboard"
	"payment-dashboard/internal/model"
)

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresAt    int64      `json:"expires_at,omitempty"`
	User         model.User `json:"user"`
}

func newTokenResponse(s *model.Session) TokenResponse {
	resp := TokenResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		User:         s.User,
	}
	if !s.ExpiresAt.IsZero() {
		resp.ExpiresAt = s.ExpiresAt.Unix()
	}
	return resp
}

type ListResponse struct {
	Stats   dashboard.Stats       `json:"stats"`
	Cards   []dashboard.Card      `json:"cards"`
	Intents []model.PaymentIntent `json:"intents"`
}

type IntentResponse struct {
	Intent *model.PaymentIntent `json:"intent"`
	Detail *dashboard.Detail    `json:"detail"`
}

type StatsResponse struct {
	Stats dashboard.Stats  `json:"stats"`
	Cards []dashboard.Card `json:"cards"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
