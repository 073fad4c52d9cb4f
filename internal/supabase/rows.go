package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"payment-dashboard/internal/auth"
	"payment-dashboard/internal/model"
)

// Rows reads payment intents through PostgREST. Requests carry the service
// key when one is configured, otherwise the merchant's own access token so
// row level security applies.
type Rows struct {
	client *Client
	table  string
}

func NewRows(client *Client, table string) *Rows {
	return &Rows{client: client, table: table}
}

func (r *Rows) bearer(ctx context.Context) string {
	if r.client.serviceKey != "" {
		return r.client.serviceKey
	}
	if s, ok := auth.SessionFromContext(ctx); ok {
		return s.AccessToken
	}
	return ""
}

func (r *Rows) ListPaymentIntents(ctx context.Context) ([]model.PaymentIntent, error) {
	var intents []model.PaymentIntent
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/" + r.table,
		query: url.Values{
			"select": {"*"},
			"order":  {"created.desc"},
		},
		bearer: r.bearer(ctx),
	}, &intents)
	if err != nil {
		return nil, err
	}
	return intents, nil
}

func (r *Rows) GetPaymentIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	var intents []model.PaymentIntent
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/" + r.table,
		query: url.Values{
			"select": {"*"},
			"id":     {"eq." + id},
			"limit":  {"1"},
		},
		bearer: r.bearer(ctx),
	}, &intents)
	if err != nil {
		return nil, err
	}
	if len(intents) == 0 {
		return nil, fmt.Errorf("no payment intent found with id %s: %w", id, model.ErrNotFound)
	}
	return &intents[0], nil
}
