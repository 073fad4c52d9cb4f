package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"payment-dashboard/internal/model"
)

// Source reads payment intents from the backing store, newest first.
// GetPaymentIntent wraps model.ErrNotFound when the id is unknown.
type Source interface {
	ListPaymentIntents(ctx context.Context) ([]model.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*model.PaymentIntent, error)
}

// Query is the per-request view state: table search, status filter and the
// selected intent.
type Query struct {
	Filter
	Selected string
}

func QueryFromValues(values url.Values) Query {
	return Query{
		Filter: Filter{
			Search: values.Get("q"),
			Status: values.Get("status"),
		},
		Selected: values.Get("selected"),
	}
}

// Values is the inverse of QueryFromValues; empty fields are omitted.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("q", q.Search)
	}
	if q.Status != "" && q.Status != StatusAll {
		values.Set("status", q.Status)
	}
	if q.Selected != "" {
		values.Set("selected", q.Selected)
	}
	return values
}

// Page is everything the dashboard renders for one request.
type Page struct {
	Query    Query                 `json:"-"`
	Stats    Stats                 `json:"stats"`
	Cards    []Card                `json:"cards"`
	Intents  []model.PaymentIntent `json:"intents"`
	Rows     []Row                 `json:"rows"`
	Selected *Detail               `json:"selected,omitempty"`
}

type Service struct {
	source Source
	loc    *time.Location
	now    func() time.Time
}

func NewService(source Source, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		source: source,
		loc:    loc,
		now:    time.Now,
	}
}

// Load fetches the snapshot once and derives every panel from it.
func (s *Service) Load(ctx context.Context, q Query) (*Page, error) {
	intents, err := s.source.ListPaymentIntents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing payment intents: %w", err)
	}
	log.WithField("count", len(intents)).Debug("loaded payment intents")

	stats := ComputeStats(intents, s.now())
	filtered := FilterIntents(intents, q.Filter)

	page := &Page{
		Query:   q,
		Stats:   stats,
		Cards:   stats.Cards(),
		Intents: filtered,
		Rows:    make([]Row, 0, len(filtered)),
	}
	for _, intent := range filtered {
		page.Rows = append(page.Rows, NewRow(intent, s.loc))
	}

	if q.Selected != "" {
		for _, intent := range intents {
			if intent.ID == q.Selected {
				detail := NewDetail(intent, s.loc)
				page.Selected = &detail
				break
			}
		}
	}

	return page, nil
}

// Stats computes the headline metrics without building the table.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	intents, err := s.source.ListPaymentIntents(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("listing payment intents: %w", err)
	}
	return ComputeStats(intents, s.now()), nil
}

// Intent returns a single intent and its formatted detail.
func (s *Service) Intent(ctx context.Context, id string) (*model.PaymentIntent, *Detail, error) {
	intent, err := s.source.GetPaymentIntent(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("getting payment intent %s: %w", id, err)
	}
	detail := NewDetail(*intent, s.loc)
	return intent, &detail, nil
}

func (s *Service) Location() *time.Location {
	return s.loc
}
