// Package stripesync copies payment intents from the Stripe API into the
// payment_intents table the dashboard reads.
package stripesync

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"payment-dashboard/internal/model"
)

const pageSize = 100

// Iterator is the subset of *paymentintent.Iter the syncer uses.
type Iterator interface {
	Next() bool
	PaymentIntent() *stripe.PaymentIntent
	Err() error
}

type ListFunc func(params *stripe.PaymentIntentListParams) Iterator

type Store interface {
	UpsertPaymentIntent(ctx context.Context, intent model.PaymentIntent) error
}

type Syncer struct {
	list  ListFunc
	store Store
}

func NewSyncer(list ListFunc, store Store) *Syncer {
	return &Syncer{list: list, store: store}
}

// NewStripeSyncer lists payment intents with the given secret key.
func NewStripeSyncer(secretKey string, store Store) *Syncer {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return NewSyncer(func(params *stripe.PaymentIntentListParams) Iterator {
		return sc.PaymentIntents.List(params)
	}, store)
}

// Run upserts every payment intent created at or after since (all of them
// when since is zero) and returns how many were written.
func (s *Syncer) Run(ctx context.Context, since time.Time) (int, error) {
	params := &stripe.PaymentIntentListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(pageSize)
	params.AddExpand("data.customer")
	if !since.IsZero() {
		params.CreatedRange = &stripe.RangeQueryParams{GreaterThanOrEqual: since.Unix()}
	}

	written := 0
	iter := s.list(params)
	for iter.Next() {
		intent := FromStripe(iter.PaymentIntent())
		if err := s.store.UpsertPaymentIntent(ctx, intent); err != nil {
			return written, fmt.Errorf("storing %s: %w", intent.ID, err)
		}
		written++
		if written%pageSize == 0 {
			log.WithField("written", written).Info("syncing payment intents")
		}
	}
	if err := iter.Err(); err != nil {
		return written, fmt.Errorf("listing stripe payment intents: %w", err)
	}

	return written, nil
}

// FromStripe maps an API object onto the stored row shape.
func FromStripe(pi *stripe.PaymentIntent) model.PaymentIntent {
	intent := model.PaymentIntent{
		ID:           pi.ID,
		Created:      model.NewTimestamp(time.Unix(pi.Created, 0).UTC()),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       pi.Status,
		ReceiptEmail: pi.ReceiptEmail,
	}
	if pi.Customer != nil {
		intent.Customer = pi.Customer.ID
		if intent.ReceiptEmail == "" {
			intent.ReceiptEmail = pi.Customer.Email
		}
	}
	if pi.LatestCharge != nil {
		intent.LatestCharge = pi.LatestCharge.ID
	}
	if len(pi.Metadata) > 0 {
		intent.Metadata = make(map[string]any, len(pi.Metadata))
		for k, v := range pi.Metadata {
			intent.Metadata[k] = v
		}
	}
	return intent
}
