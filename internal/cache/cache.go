// Package cache keeps a short-lived snapshot of the payment intent list in
// Redis so repeated page loads do not hit the store every time.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"payment-dashboard/internal/auth"
	"payment-dashboard/internal/dashboard"
	"payment-dashboard/internal/model"
)

// ErrMiss is returned by a Store when the key is absent.
var ErrMiss = errors.New("cache miss")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr and checks the connection.
func NewRedisStore(ctx context.Context, addr, password string, db int) (Store, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &redisStore{client: client}, client.Close, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Source is a read-through cache in front of another dashboard.Source. The
// list is cached per merchant; single lookups always go to the store.
type Source struct {
	next   dashboard.Source
	store  Store
	ttl    time.Duration
	prefix string
}

func NewSource(next dashboard.Source, store Store, ttl time.Duration, prefix string) *Source {
	return &Source{next: next, store: store, ttl: ttl, prefix: prefix}
}

func (s *Source) key(ctx context.Context) string {
	owner := "anonymous"
	if session, ok := auth.SessionFromContext(ctx); ok && session.User.ID != "" {
		owner = session.User.ID
	}
	return s.prefix + ":payment_intents:" + owner
}

// ListPaymentIntents serves from cache when possible. Cache failures are
// logged and fall through to the store.
func (s *Source) ListPaymentIntents(ctx context.Context) ([]model.PaymentIntent, error) {
	key := s.key(ctx)

	cached, err := s.store.Get(ctx, key)
	switch {
	case err == nil:
		var intents []model.PaymentIntent
		if err := json.Unmarshal(cached, &intents); err == nil {
			return intents, nil
		}
		log.WithField("key", key).Warn("discarding undecodable cache entry")
	case !errors.Is(err, ErrMiss):
		log.WithError(err).WithField("key", key).Warn("reading payment intent cache")
	}

	intents, err := s.next.ListPaymentIntents(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(intents); err == nil {
		if err := s.store.Set(ctx, key, encoded, s.ttl); err != nil {
			log.WithError(err).WithField("key", key).Warn("writing payment intent cache")
		}
	}

	return intents, nil
}

func (s *Source) GetPaymentIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	return s.next.GetPaymentIntent(ctx, id)
}
