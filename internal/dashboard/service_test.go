package dashboard

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-dashboard/internal/model"
)

type fakeSource struct {
	intents []model.PaymentIntent
	err     error
}

func (f *fakeSource) ListPaymentIntents(ctx context.Context) ([]model.PaymentIntent, error) {
	return f.intents, f.err
}

func (f *fakeSource) GetPaymentIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, intent := range f.intents {
		if intent.ID == id {
			return &intent, nil
		}
	}
	return nil, model.ErrNotFound
}

func newTestService(source Source, now time.Time) *Service {
	s := NewService(source, time.UTC)
	s.now = func() time.Time { return now }
	return s
}

func TestServiceLoad(t *testing.T) {
	now := time.Date(2025, time.June, 24, 12, 0, 0, 0, time.UTC)
	source := &fakeSource{intents: []model.PaymentIntent{
		intentAt("pi_1", model.StatusSucceeded, 500, now.Add(-time.Hour)),
		intentAt("pi_2", model.StatusProcessing, 700, now),
		intentAt("pi_3", model.StatusSucceeded, 1500, now.Add(-48*time.Hour)),
	}}

	page, err := newTestService(source, now).Load(context.Background(), Query{
		Filter:   Filter{Status: "succeeded"},
		Selected: "pi_2",
	})
	require.NoError(t, err)

	assert.Equal(t, Stats{TotalVolume: 2000, TodaySucceeded: 1, ActiveIntents: 1, TotalSucceeded: 2}, page.Stats)
	assert.Equal(t, "$20.00", page.Cards[0].Value)
	assert.Equal(t, []string{"pi_1", "pi_3"}, ids(page.Intents))
	assert.Len(t, page.Rows, 2)
	require.NotNil(t, page.Selected, "selection is looked up in the full list, not the filtered rows")
	assert.Equal(t, "pi_2", page.Selected.ID)
}

func TestServiceLoadUnknownSelection(t *testing.T) {
	source := &fakeSource{intents: []model.PaymentIntent{{ID: "pi_1"}}}

	page, err := newTestService(source, time.Now()).Load(context.Background(), Query{Selected: "pi_missing"})
	require.NoError(t, err)

	assert.Nil(t, page.Selected)
}

func TestServiceLoadError(t *testing.T) {
	upstream := errors.New("relation \"payment_intents\" does not exist")

	_, err := newTestService(&fakeSource{err: upstream}, time.Now()).Load(context.Background(), Query{})

	assert.ErrorIs(t, err, upstream)
}

func TestServiceIntent(t *testing.T) {
	source := &fakeSource{intents: []model.PaymentIntent{{ID: "pi_1", Currency: "usd", Amount: 100}}}
	s := newTestService(source, time.Now())

	intent, detail, err := s.Intent(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1", detail.ID)

	_, _, err = s.Intent(context.Background(), "pi_2")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestQueryValuesRoundTrip(t *testing.T) {
	values := url.Values{"q": {"alice"}, "status": {"succeeded"}, "selected": {"pi_1"}}

	q := QueryFromValues(values)

	assert.Equal(t, Query{Filter: Filter{Search: "alice", Status: "succeeded"}, Selected: "pi_1"}, q)
	assert.Equal(t, values, q.Values())
	assert.Empty(t, Query{Filter: Filter{Status: StatusAll}}.Values())
}
