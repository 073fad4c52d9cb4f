package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"payment-dashboard/internal/model"
)

func tableFixture() []model.PaymentIntent {
	return []model.PaymentIntent{
		{ID: "pi_A1", ReceiptEmail: "Alice@Example.com", Status: model.StatusSucceeded},
		{ID: "pi_B2", ReceiptEmail: "bob@example.com", Status: model.StatusProcessing},
		{ID: "pi_C3", Status: model.StatusSucceeded},
		{ID: "pi_D4", ReceiptEmail: "dave@shop.io", Status: model.StatusCanceled},
	}
}

func ids(intents []model.PaymentIntent) []string {
	out := make([]string, 0, len(intents))
	for _, intent := range intents {
		out = append(out, intent.ID)
	}
	return out
}

func TestFilterIntents(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"pi_A1", "pi_B2", "pi_C3", "pi_D4"}},
		{"all status", Filter{Status: StatusAll}, []string{"pi_A1", "pi_B2", "pi_C3", "pi_D4"}},
		{"email case insensitive", Filter{Search: "ALICE"}, []string{"pi_A1"}},
		{"domain substring", Filter{Search: "example"}, []string{"pi_A1", "pi_B2"}},
		{"id substring", Filter{Search: "c3"}, []string{"pi_C3"}},
		{"status", Filter{Status: "succeeded"}, []string{"pi_A1", "pi_C3"}},
		{"status and search", Filter{Search: "example", Status: "processing"}, []string{"pi_B2"}},
		{"no match", Filter{Search: "nobody"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterIntents(tableFixture(), tt.filter)))
		})
	}
}

func TestFilterIntentsTruncates(t *testing.T) {
	var intents []model.PaymentIntent
	for i := 0; i < 25; i++ {
		intents = append(intents, model.PaymentIntent{ID: fmt.Sprintf("pi_%02d", i), Status: model.StatusSucceeded})
	}

	rows := FilterIntents(intents, Filter{Status: "succeeded"})

	assert.Len(t, rows, TableLimit)
	assert.Equal(t, "pi_00", rows[0].ID)
	assert.Equal(t, "pi_09", rows[TableLimit-1].ID)
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "Succeeded", StatusBadge(model.StatusSucceeded).Label)
	assert.Equal(t, "Requires Action", StatusBadge(model.StatusRequiresAction).Label)
	assert.Equal(t, "Requires Payment", StatusBadge(model.StatusRequiresPaymentMethod).Label)
	assert.Equal(t, "Canceled", StatusBadge(model.Status("refunded")).Label)
}

func TestNewRow(t *testing.T) {
	intent := model.PaymentIntent{
		ID:           "pi_1",
		ReceiptEmail: "a@b.co",
		Amount:       1250,
		Currency:     "usd",
		Status:       model.StatusProcessing,
		Created:      model.NewTimestamp(time.Date(2025, time.January, 5, 9, 30, 0, 0, time.UTC)),
	}

	row := NewRow(intent, time.UTC)

	assert.Equal(t, Row{
		ID:     "pi_1",
		Badge:  Badge{Label: "Processing", Tone: "yellow", Icon: "clock"},
		Email:  "a@b.co",
		Amount: "$12.50",
		Date:   "Jan 5, 2025, 09:30 AM",
	}, row)
}
