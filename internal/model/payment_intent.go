package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v74"
)

// Status is the lifecycle state of a payment intent as reported by Stripe.
type Status = stripe.PaymentIntentStatus

const (
	StatusSucceeded             Status = stripe.PaymentIntentStatusSucceeded
	StatusProcessing            Status = stripe.PaymentIntentStatusProcessing
	StatusRequiresPaymentMethod Status = stripe.PaymentIntentStatusRequiresPaymentMethod
	StatusRequiresAction        Status = stripe.PaymentIntentStatusRequiresAction
	StatusCanceled              Status = stripe.PaymentIntentStatusCanceled
)

// Statuses lists every status the dashboard knows how to display, in filter order.
var Statuses = []Status{
	StatusSucceeded,
	StatusProcessing,
	StatusRequiresPaymentMethod,
	StatusRequiresAction,
	StatusCanceled,
}

// PaymentIntent is a payment record read verbatim from the store.
// Amount is a count of minor currency units.
type PaymentIntent struct {
	ID           string         `json:"id"`
	Created      Timestamp      `json:"created"`
	Amount       int64          `json:"amount"`
	Currency     string         `json:"currency"`
	Status       Status         `json:"status"`
	Customer     string         `json:"customer,omitempty"`
	ReceiptEmail string         `json:"receipt_email,omitempty"`
	LatestCharge string         `json:"latest_charge,omitempty"`
	Metadata     map[string]any `json:"metadata"`
}

// UnmarshalJSON decodes the row shapes the store has used over time: the email
// may arrive as receipt_email or customer_email, the charge as latest_charge or
// latest_charge_id, and created as unix seconds or an ISO string. Fields that
// cannot be decoded are left empty instead of failing the whole row.
func (p *PaymentIntent) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             json.RawMessage `json:"id"`
		Created        Timestamp       `json:"created"`
		CreatedAt      Timestamp       `json:"created_at"`
		Amount         json.RawMessage `json:"amount"`
		Currency       json.RawMessage `json:"currency"`
		Status         json.RawMessage `json:"status"`
		Customer       json.RawMessage `json:"customer"`
		ReceiptEmail   json.RawMessage `json:"receipt_email"`
		CustomerEmail  json.RawMessage `json:"customer_email"`
		LatestCharge   json.RawMessage `json:"latest_charge"`
		LatestChargeID json.RawMessage `json:"latest_charge_id"`
		Metadata       json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = PaymentIntent{
		ID:           rawString(raw.ID),
		Created:      raw.Created,
		Amount:       rawAmount(raw.Amount),
		Currency:     rawString(raw.Currency),
		Status:       Status(rawString(raw.Status)),
		Customer:     rawString(raw.Customer),
		ReceiptEmail: rawString(raw.ReceiptEmail),
		LatestCharge: rawString(raw.LatestCharge),
	}
	if p.Created.IsZero() {
		p.Created = raw.CreatedAt
	}
	if p.ReceiptEmail == "" {
		p.ReceiptEmail = rawString(raw.CustomerEmail)
	}
	if p.LatestCharge == "" {
		p.LatestCharge = rawString(raw.LatestChargeID)
	}
	p.Metadata = DecodeMetadata(raw.Metadata)

	return nil
}

// DecodeMetadata parses a JSON object, returning nil for anything else.
func DecodeMetadata(data []byte) map[string]any {
	if len(data) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

func rawString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}
	return s
}

// rawAmount accepts integers, integral floats and numeric strings. Anything
// else, including negative values, is zero.
func rawAmount(data json.RawMessage) int64 {
	if len(data) == 0 {
		return 0
	}
	text := strings.Trim(string(data), `"`)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return max(n, 0)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f < 0 || f != float64(int64(f)) {
		return 0
	}
	return int64(f)
}
