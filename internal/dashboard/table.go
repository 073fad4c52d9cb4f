package dashboard

import (
	"strings"
	"time"

	"payment-dashboard/internal/model"
)

// TableLimit caps the number of rows shown in the payments table.
const TableLimit = 10

// StatusAll disables status filtering.
const StatusAll = "all"

type Filter struct {
	Search string
	Status string
}

func (f Filter) matches(intent model.PaymentIntent, search string) bool {
	if f.Status != "" && f.Status != StatusAll && string(intent.Status) != f.Status {
		return false
	}
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(intent.ReceiptEmail), search) ||
		strings.Contains(strings.ToLower(intent.ID), search)
}

// FilterIntents keeps the store's ordering and returns at most TableLimit rows.
func FilterIntents(intents []model.PaymentIntent, f Filter) []model.PaymentIntent {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	rows := make([]model.PaymentIntent, 0, min(len(intents), TableLimit))
	for _, intent := range intents {
		if len(rows) == TableLimit {
			break
		}
		if f.matches(intent, search) {
			rows = append(rows, intent)
		}
	}
	return rows
}

type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
	Icon  string `json:"icon"`
}

var badges = map[model.Status]Badge{
	model.StatusSucceeded:             {Label: "Succeeded", Tone: "green", Icon: "check"},
	model.StatusProcessing:            {Label: "Processing", Tone: "yellow", Icon: "clock"},
	model.StatusRequiresAction:        {Label: "Requires Action", Tone: "orange", Icon: "alert"},
	model.StatusRequiresPaymentMethod: {Label: "Requires Payment", Tone: "red", Icon: "alert"},
	model.StatusCanceled:              {Label: "Canceled", Tone: "gray", Icon: "x"},
}

// StatusBadge falls back to the canceled badge for unknown statuses.
func StatusBadge(status model.Status) Badge {
	if b, ok := badges[status]; ok {
		return b
	}
	return badges[model.StatusCanceled]
}

// Row is a payments table line ready for display.
type Row struct {
	ID     string `json:"id"`
	Badge  Badge  `json:"badge"`
	Email  string `json:"email"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
}

func NewRow(intent model.PaymentIntent, loc *time.Location) Row {
	return Row{
		ID:     intent.ID,
		Badge:  StatusBadge(intent.Status),
		Email:  intent.ReceiptEmail,
		Amount: FormatAmount(intent.Amount, intent.Currency),
		Date:   FormatTableDate(intent.Created.Time, loc),
	}
}
