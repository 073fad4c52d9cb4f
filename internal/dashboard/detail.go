package dashboard

import (
	"encoding/json"
	"strings"
	"time"

	"payment-dashboard/internal/model"
)

// CopyFeedback is how long a copy button shows its confirmation state.
const CopyFeedback = 2 * time.Second

const notAvailable = "N/A"

type DetailRow struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Copyable bool   `json:"copyable"`
}

// Detail is the formatted view of a single selected payment intent.
type Detail struct {
	ID       string      `json:"id"`
	Rows     []DetailRow `json:"rows"`
	Metadata string      `json:"metadata,omitempty"`
}

func NewDetail(intent model.PaymentIntent, loc *time.Location) Detail {
	rows := []DetailRow{
		{Label: "Intent ID", Value: intent.ID, Copyable: true},
		{Label: "Status", Value: capitalize(string(intent.Status))},
		optionalRow("Customer Email", intent.ReceiptEmail),
	}
	if intent.Customer != "" {
		rows = append(rows, DetailRow{Label: "Customer", Value: intent.Customer, Copyable: true})
	}
	rows = append(rows,
		DetailRow{Label: "Amount", Value: FormatAmount(intent.Amount, intent.Currency)},
		DetailRow{Label: "Currency", Value: strings.ToUpper(intent.Currency)},
		optionalRow("Latest Charge", intent.LatestCharge),
		DetailRow{Label: "Created At", Value: FormatDetailDate(intent.Created.Time, loc)},
	)

	return Detail{
		ID:       intent.ID,
		Rows:     rows,
		Metadata: formatMetadata(intent.Metadata),
	}
}

func optionalRow(label, value string) DetailRow {
	if value == "" {
		return DetailRow{Label: label, Value: notAvailable}
	}
	return DetailRow{Label: label, Value: value, Copyable: true}
}

func formatMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}
	b, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
