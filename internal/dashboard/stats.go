package dashboard

import (
	"strconv"
	"time"

	"payment-dashboard/internal/model"
)

// TodayWindow is how far back a succeeded payment still counts as today's.
const TodayWindow = 24 * time.Hour

// VolumeCurrency is the currency the total volume card is displayed in.
const VolumeCurrency = "usd"

type Stats struct {
	TotalVolume    int64 `json:"total_volume"`
	TodaySucceeded int   `json:"today_succeeded"`
	ActiveIntents  int   `json:"active_intents"`
	TotalSucceeded int   `json:"total_succeeded"`
}

// Card is one headline figure on the dashboard.
type Card struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value string `json:"value"`
}

// ComputeStats derives the headline metrics in a single pass. Records with a
// malformed created time never count towards today.
func ComputeStats(intents []model.PaymentIntent, now time.Time) Stats {
	var stats Stats
	since := now.Add(-TodayWindow)

	for _, intent := range intents {
		switch intent.Status {
		case model.StatusSucceeded:
			stats.TotalSucceeded++
			stats.TotalVolume += max(intent.Amount, 0)
			if !intent.Created.IsZero() && !intent.Created.Before(since) {
				stats.TodaySucceeded++
			}
		case model.StatusProcessing, model.StatusRequiresAction:
			stats.ActiveIntents++
		}
	}

	return stats
}

func (s Stats) Cards() []Card {
	return []Card{
		{Key: "volume", Title: "Total Volume", Value: FormatAmount(s.TotalVolume, VolumeCurrency)},
		{Key: "today", Title: "Today's Successful Payments", Value: strconv.Itoa(s.TodaySucceeded)},
		{Key: "active", Title: "Active Intents", Value: strconv.Itoa(s.ActiveIntents)},
		{Key: "succeeded", Title: "Total Successful Payments", Value: strconv.Itoa(s.TotalSucceeded)},
	}
}
