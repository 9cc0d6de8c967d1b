package sales

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the display precision for monetary values.
const moneyPlaces = 2

// Summarize computes revenue, units and average ticket over records. Sums are
// exact decimals and nothing is rounded here. An empty set yields zeros.
func Summarize(records []SaleRecord) SummaryStats {
	stats := SummaryStats{
		TotalRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
	}
	for _, r := range records {
		stats.TotalRevenue = stats.TotalRevenue.Add(r.Total)
		stats.TotalUnits += r.Quantity
	}
	if n := len(records); n > 0 {
		stats.AverageTicket = stats.TotalRevenue.Div(decimal.NewFromInt(int64(n)))
	}
	return stats
}

// Rounded returns a copy with monetary values rounded to cents.
func (s SummaryStats) Rounded() SummaryStats {
	return SummaryStats{
		TotalRevenue:  s.TotalRevenue.Round(moneyPlaces),
		TotalUnits:    s.TotalUnits,
		AverageTicket: s.AverageTicket.Round(moneyPlaces),
	}
}

// Equal compares two summaries by value.
func (s SummaryStats) Equal(o SummaryStats) bool {
	return s.TotalUnits == o.TotalUnits &&
		s.TotalRevenue.Equal(o.TotalRevenue) &&
		s.AverageTicket.Equal(o.AverageTicket)
}

// MarshalJSON renders the summary cards with two fixed decimals.
func (s SummaryStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalRevenue  string `json:"totalRevenue"`
		TotalUnits    int    `json:"totalUnits"`
		AverageTicket string `json:"averageTicket"`
	}{
		TotalRevenue:  s.TotalRevenue.StringFixed(moneyPlaces),
		TotalUnits:    s.TotalUnits,
		AverageTicket: s.AverageTicket.StringFixed(moneyPlaces),
	})
}
