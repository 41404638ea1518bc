package enrich

import (
	"strings"

	"github.com/ambernotes/revops-etl/internal/models"
)

// NormalizeMonthlyAmount derives a monthly-equivalent amount from the raw
// billing terms using exact interval division, not calendar approximation.
// A record that already carries MonthlyAmount is left alone.
func NormalizeMonthlyAmount(s *models.Subscription) {
	if s.MonthlyAmount != 0 || s.UnitAmount == 0 {
		return
	}
	count := s.IntervalCount
	if count <= 0 {
		count = 1
	}
	per := s.UnitAmount / float64(count)
	switch strings.ToLower(strings.TrimSpace(s.Interval)) {
	case "year", "yearly", "annual":
		s.MonthlyAmount = per / 12
	case "week", "weekly":
		s.MonthlyAmount = per * 52 / 12
	case "day", "daily":
		s.MonthlyAmount = per * 365 / 12
	default: // month
		s.MonthlyAmount = per
	}
}
