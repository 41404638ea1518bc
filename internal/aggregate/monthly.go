package aggregate

import (
	"github.com/ambernotes/revops-etl/internal/models"
	"github.com/ambernotes/revops-etl/internal/timeutil"
)

// BuildMonthly rolls the weekly buckets up by month prefix. It must run
// before RoundWeekly so the sums are over exact values.
func BuildMonthly(ads []models.AdsWeekly, funnel []models.FunnelWeekly, stripe []models.StripeWeekly, weeks []string) []models.MonthlyRow {
	months := timeutil.Months(weeks)
	rows, index := make([]models.MonthlyRow, len(months)), make(map[string]int, len(months))
	for i, m := range months {
		rows[i] = models.MonthlyRow{Month: m}
		index[m] = i
	}

	for _, a := range ads {
		if i, ok := index[timeutil.MonthKey(a.Week)]; ok {
			rows[i].AdsCost += a.TotalCost
		}
	}
	for _, f := range funnel {
		if i, ok := index[timeutil.MonthKey(f.Week)]; ok {
			r := &rows[i]
			r.MQLs += f.MQLs
			r.SQLs += f.SQLs
			r.Won += f.Won
			r.WonRevenue += f.WonRevenue
		}
	}
	for _, s := range stripe {
		if i, ok := index[timeutil.MonthKey(s.Week)]; ok {
			rows[i].StripeRevenue += s.Revenue
			rows[i].Charges += s.Charges
		}
	}

	for i := range rows {
		r := &rows[i]
		r.TotalRevenue = r.WonRevenue + r.StripeRevenue
		if r.AdsCost > 0 {
			r.ROAS = round2(r.TotalRevenue / r.AdsCost)
		}
		if r.Won > 0 {
			r.AOV = round0(r.WonRevenue / float64(r.Won))
		}
		r.MQLToSQL = pct(float64(r.SQLs), float64(r.MQLs))
		r.SQLToWon = pct(float64(r.Won), float64(r.SQLs))

		r.AdsCost = round2(r.AdsCost)
		r.WonRevenue = round2(r.WonRevenue)
		r.StripeRevenue = round2(r.StripeRevenue)
		r.TotalRevenue = round2(r.TotalRevenue)
	}
	return rows
}

// BuildKPIs totals the whole date range, again over unrounded weekly values.
func BuildKPIs(ads []models.AdsWeekly, funnel []models.FunnelWeekly, stripe []models.StripeWeekly, weeks []string) models.KPIs {
	var k models.KPIs
	for _, a := range ads {
		k.TotalAdsCost += a.TotalCost
	}
	for _, f := range funnel {
		k.TotalMQLs += f.MQLs
		k.TotalSQLs += f.SQLs
		k.TotalWon += f.Won
		k.TotalWonRevenue += f.WonRevenue
	}
	for _, s := range stripe {
		k.TotalStripeRevenue += s.Revenue
	}
	k.TotalRevenue = k.TotalWonRevenue + k.TotalStripeRevenue
	if k.TotalAdsCost > 0 {
		k.ROAS = round2(k.TotalRevenue / k.TotalAdsCost)
	}
	k.ActiveWeeks = len(weeks)

	k.TotalAdsCost = round2(k.TotalAdsCost)
	k.TotalWonRevenue = round2(k.TotalWonRevenue)
	k.TotalStripeRevenue = round2(k.TotalStripeRevenue)
	k.TotalRevenue = round2(k.TotalRevenue)
	return k
}
