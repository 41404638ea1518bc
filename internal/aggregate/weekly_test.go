package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambernotes/revops-etl/internal/models"
)

func TestBuildAdsUserTypeSplit(t *testing.T) {
	week := "2025-06-02"
	ads := []models.AdSpendRecord{
		{Week: week, Cost: 100, Country: "NL"},
		{Week: week, Cost: 200, UserType: models.UserTypeMachineMade, Country: "NL"},
		{Week: week, Cost: 50, UserType: models.UserTypeHumanMade, Country: "US"},
	}
	rows := BuildAds(ads, []string{week})
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, week, r.Week)
	assert.InDelta(t, 350.0, r.TotalCost, 0.001)
	assert.InDelta(t, 200.0, r.MMCost, 0.001)
	assert.InDelta(t, 50.0, r.HMCost, 0.001)
	assert.InDelta(t, 100.0, r.OtherCost, 0.001)
	assert.InDelta(t, 300.0, r.ByCountry["NL"], 0.001)
	assert.InDelta(t, 50.0, r.ByCountry["Other"], 0.001)
}

func TestBuildAdsZeroFilledWeeks(t *testing.T) {
	rows := BuildAds(nil, []string{"2025-06-02", "2025-06-09"})
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-06-09", rows[1].Week)
	assert.Zero(t, rows[1].TotalCost)
	assert.NotNil(t, rows[1].ByCountry)
}

func TestBuildFunnelRatesAndGuard(t *testing.T) {
	w1, w2 := "2025-06-02", "2025-06-09"
	deals := []models.Deal{
		{ID: "1", CreateWeek: w1, LifecycleStage: "mql", Channel: "Organic", Country: "NL"},
		{ID: "2", CreateWeek: w1, LifecycleStage: "sql", Channel: "Organic", Country: "NL"},
		{ID: "3", CreateWeek: w1, CloseWeek: w2, LifecycleStage: "customer", Status: models.StatusWon, Amount: 900, Channel: "Organic", Country: "DE"},
		{ID: "4", CreateWeek: w1, CloseWeek: w2, LifecycleStage: "customer", Status: models.StatusLost, Channel: "Unknown", Country: "DE"},
	}
	rows := BuildFunnel(deals, []string{w1, w2})
	require.Len(t, rows, 2)

	r := rows[0]
	assert.Equal(t, 4, r.MQLs)
	assert.Equal(t, 3, r.SQLs)
	assert.InDelta(t, 75.0, r.MQLToSQL, 0.001)
	assert.Zero(t, r.Won)

	r = rows[1]
	assert.Equal(t, 1, r.Won)
	assert.Equal(t, 1, r.Lost)
	assert.InDelta(t, 900.0, r.WonRevenue, 0.001)
	// Zero MQLs in the close week: the rate is 0, never NaN.
	assert.Zero(t, r.MQLToSQL)

	// Group totals for the create week round-trip to the week totals.
	leads := 0
	for _, g := range rows[0].ByChannel {
		leads += g.Leads
	}
	assert.Equal(t, rows[0].MQLs, leads)
}

func TestBuildStripeGroupRoundTrip(t *testing.T) {
	week := "2025-06-02"
	charges := []models.Charge{
		{Week: week, Amount: 10.10, Currency: "eur", PlanType: models.PlanPrepaid, Product: models.ProductMachineMade, Channel: "Organic", Country: "NL"},
		{Week: week, Amount: 20.25, Currency: "EUR", PlanType: models.PlanSubscription, Product: models.ProductAmberNotes, Channel: "Subscription"},
		{Week: week, Amount: 5.50, Currency: "usd", PlanType: models.PlanPrepaid, Product: models.ProductMachineMade, Channel: "Unknown", Country: "FR"},
	}
	rows := BuildStripe(charges, []string{week})
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, 3, r.Charges)
	assert.InDelta(t, 35.85, r.Revenue, 0.01)

	for name, m := range map[string]map[string]*models.CountRevenue{
		"byPlanType": r.ByPlanType, "byCurrency": r.ByCurrency,
		"byCountry": r.ByCountry, "byProduct": r.ByProduct, "byChannel": r.ByChannel,
	} {
		count, revenue := 0, 0.0
		for _, cr := range m {
			count += cr.Count
			revenue += cr.Revenue
		}
		assert.Equal(t, r.Charges, count, name)
		assert.InDelta(t, r.Revenue, revenue, 0.01, name)
	}
	assert.Equal(t, 2, r.ByCurrency["EUR"].Count)
}

func TestBuildGA4(t *testing.T) {
	week := "2025-06-02"
	forms := []models.FormSubmission{
		{Week: week, FormID: "X", Channel: "Organic", Count: 7},
		{Week: week, FormID: "Y", Channel: "Direct", Count: 3},
	}
	purchases := []models.Purchase{
		{Week: week, TransactionID: "T1", Transactions: 2, Revenue: 199.90},
	}
	rows := BuildGA4(forms, purchases, []string{week})
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].FormSubmissions)
	assert.Equal(t, 7, rows[0].ByChannel["Organic"])
	assert.Equal(t, 2, rows[0].Purchases)
	assert.InDelta(t, 199.90, rows[0].PurchaseRevenue, 0.001)
}

func TestBuildSubs(t *testing.T) {
	w1, w2 := "2025-06-02", "2025-06-09"
	subs := []models.Subscription{
		{ID: "s1", CreatedWeek: w1, MonthlyAmount: 10},
		{ID: "s2", CreatedWeek: w1, CanceledWeek: w2, MonthlyAmount: 25},
		{ID: "s3", CanceledWeek: w2, MonthlyAmount: 5},
	}
	rows := BuildSubs(subs, []string{w1, w2})
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].NewSubs)
	assert.InDelta(t, 35.0, rows[0].NewMRR, 0.001)
	assert.InDelta(t, 35.0, rows[0].NetMRR, 0.001)
	assert.Equal(t, 2, rows[1].CanceledSubs)
	assert.InDelta(t, 30.0, rows[1].ChurnedMRR, 0.001)
	assert.InDelta(t, -30.0, rows[1].NetMRR, 0.001)
}

func TestRoundWeekly(t *testing.T) {
	w := models.Weekly{
		Ads: []models.AdsWeekly{{
			Week: "2025-06-02", TotalCost: 10.005, MMCost: 10.005,
			ByCountry: map[string]float64{"NL": 10.005}, ByProduct: map[string]float64{},
		}},
		Subs: []models.SubsWeekly{{Week: "2025-06-02", NewMRR: 1.0 / 3}},
	}
	RoundWeekly(&w)
	assert.InDelta(t, 10.0, w.Ads[0].TotalCost, 0.011)
	assert.Equal(t, 0.33, w.Subs[0].NewMRR)
}
