package pipeline

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambernotes/revops-etl/internal/models"
)

type fakeSource struct{ ds *models.Dataset }

func (f fakeSource) Load(context.Context) (*models.Dataset, error) { return f.ds, nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testDataset() *models.Dataset {
	return &models.Dataset{
		Ads: []models.AdSpendRecord{
			{Week: "2025-06-02", Cost: 100},
			{Week: "2025-06-02", Cost: 200, UserType: models.UserTypeMachineMade},
			{Week: "2025-06-02", Cost: 50, UserType: models.UserTypeHumanMade},
		},
		Deals: []models.Deal{
			{ID: "d1", CreateWeek: "2025-06-02", LifecycleStage: "sql", Status: models.StatusOpen, FormID: "X", Country: "NL"},
			{ID: "d2", CreateWeek: "2025-05-26", CloseWeek: "2025-06-09", LifecycleStage: "customer", Status: models.StatusWon, Amount: 1500, Country: "DE"},
		},
		Forms: []models.FormSubmission{
			{Week: "2025-06-02", FormID: "X", Channel: "Organic", Count: 5},
			{Week: "2025-06-02", FormID: "X", Channel: "Paid Search", Count: 2},
		},
		Purchases: []models.Purchase{
			{Week: "2025-06-02", TransactionID: "T1", Channel: "Paid Search", Campaign: "nl-light", Transactions: 1, Revenue: 50},
		},
		Charges: []models.Charge{
			{ID: "c1", Week: "2025-06-02", Amount: 50, Currency: "EUR", PlanType: models.PlanPrepaid, PlanSubtype: models.SubtypeLight, Product: models.ProductMachineMade, PaymentIdentifier: "T1"},
			{ID: "c2", Week: "2025-06-16", Amount: 9, Currency: "EUR", PlanType: models.PlanSubscription, PlanSubtype: models.SubtypeMonthly, Product: models.ProductAmberNotes, UploadBatchID: models.TopUpBatchID},
		},
		Subscriptions: []models.Subscription{
			{ID: "s1", CreatedWeek: "2025-06-02", MonthlyAmount: 10},
		},
		SubSnapshot: models.SubSnapshot{ActiveSubscriptions: 3, MRR: 30, ARR: 360},
	}
}

func TestRunAssemblesDocument(t *testing.T) {
	p := New(fakeSource{testDataset()}, testLogger())
	doc, err := p.Run(context.Background())
	require.NoError(t, err)

	// Week union across all sources, sorted, distinct, Monday keys.
	weeks := []string{}
	for _, r := range doc.Weekly.Ads {
		weeks = append(weeks, r.Week)
	}
	assert.Equal(t, []string{"2025-05-26", "2025-06-02", "2025-06-09", "2025-06-16"}, weeks)
	assert.Equal(t, "2025-05-26", doc.DateRange.Start)
	assert.Equal(t, "2025-06-16", doc.DateRange.End)
	assert.NotEmpty(t, doc.UpdatedAt)

	// Majority vote: form X is Organic (5 vs 2), so d1 is enriched to Organic.
	require.Len(t, doc.Deals, 2)
	assert.Equal(t, "Organic", doc.Deals[0].Channel)
	assert.Equal(t, models.ChannelUnknown, doc.Deals[1].Channel)

	// Charge c1 matched purchase T1; c2's addCredit batch id never matches.
	stripeByWeek := map[string]models.StripeWeekly{}
	for _, r := range doc.Weekly.Stripe {
		stripeByWeek[r.Week] = r
	}
	assert.Equal(t, 1, stripeByWeek["2025-06-02"].ByChannel["Paid Search"].Count)
	assert.Equal(t, 1, stripeByWeek["2025-06-16"].ByChannel[models.ChannelSubscription].Count)

	// Ads scenario: 100 untyped + 200 machine-made + 50 human-made.
	adsRow := doc.Weekly.Ads[1]
	assert.Equal(t, "2025-06-02", adsRow.Week)
	assert.InDelta(t, 350.0, adsRow.TotalCost, 0.001)
	assert.InDelta(t, 200.0, adsRow.MMCost, 0.001)
	assert.InDelta(t, 50.0, adsRow.HMCost, 0.001)

	assert.Equal(t, models.SubSnapshot{ActiveSubscriptions: 3, MRR: 30, ARR: 360}, doc.SubSnapshot)
	assert.Len(t, doc.GA4Forms, 2)
	assert.Equal(t, 2, doc.Segments["all"].Count)
	assert.Equal(t, 4, doc.KPIs.ActiveWeeks)
	assert.Len(t, doc.Monthly, 2)
}

func TestBuildIsRepeatable(t *testing.T) {
	p := New(fakeSource{}, testLogger())
	a := p.Build(testDataset())
	b := p.Build(testDataset())
	// Identical inputs yield identical aggregates; only updatedAt may differ.
	b.UpdatedAt = a.UpdatedAt
	assert.Equal(t, a, b)
}

func TestBuildEmptyDataset(t *testing.T) {
	p := New(fakeSource{}, testLogger())
	doc := p.Build(&models.Dataset{})
	assert.Empty(t, doc.Weekly.Ads)
	assert.Zero(t, doc.KPIs.ActiveWeeks)
	assert.Zero(t, doc.DateRange)
	assert.Equal(t, 0, doc.Segments["all"].Count)
	assert.NotNil(t, doc.Deals)
	assert.NotNil(t, doc.GA4Forms)
}
