// Package pipeline runs the single linear pass: load snapshots, build the
// lookups, enrich records, derive the week set, aggregate, and assemble the
// dashboard document.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/ambernotes/revops-etl/internal/aggregate"
	"github.com/ambernotes/revops-etl/internal/enrich"
	"github.com/ambernotes/revops-etl/internal/lookup"
	"github.com/ambernotes/revops-etl/internal/models"
	"github.com/ambernotes/revops-etl/internal/segment"
	"github.com/ambernotes/revops-etl/internal/timeutil"
)

type Source interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

type Pipeline struct {
	src Source
	log *slog.Logger
	now func() time.Time
}

func New(src Source, log *slog.Logger) *Pipeline {
	return &Pipeline{src: src, log: log, now: time.Now}
}

// Run executes one full pass and returns the assembled document.
func (p *Pipeline) Run(ctx context.Context) (*models.Dashboard, error) {
	start := time.Now()

	ds, err := p.src.Load(ctx)
	if err != nil {
		runsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	doc := p.Build(ds)

	runsTotal.WithLabelValues("ok").Inc()
	runDuration.Observe(time.Since(start).Seconds())
	observeDataset(ds)

	p.log.Info("pipeline run complete",
		slog.Int("weeks", doc.KPIs.ActiveWeeks),
		slog.Int("months", len(doc.Monthly)),
		slog.Duration("elapsed", time.Since(start)))
	return doc, nil
}

// Build transforms an already-loaded dataset. Split from Run so tests can
// feed datasets directly.
func (p *Pipeline) Build(ds *models.Dataset) *models.Dashboard {
	// Lookups are built once, from the full input set, before any enrichment.
	formChannels := lookup.FormChannelMap(ds.Forms)
	txns := lookup.TransactionLookup(ds.Purchases)

	enrich.AttributeDeals(ds.Deals, formChannels)
	for i := range ds.Charges {
		enrich.AttributeCharge(&ds.Charges[i], txns)
	}

	weeks := timeutil.CollectWeeks(
		adWeeks(ds.Ads), dealWeeks(ds.Deals), formWeeks(ds.Forms),
		purchaseWeeks(ds.Purchases), chargeWeeks(ds.Charges), subWeeks(ds.Subscriptions))

	weekly := models.Weekly{
		Ads:    aggregate.BuildAds(ds.Ads, weeks),
		Funnel: aggregate.BuildFunnel(ds.Deals, weeks),
		Stripe: aggregate.BuildStripe(ds.Charges, weeks),
		GA4:    aggregate.BuildGA4(ds.Forms, ds.Purchases, weeks),
		Subs:   aggregate.BuildSubs(ds.Subscriptions, weeks),
	}
	monthly := aggregate.BuildMonthly(weekly.Ads, weekly.Funnel, weekly.Stripe, weeks)
	kpis := aggregate.BuildKPIs(weekly.Ads, weekly.Funnel, weekly.Stripe, weeks)
	aggregate.RoundWeekly(&weekly)

	doc := &models.Dashboard{
		UpdatedAt:   p.now().UTC().Format(time.RFC3339),
		KPIs:        kpis,
		SubSnapshot: ds.SubSnapshot,
		Monthly:     monthly,
		Weekly:      weekly,
		Deals:       dealRows(ds.Deals),
		GA4Forms:    formRows(ds.Forms),
		Segments:    segment.Crunch(ds.Charges),
	}
	if len(weeks) > 0 {
		doc.DateRange = models.DateRange{Start: weeks[0], End: weeks[len(weeks)-1]}
	}
	return doc
}

func dealRows(deals []models.Deal) []models.DealRow {
	rows := make([]models.DealRow, 0, len(deals))
	for _, d := range deals {
		rows = append(rows, models.DealRow{
			ID:                 d.ID,
			CreateWeek:         d.CreateWeek,
			CloseWeek:          d.CloseWeek,
			Status:             d.Status,
			LifecycleStage:     d.LifecycleStage,
			Amount:             d.Amount,
			Product:            d.Product,
			Country:            d.Country,
			Channel:            d.Channel,
			Owner:              d.OwnerName,
			TranscriptionStyle: d.TranscriptionStyle,
			AdditionalOptions:  d.AdditionalOptions,
		})
	}
	return rows
}

func formRows(forms []models.FormSubmission) []models.FormRow {
	rows := make([]models.FormRow, 0, len(forms))
	for _, f := range forms {
		rows = append(rows, models.FormRow{
			Week: f.Week, FormID: f.FormID, Channel: f.Channel,
			Country: f.Country, Product: f.Product, Count: f.Count,
		})
	}
	return rows
}

func adWeeks(rs []models.AdSpendRecord) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Week)
	}
	return out
}

func dealWeeks(rs []models.Deal) []string {
	out := make([]string, 0, 2*len(rs))
	for _, r := range rs {
		out = append(out, r.CreateWeek, r.CloseWeek)
	}
	return out
}

func formWeeks(rs []models.FormSubmission) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Week)
	}
	return out
}

func purchaseWeeks(rs []models.Purchase) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Week)
	}
	return out
}

func chargeWeeks(rs []models.Charge) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Week)
	}
	return out
}

func subWeeks(rs []models.Subscription) []string {
	out := make([]string, 0, 2*len(rs))
	for _, r := range rs {
		out = append(out, r.CreatedWeek, r.CanceledWeek)
	}
	return out
}
