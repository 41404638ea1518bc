// Package loader reads the five input snapshots, resolves the legacy record
// shapes into the canonical models, and normalizes week keys. A missing
// source is an empty dataset plus a warning; a present-but-invalid JSON
// snapshot fails the run loudly.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ambernotes/revops-etl/internal/classify"
	"github.com/ambernotes/revops-etl/internal/config"
	"github.com/ambernotes/revops-etl/internal/enrich"
	"github.com/ambernotes/revops-etl/internal/models"
	"github.com/ambernotes/revops-etl/internal/timeutil"
)

type Loader struct {
	c   HTTPClient
	log *slog.Logger
	cfg config.Config
}

func New(c HTTPClient, log *slog.Logger, cfg config.Config) *Loader {
	return &Loader{c: c, log: log, cfg: cfg}
}

type rawAd struct {
	Week         string  `json:"week"`
	Cost         float64 `json:"cost"`
	Clicks       int     `json:"clicks"`
	Conversions  int     `json:"conversions"`
	Country      string  `json:"country"`
	Product      string  `json:"product"`
	UserType     string  `json:"userType"`
	CampaignType string  `json:"campaignType"`
	CampaignName string  `json:"campaignName"`
}

type rawDeal struct {
	ID                 string  `json:"id"`
	CreateWeek         string  `json:"createWeek"`
	CloseWeek          string  `json:"closeWeek"`
	LifecycleStage     string  `json:"lifecycleStage"`
	Status             string  `json:"status"`
	Amount             float64 `json:"amount"`
	Product            string  `json:"product"`
	Country            string  `json:"country"`
	FormID             string  `json:"formId"`
	OwnerName          string  `json:"ownerName"`
	TranscriptionStyle string  `json:"transcriptionStyle"`
	AdditionalOptions  string  `json:"additionalOptions"`
}

type rawForm struct {
	Week    string `json:"week"`
	FormID  string `json:"formId"`
	Channel string `json:"channel"`
	Source  string `json:"source"`
	Medium  string `json:"medium"`
	Country string `json:"country"`
	Product string `json:"product"`
	Count   int    `json:"count"`
}

type rawPurchase struct {
	Week          string  `json:"week"`
	TransactionID string  `json:"transactionId"`
	Channel       string  `json:"channel"`
	Campaign      string  `json:"campaign"`
	Transactions  int     `json:"transactions"`
	Revenue       float64 `json:"revenue"`
}

type rawGA4 struct {
	FormSubmissions []rawForm     `json:"formSubmissions"`
	Purchases       []rawPurchase `json:"purchases"`
}

type rawCharge struct {
	ID                string            `json:"id"`
	Week              string            `json:"week"`
	Amount            float64           `json:"amount"`
	Currency          string            `json:"currency"`
	PlanType          string            `json:"planType"`
	PlanSubtype       string            `json:"planSubtype"`
	Country           string            `json:"country"`
	Product           string            `json:"product"`
	PaymentIdentifier string            `json:"paymentIdentifier"`
	UploadBatchID     string            `json:"uploadBatchId"`
	Metadata          map[string]string `json:"metadata"`
	Description       string            `json:"description"`
	JobType           string            `json:"jobType"`
}

type rawSub struct {
	ID            string  `json:"id"`
	CreatedWeek   string  `json:"createdWeek"`
	CanceledWeek  string  `json:"canceledWeek"`
	PlanType      string  `json:"planType"`
	Status        string  `json:"status"`
	MonthlyAmount float64 `json:"monthlyAmount"`
	UnitAmount    float64 `json:"unitAmount"`
	Interval      string  `json:"interval"`
	IntervalCount int     `json:"intervalCount"`
}

type rawSubs struct {
	Snapshot      models.SubSnapshot `json:"snapshot"`
	Subscriptions []rawSub           `json:"subscriptions"`
}

// Load reads every source and returns the canonical dataset.
func (l *Loader) Load(ctx context.Context) (*models.Dataset, error) {
	ds := &models.Dataset{}

	var ads []rawAd
	if err := l.source(ctx, "ads", l.cfg.AdsURL, "ads.json", &ads); err != nil {
		return nil, err
	}
	for _, r := range ads {
		ds.Ads = append(ds.Ads, normalizeAd(r))
	}

	var deals []rawDeal
	if err := l.source(ctx, "deals", l.cfg.CrmURL, "deals.json", &deals); err != nil {
		return nil, err
	}
	for _, r := range deals {
		ds.Deals = append(ds.Deals, models.Deal{
			ID:                 r.ID,
			CreateWeek:         timeutil.WeekKey(r.CreateWeek),
			CloseWeek:          timeutil.WeekKey(r.CloseWeek),
			LifecycleStage:     strings.ToLower(strings.TrimSpace(r.LifecycleStage)),
			Status:             strings.TrimSpace(r.Status),
			Amount:             r.Amount,
			Product:            strings.TrimSpace(r.Product),
			Country:            strings.TrimSpace(r.Country),
			FormID:             strings.TrimSpace(r.FormID),
			OwnerName:          strings.TrimSpace(r.OwnerName),
			TranscriptionStyle: strings.TrimSpace(r.TranscriptionStyle),
			AdditionalOptions:  strings.TrimSpace(r.AdditionalOptions),
		})
	}

	ga4, err := l.loadGA4(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range ga4.FormSubmissions {
		ch := strings.TrimSpace(r.Channel)
		if ch == "" {
			ch = classify.Channel(r.Source, r.Medium)
		}
		ds.Forms = append(ds.Forms, models.FormSubmission{
			Week:    timeutil.WeekKey(r.Week),
			FormID:  strings.TrimSpace(r.FormID),
			Channel: ch,
			Country: strings.TrimSpace(r.Country),
			Product: strings.TrimSpace(r.Product),
			Count:   r.Count,
		})
	}
	for _, r := range ga4.Purchases {
		ds.Purchases = append(ds.Purchases, models.Purchase{
			Week:          timeutil.WeekKey(r.Week),
			TransactionID: strings.TrimSpace(r.TransactionID),
			Channel:       strings.TrimSpace(r.Channel),
			Campaign:      strings.TrimSpace(r.Campaign),
			Transactions:  r.Transactions,
			Revenue:       r.Revenue,
		})
	}

	var charges []rawCharge
	if err := l.source(ctx, "charges", l.cfg.ChargesURL, "charges.json", &charges); err != nil {
		return nil, err
	}
	for _, r := range charges {
		c := models.Charge{
			ID:                r.ID,
			Week:              timeutil.WeekKey(r.Week),
			Amount:            r.Amount,
			Currency:          strings.TrimSpace(r.Currency),
			PlanType:          strings.TrimSpace(r.PlanType),
			PlanSubtype:       strings.TrimSpace(r.PlanSubtype),
			Country:           strings.TrimSpace(r.Country),
			Product:           strings.TrimSpace(r.Product),
			PaymentIdentifier: strings.TrimSpace(r.PaymentIdentifier),
			UploadBatchID:     strings.TrimSpace(r.UploadBatchID),
			Metadata:          r.Metadata,
			Description:       r.Description,
			JobType:           r.JobType,
		}
		enrich.NormalizeCharge(&c)
		ds.Charges = append(ds.Charges, c)
	}

	subs, err := l.loadSubs(ctx)
	if err != nil {
		return nil, err
	}
	ds.SubSnapshot = subs.Snapshot
	for _, r := range subs.Subscriptions {
		s := models.Subscription{
			ID:            r.ID,
			CreatedWeek:   timeutil.WeekKey(r.CreatedWeek),
			CanceledWeek:  timeutil.WeekKey(r.CanceledWeek),
			PlanType:      strings.ToLower(strings.TrimSpace(r.PlanType)),
			Status:        strings.ToLower(strings.TrimSpace(r.Status)),
			MonthlyAmount: r.MonthlyAmount,
			UnitAmount:    r.UnitAmount,
			Interval:      r.Interval,
			IntervalCount: r.IntervalCount,
		}
		enrich.NormalizeMonthlyAmount(&s)
		ds.Subscriptions = append(ds.Subscriptions, s)
	}

	l.log.Info("snapshots loaded",
		slog.Int("ads", len(ds.Ads)), slog.Int("deals", len(ds.Deals)),
		slog.Int("forms", len(ds.Forms)), slog.Int("purchases", len(ds.Purchases)),
		slog.Int("charges", len(ds.Charges)), slog.Int("subs", len(ds.Subscriptions)))
	return ds, nil
}

func normalizeAd(r rawAd) models.AdSpendRecord {
	a := models.AdSpendRecord{
		Week:         timeutil.WeekKey(r.Week),
		Cost:         r.Cost,
		Clicks:       r.Clicks,
		Conversions:  r.Conversions,
		Country:      strings.TrimSpace(r.Country),
		Product:      strings.TrimSpace(r.Product),
		UserType:     strings.TrimSpace(r.UserType),
		CampaignType: strings.TrimSpace(r.CampaignType),
	}
	// Older exports carry only the raw campaign name.
	if r.CampaignName != "" && (a.Country == "" || a.UserType == "") {
		info := classify.ParseCampaignName(r.CampaignName)
		if a.Country == "" {
			a.Country = info.Country
		}
		if a.Product == "" {
			a.Product = info.Product
		}
		if a.UserType == "" {
			a.UserType = info.UserType
		}
		if a.CampaignType == "" {
			a.CampaignType = info.CampaignType
		}
	}
	if a.Product == "" && r.CampaignName != "" {
		a.Product = classify.ProductType(r.CampaignName)
	}
	if a.UserType == "" {
		a.UserType = models.UserTypeOther
	}
	return a
}

// loadGA4 accepts the {formSubmissions, purchases} bundle; a bare array is
// the pre-bundle export shape and is treated as an empty bundle.
func (l *Loader) loadGA4(ctx context.Context) (rawGA4, error) {
	var raw json.RawMessage
	if err := l.source(ctx, "ga4", l.cfg.GA4URL, "ga4.json", &raw); err != nil {
		return rawGA4{}, err
	}
	if len(raw) == 0 {
		return rawGA4{}, nil
	}
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		l.log.Warn("ga4 snapshot is a bare array, treating as empty bundle")
		return rawGA4{}, nil
	}
	var g rawGA4
	if err := json.Unmarshal(raw, &g); err != nil {
		return rawGA4{}, fmt.Errorf("decode ga4 snapshot: %w", err)
	}
	return g, nil
}

// loadSubs accepts {snapshot, subscriptions} or the legacy bare array, which
// carries no snapshot block.
func (l *Loader) loadSubs(ctx context.Context) (rawSubs, error) {
	var raw json.RawMessage
	if err := l.source(ctx, "subscriptions", l.cfg.SubsURL, "subscriptions.json", &raw); err != nil {
		return rawSubs{}, err
	}
	if len(raw) == 0 {
		return rawSubs{}, nil
	}
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		var list []rawSub
		if err := json.Unmarshal(raw, &list); err != nil {
			return rawSubs{}, fmt.Errorf("decode subscriptions snapshot: %w", err)
		}
		return rawSubs{Subscriptions: list}, nil
	}
	var s rawSubs
	if err := json.Unmarshal(raw, &s); err != nil {
		return rawSubs{}, fmt.Errorf("decode subscriptions snapshot: %w", err)
	}
	return s, nil
}

// source fills dst from the configured URL when set, else from the snapshot
// file under DataDir. An absent file leaves dst zero-valued.
func (l *Loader) source(ctx context.Context, name, url, file string, dst any) error {
	if url != "" {
		if err := getJSONWithRetry(ctx, l.c, url, dst); err != nil {
			return fmt.Errorf("fetch %s: %w", name, err)
		}
		return nil
	}
	path := filepath.Join(l.cfg.DataDir, file)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.log.Warn("snapshot missing, using empty dataset", slog.String("source", name), slog.String("path", path))
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
