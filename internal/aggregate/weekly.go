package aggregate

import (
	"strings"

	"github.com/ambernotes/revops-etl/internal/classify"
	"github.com/ambernotes/revops-etl/internal/models"
)

// Weekly builders produce one row per week in the (sorted) week set, so weeks
// without records still appear as zero-valued buckets. Monetary fields stay
// unrounded here; RoundWeekly runs at the output boundary after the monthly
// rollups and KPIs have consumed the exact values.

var sqlStages = map[string]struct{}{
	"sql": {}, "opportunity": {}, "customer": {},
}

func isSQLStage(stage string) bool {
	_, ok := sqlStages[strings.ToLower(strings.TrimSpace(stage))]
	return ok
}

func BuildAds(ads []models.AdSpendRecord, weeks []string) []models.AdsWeekly {
	rows, index := make([]models.AdsWeekly, len(weeks)), make(map[string]int, len(weeks))
	for i, w := range weeks {
		rows[i] = models.AdsWeekly{
			Week:      w,
			ByCountry: map[string]float64{},
			ByProduct: map[string]float64{},
		}
		index[w] = i
	}
	for _, a := range ads {
		i, ok := index[a.Week]
		if !ok {
			continue
		}
		r := &rows[i]
		r.TotalCost += a.Cost
		r.Clicks += a.Clicks
		r.Conversions += a.Conversions
		switch a.UserType {
		case models.UserTypeMachineMade:
			r.MMCost += a.Cost
		case models.UserTypeHumanMade:
			r.HMCost += a.Cost
		case models.UserTypeBrand:
			r.BrandCost += a.Cost
		default:
			r.OtherCost += a.Cost
		}
		r.ByCountry[classify.Geo(a.Country)] += a.Cost
		r.ByProduct[nonEmpty(a.Product, models.ProductOther)] += a.Cost
	}
	return rows
}

func BuildFunnel(deals []models.Deal, weeks []string) []models.FunnelWeekly {
	rows, index := make([]models.FunnelWeekly, len(weeks)), make(map[string]int, len(weeks))
	for i, w := range weeks {
		rows[i] = models.FunnelWeekly{
			Week:           w,
			ByCountry:      map[string]*models.FunnelGroup{},
			ByChannel:      map[string]*models.FunnelGroup{},
			ByBusinessUnit: map[string]*models.FunnelGroup{},
		}
		index[w] = i
	}
	for _, d := range deals {
		geo := classify.Geo(d.Country)
		bu := classify.BusinessUnit(d.Product)
		ch := nonEmpty(d.Channel, models.ChannelUnknown)

		if i, ok := index[d.CreateWeek]; ok {
			r := &rows[i]
			r.MQLs++
			sql := isSQLStage(d.LifecycleStage)
			if sql {
				r.SQLs++
			}
			for _, g := range funnelGroups(r, geo, ch, bu) {
				g.Leads++
				if sql {
					g.SQLs++
				}
			}
		}
		if i, ok := index[d.CloseWeek]; ok && d.CloseWeek != "" {
			r := &rows[i]
			switch d.Status {
			case models.StatusWon:
				r.Won++
				r.WonRevenue += d.Amount
				for _, g := range funnelGroups(r, geo, ch, bu) {
					g.Won++
					g.WonRevenue += d.Amount
				}
			case models.StatusLost:
				r.Lost++
			}
		}
	}
	for i := range rows {
		r := &rows[i]
		r.MQLToSQL = pct(float64(r.SQLs), float64(r.MQLs))
		r.SQLToWon = pct(float64(r.Won), float64(r.SQLs))
	}
	return rows
}

func funnelGroups(r *models.FunnelWeekly, geo, channel, bu string) []*models.FunnelGroup {
	return []*models.FunnelGroup{
		group(r.ByCountry, geo),
		group(r.ByChannel, channel),
		group(r.ByBusinessUnit, bu),
	}
}

func group(m map[string]*models.FunnelGroup, key string) *models.FunnelGroup {
	g, ok := m[key]
	if !ok {
		g = &models.FunnelGroup{}
		m[key] = g
	}
	return g
}

func BuildStripe(charges []models.Charge, weeks []string) []models.StripeWeekly {
	rows, index := make([]models.StripeWeekly, len(weeks)), make(map[string]int, len(weeks))
	for i, w := range weeks {
		rows[i] = models.StripeWeekly{
			Week:       w,
			ByPlanType: map[string]*models.CountRevenue{},
			ByCurrency: map[string]*models.CountRevenue{},
			ByCountry:  map[string]*models.CountRevenue{},
			ByProduct:  map[string]*models.CountRevenue{},
			ByChannel:  map[string]*models.CountRevenue{},
		}
		index[w] = i
	}
	for _, c := range charges {
		i, ok := index[c.Week]
		if !ok {
			continue
		}
		r := &rows[i]
		r.Charges++
		r.Revenue += c.Amount
		for _, cr := range []*models.CountRevenue{
			countRevenue(r.ByPlanType, nonEmpty(c.PlanType, models.PlanPrepaid)),
			countRevenue(r.ByCurrency, currencyKey(c.Currency)),
			countRevenue(r.ByCountry, classify.Geo(c.Country)),
			countRevenue(r.ByProduct, nonEmpty(c.Product, models.ProductOther)),
			countRevenue(r.ByChannel, nonEmpty(c.Channel, models.ChannelUnknown)),
		} {
			cr.Count++
			cr.Revenue += c.Amount
		}
	}
	return rows
}

func countRevenue(m map[string]*models.CountRevenue, key string) *models.CountRevenue {
	cr, ok := m[key]
	if !ok {
		cr = &models.CountRevenue{}
		m[key] = cr
	}
	return cr
}

func BuildGA4(forms []models.FormSubmission, purchases []models.Purchase, weeks []string) []models.GA4Weekly {
	rows, index := make([]models.GA4Weekly, len(weeks)), make(map[string]int, len(weeks))
	for i, w := range weeks {
		rows[i] = models.GA4Weekly{Week: w, ByChannel: map[string]int{}}
		index[w] = i
	}
	for _, f := range forms {
		if i, ok := index[f.Week]; ok {
			rows[i].FormSubmissions += f.Count
			rows[i].ByChannel[nonEmpty(f.Channel, models.ChannelOther)] += f.Count
		}
	}
	for _, p := range purchases {
		if i, ok := index[p.Week]; ok {
			rows[i].Purchases += p.Transactions
			rows[i].PurchaseRevenue += p.Revenue
		}
	}
	return rows
}

func BuildSubs(subs []models.Subscription, weeks []string) []models.SubsWeekly {
	rows, index := make([]models.SubsWeekly, len(weeks)), make(map[string]int, len(weeks))
	for i, w := range weeks {
		rows[i] = models.SubsWeekly{Week: w}
		index[w] = i
	}
	for _, s := range subs {
		if i, ok := index[s.CreatedWeek]; ok && s.CreatedWeek != "" {
			rows[i].NewSubs++
			rows[i].NewMRR += s.MonthlyAmount
		}
		if i, ok := index[s.CanceledWeek]; ok && s.CanceledWeek != "" {
			rows[i].CanceledSubs++
			rows[i].ChurnedMRR += s.MonthlyAmount
		}
	}
	for i := range rows {
		rows[i].NetMRR = rows[i].NewMRR - rows[i].ChurnedMRR
	}
	return rows
}

// RoundWeekly rounds every monetary field to two decimals. It is the last
// step of a run so intermediate sums never compound rounding error.
func RoundWeekly(w *models.Weekly) {
	for i := range w.Ads {
		r := &w.Ads[i]
		r.TotalCost, r.MMCost, r.HMCost = round2(r.TotalCost), round2(r.MMCost), round2(r.HMCost)
		r.BrandCost, r.OtherCost = round2(r.BrandCost), round2(r.OtherCost)
		for k, v := range r.ByCountry {
			r.ByCountry[k] = round2(v)
		}
		for k, v := range r.ByProduct {
			r.ByProduct[k] = round2(v)
		}
	}
	for i := range w.Funnel {
		r := &w.Funnel[i]
		r.WonRevenue = round2(r.WonRevenue)
		for _, m := range []map[string]*models.FunnelGroup{r.ByCountry, r.ByChannel, r.ByBusinessUnit} {
			for _, g := range m {
				g.WonRevenue = round2(g.WonRevenue)
			}
		}
	}
	for i := range w.Stripe {
		r := &w.Stripe[i]
		r.Revenue = round2(r.Revenue)
		for _, m := range []map[string]*models.CountRevenue{r.ByPlanType, r.ByCurrency, r.ByCountry, r.ByProduct, r.ByChannel} {
			for _, cr := range m {
				cr.Revenue = round2(cr.Revenue)
			}
		}
	}
	for i := range w.GA4 {
		w.GA4[i].PurchaseRevenue = round2(w.GA4[i].PurchaseRevenue)
	}
	for i := range w.Subs {
		r := &w.Subs[i]
		r.NewMRR, r.ChurnedMRR, r.NetMRR = round2(r.NewMRR), round2(r.ChurnedMRR), round2(r.NetMRR)
	}
}

func nonEmpty(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func currencyKey(currency string) string {
	c := strings.ToUpper(strings.TrimSpace(currency))
	if c == "" {
		return "Unknown"
	}
	return c
}
