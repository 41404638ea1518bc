package models

// Output document types. Field names and nesting are the contract with the
// dashboard client and must not change between runs.

type CountRevenue struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type FunnelGroup struct {
	Leads      int     `json:"leads"`
	SQLs       int     `json:"sqls"`
	Won        int     `json:"won"`
	WonRevenue float64 `json:"wonRevenue"`
}

type AdsWeekly struct {
	Week        string             `json:"week"`
	TotalCost   float64            `json:"totalCost"`
	MMCost      float64            `json:"mmCost"`
	HMCost      float64            `json:"hmCost"`
	BrandCost   float64            `json:"brandCost"`
	OtherCost   float64            `json:"otherCost"`
	Clicks      int                `json:"clicks"`
	Conversions int                `json:"conversions"`
	ByCountry   map[string]float64 `json:"byCountry"`
	ByProduct   map[string]float64 `json:"byProduct"`
}

type FunnelWeekly struct {
	Week           string                  `json:"week"`
	MQLs           int                     `json:"mqls"`
	SQLs           int                     `json:"sqls"`
	Won            int                     `json:"won"`
	Lost           int                     `json:"lost"`
	WonRevenue     float64                 `json:"wonRevenue"`
	MQLToSQL       float64                 `json:"mqlToSql"`
	SQLToWon       float64                 `json:"sqlToWon"`
	ByCountry      map[string]*FunnelGroup `json:"byCountry"`
	ByChannel      map[string]*FunnelGroup `json:"byChannel"`
	ByBusinessUnit map[string]*FunnelGroup `json:"byBusinessUnit"`
}

type StripeWeekly struct {
	Week       string                   `json:"week"`
	Charges    int                      `json:"charges"`
	Revenue    float64                  `json:"revenue"`
	ByPlanType map[string]*CountRevenue `json:"byPlanType"`
	ByCurrency map[string]*CountRevenue `json:"byCurrency"`
	ByCountry  map[string]*CountRevenue `json:"byCountry"`
	ByProduct  map[string]*CountRevenue `json:"byProduct"`
	ByChannel  map[string]*CountRevenue `json:"byChannel"`
}

type GA4Weekly struct {
	Week            string         `json:"week"`
	FormSubmissions int            `json:"formSubmissions"`
	ByChannel       map[string]int `json:"byChannel"`
	Purchases       int            `json:"purchases"`
	PurchaseRevenue float64        `json:"purchaseRevenue"`
}

type SubsWeekly struct {
	Week         string  `json:"week"`
	NewSubs      int     `json:"newSubs"`
	CanceledSubs int     `json:"canceledSubs"`
	NewMRR       float64 `json:"newMrr"`
	ChurnedMRR   float64 `json:"churnedMrr"`
	NetMRR       float64 `json:"netMrr"`
}

type MonthlyRow struct {
	Month         string  `json:"month"`
	AdsCost       float64 `json:"adsCost"`
	MQLs          int     `json:"mqls"`
	SQLs          int     `json:"sqls"`
	Won           int     `json:"won"`
	WonRevenue    float64 `json:"wonRevenue"`
	StripeRevenue float64 `json:"stripeRevenue"`
	TotalRevenue  float64 `json:"totalRevenue"`
	Charges       int     `json:"charges"`
	ROAS          float64 `json:"roas"`
	AOV           float64 `json:"aov"`
	MQLToSQL      float64 `json:"mqlToSql"`
	SQLToWon      float64 `json:"sqlToWon"`
}

type KPIs struct {
	TotalAdsCost       float64 `json:"totalAdsCost"`
	TotalMQLs          int     `json:"totalMqls"`
	TotalSQLs          int     `json:"totalSqls"`
	TotalWon           int     `json:"totalWon"`
	TotalWonRevenue    float64 `json:"totalWonRevenue"`
	TotalStripeRevenue float64 `json:"totalStripeRevenue"`
	TotalRevenue       float64 `json:"totalRevenue"`
	ROAS               float64 `json:"roas"`
	ActiveWeeks        int     `json:"activeWeeks"`
}

// DealRow is the flattened per-deal row for client-side filtering.
type DealRow struct {
	ID                 string  `json:"id"`
	CreateWeek         string  `json:"createWeek"`
	CloseWeek          string  `json:"closeWeek"`
	Status             string  `json:"status"`
	LifecycleStage     string  `json:"lifecycleStage"`
	Amount             float64 `json:"amount"`
	Product            string  `json:"product"`
	Country            string  `json:"country"`
	Channel            string  `json:"channel"`
	Owner              string  `json:"owner"`
	TranscriptionStyle string  `json:"transcriptionStyle"`
	AdditionalOptions  string  `json:"additionalOptions"`
}

type FormRow struct {
	Week    string `json:"week"`
	FormID  string `json:"formId"`
	Channel string `json:"channel"`
	Country string `json:"country"`
	Product string `json:"product"`
	Count   int    `json:"count"`
}

type Weekly struct {
	Ads    []AdsWeekly    `json:"ads"`
	Funnel []FunnelWeekly `json:"funnel"`
	Stripe []StripeWeekly `json:"stripe"`
	GA4    []GA4Weekly    `json:"ga4"`
	Subs   []SubsWeekly   `json:"subs"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Dashboard struct {
	UpdatedAt   string                  `json:"updatedAt"`
	DateRange   DateRange               `json:"dateRange"`
	KPIs        KPIs                    `json:"kpis"`
	SubSnapshot SubSnapshot             `json:"subSnapshot"`
	Monthly     []MonthlyRow            `json:"monthly"`
	Weekly      Weekly                  `json:"weekly"`
	Deals       []DealRow               `json:"deals"`
	GA4Forms    []FormRow               `json:"ga4Forms"`
	Segments    map[string]CountRevenue `json:"segments"`
}
