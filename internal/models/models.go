package models

// Canonical category values. GA4-sourced channels pass through as-is; these
// constants cover everything the classifiers and enrichment can produce.
const (
	ChannelPaidSearch   = "Paid Search"
	ChannelOrganic      = "Organic"
	ChannelDirect       = "Direct"
	ChannelReferral     = "Referral"
	ChannelEmail        = "Email"
	ChannelSubscription = "Subscription"
	ChannelUnknown      = "Unknown"
	ChannelOther        = "Other"
)

const (
	UserTypeMachineMade = "Machine-Made"
	UserTypeHumanMade   = "Human-Made"
	UserTypeBrand       = "Brand"
	UserTypeOther       = "Other"
)

const (
	PlanPrepaid      = "Prepaid"
	PlanSubscription = "Subscription"
	PlanInvoice      = "Invoice"

	SubtypeLight   = "Light"
	SubtypeHeavy   = "Heavy"
	SubtypeMonthly = "monthly"
	SubtypeYearly  = "yearly"
)

const (
	ProductMachineMade = "Machine-Made"
	ProductHumanMade   = "Human-Made"
	ProductAmberNotes  = "AmberNotes"
	ProductOther       = "Other"
)

const (
	BUTranscription = "Transcription"
	BUMedia         = "Media"
	BUInnovations   = "Innovations"
)

const (
	StatusOpen = "Open"
	StatusWon  = "Won"
	StatusLost = "Lost"
)

// TopUpBatchID marks credit top-ups; top-ups are never attributable purchases.
const TopUpBatchID = "addCredit"

type AdSpendRecord struct {
	Week         string
	Cost         float64
	Clicks       int
	Conversions  int
	Country      string
	Product      string
	UserType     string
	CampaignType string
}

type Deal struct {
	ID                 string
	CreateWeek         string
	CloseWeek          string
	LifecycleStage     string
	Status             string
	Amount             float64
	Product            string
	Country            string
	FormID             string
	OwnerName          string
	TranscriptionStyle string
	AdditionalOptions  string
	Channel            string // set by enrichment, never empty afterwards
}

// Charge keeps its raw legacy fields (Metadata, Description, JobType) so
// normalization can derive the canonical plan/country/product fields once;
// aggregation reads canonical fields only.
type Charge struct {
	ID                string
	Week              string
	Amount            float64
	Currency          string
	PlanType          string
	PlanSubtype       string
	Country           string
	Product           string
	PaymentIdentifier string
	UploadBatchID     string
	Channel           string // set by enrichment
	Campaign          string // set by enrichment

	Metadata    map[string]string
	Description string
	JobType     string
}

type FormSubmission struct {
	Week    string
	FormID  string
	Channel string
	Country string
	Product string
	Count   int
}

type Purchase struct {
	Week          string
	TransactionID string
	Channel       string
	Campaign      string
	Transactions  int
	Revenue       float64
}

type Subscription struct {
	ID            string
	CreatedWeek   string
	CanceledWeek  string
	PlanType      string
	Status        string
	MonthlyAmount float64

	UnitAmount    float64
	Interval      string
	IntervalCount int
}

type Attribution struct {
	Channel  string
	Campaign string
}

type SubSnapshot struct {
	ActiveSubscriptions int     `json:"activeSubscriptions"`
	MRR                 float64 `json:"mrr"`
	ARR                 float64 `json:"arr"`
}

// Dataset is the full in-memory input set for one pipeline run.
type Dataset struct {
	Ads           []AdSpendRecord
	Deals         []Deal
	Forms         []FormSubmission
	Purchases     []Purchase
	Charges       []Charge
	Subscriptions []Subscription
	SubSnapshot   SubSnapshot
}
