package enrich

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ambernotes/revops-etl/internal/models"
)

var (
	countryKeyRe = regexp.MustCompile(`(?i)^country`)
	subRe        = regexp.MustCompile(`(?i)subscription`)
	invoiceRe    = regexp.MustCompile(`(?i)invoice`)
	yearlyRe     = regexp.MustCompile(`(?i)year|annual`)
	monthlyRe    = regexp.MustCompile(`(?i)month`)
	heavyRe      = regexp.MustCompile(`(?i)heavy|perfect`)
)

// AttributeDeals sets every deal's channel from the form→channel map.
// A deal without a formId, or without a map hit, gets the Unknown sentinel so
// unattributed deals stay visible in the aggregates.
func AttributeDeals(deals []models.Deal, formChannels map[string]string) {
	for i := range deals {
		d := &deals[i]
		if d.FormID != "" {
			if ch, ok := formChannels[d.FormID]; ok && ch != "" {
				d.Channel = ch
				continue
			}
		}
		d.Channel = models.ChannelUnknown
	}
}

// NormalizeCharge resolves a legacy metadata-shaped charge into the canonical
// shape. A populated PlanType marks an already-normalized record and
// short-circuits: running this twice is a no-op.
func NormalizeCharge(c *models.Charge) {
	if c.PlanType != "" {
		return
	}

	if c.Country == "" {
		c.Country = metadataCountry(c.Metadata)
	}
	if c.Product == "" {
		c.Product = legacyProduct(c)
	}
	c.PlanType, c.PlanSubtype = legacyPlan(c.Description)

	if c.PaymentIdentifier == "" {
		c.PaymentIdentifier = firstMeta(c.Metadata, "paymentIdentifier", "payment_id", "chargeId")
	}
	if c.UploadBatchID == "" {
		c.UploadBatchID = firstMeta(c.Metadata, "uploadBatchId", "upload_batch_id")
	}
}

// AttributeCharge matches the charge's identifiers against the transaction
// lookup, paymentIdentifier first. The addCredit batch id is a top-up marker,
// not a trackable purchase, and never matches even when it exists as a key.
func AttributeCharge(c *models.Charge, txns map[string]models.Attribution) {
	if c.PaymentIdentifier != "" {
		if a, ok := txns[c.PaymentIdentifier]; ok {
			c.Channel, c.Campaign = a.Channel, a.Campaign
			return
		}
	}
	if c.UploadBatchID != "" && c.UploadBatchID != models.TopUpBatchID {
		if a, ok := txns[c.UploadBatchID]; ok {
			c.Channel, c.Campaign = a.Channel, a.Campaign
			return
		}
	}
	if c.PlanType == models.PlanSubscription {
		c.Channel = models.ChannelSubscription
	} else {
		c.Channel = models.ChannelUnknown
	}
	c.Campaign = ""
}

// metadataCountry reads the first country-like metadata key in sorted key
// order, so records carrying several matching keys normalize the same way on
// every run.
func metadataCountry(meta map[string]string) string {
	keys := make([]string, 0, 1)
	for k, v := range meta {
		if countryKeyRe.MatchString(k) && strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return strings.TrimSpace(meta[keys[0]])
}

func legacyProduct(c *models.Charge) string {
	if strings.Contains(strings.ToLower(c.Description), "ambernotes") {
		return models.ProductAmberNotes
	}
	if strings.EqualFold(strings.TrimSpace(c.JobType), "human") {
		return models.ProductHumanMade
	}
	return models.ProductMachineMade
}

func legacyPlan(description string) (planType, subtype string) {
	switch {
	case subRe.MatchString(description):
		planType = models.PlanSubscription
		if yearlyRe.MatchString(description) {
			subtype = models.SubtypeYearly
		} else if monthlyRe.MatchString(description) {
			subtype = models.SubtypeMonthly
		}
	case invoiceRe.MatchString(description):
		planType = models.PlanInvoice
	default:
		planType = models.PlanPrepaid
		if heavyRe.MatchString(description) {
			subtype = models.SubtypeHeavy
		} else {
			subtype = models.SubtypeLight
		}
	}
	return planType, subtype
}

func firstMeta(meta map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(meta[k]); v != "" {
			return v
		}
	}
	return ""
}
