package classify

import (
	"strings"

	"github.com/ambernotes/revops-etl/internal/models"
)

// Static lookup tables, initialized once. Treated as immutable.
var geoAliases = map[string]string{
	"nl": "NL", "netherlands": "NL", "the netherlands": "NL", "nederland": "NL",
	"de": "DE", "germany": "DE", "deutschland": "DE",
	"ch": "CH", "switzerland": "CH", "schweiz": "CH",
	"at": "AT", "austria": "AT", "österreich": "AT",
	"fr": "FR", "france": "FR",
	"it": "IT", "italy": "IT", "italia": "IT",
}

var mediaProducts = map[string]struct{}{
	"subtitles": {}, "captions": {}, "translation": {}, "dubbing": {},
}

var innovationsProducts = map[string]struct{}{
	"ambernotes": {}, "summaries": {}, "insights": {},
}

var (
	amberNotesKeywords  = []string{"ambernotes", "notes"}
	humanMadeKeywords   = []string{"human", "manual", "perfect"}
	machineMadeKeywords = []string{"machine", "auto", "draft", "ai-"}
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Channel maps a GA4 source/medium pair to a canonical channel. Paid-search
// detection takes priority; unmatched pairs go to Other, never empty.
func Channel(source, medium string) string {
	src, med := norm(source), norm(medium)
	switch {
	case strings.Contains(med, "cpc"), strings.Contains(med, "ppc"),
		strings.Contains(med, "paid"), med == "paidsearch":
		return models.ChannelPaidSearch
	case med == "organic":
		return models.ChannelOrganic
	case src == "(direct)", med == "(none)":
		return models.ChannelDirect
	case med == "referral":
		return models.ChannelReferral
	case strings.Contains(src, "email"), strings.Contains(med, "email"):
		return models.ChannelEmail
	default:
		return models.ChannelOther
	}
}

// Geo maps a raw country value to one of the tracked markets, else Other.
func Geo(country string) string {
	if g, ok := geoAliases[norm(country)]; ok {
		return g
	}
	return "Other"
}

// ProductType classifies a campaign name by keyword. More specific categories
// are checked before generic ones: AmberNotes first, then human-made, then
// machine-made.
func ProductType(campaignName string) string {
	name := norm(campaignName)
	for _, kw := range amberNotesKeywords {
		if strings.Contains(name, kw) {
			return models.ProductAmberNotes
		}
	}
	for _, kw := range humanMadeKeywords {
		if strings.Contains(name, kw) {
			return models.ProductHumanMade
		}
	}
	for _, kw := range machineMadeKeywords {
		if strings.Contains(name, kw) {
			return models.ProductMachineMade
		}
	}
	return models.ProductOther
}

// BusinessUnit groups a product into one of the three business units.
func BusinessUnit(product string) string {
	p := norm(product)
	if _, ok := mediaProducts[p]; ok {
		return models.BUMedia
	}
	if _, ok := innovationsProducts[p]; ok {
		return models.BUInnovations
	}
	return models.BUTranscription
}
