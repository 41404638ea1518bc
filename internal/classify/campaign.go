package classify

import (
	"strings"

	"github.com/ambernotes/revops-etl/internal/models"
)

// CampaignInfo is the structured result of parsing an ads campaign name.
type CampaignInfo struct {
	Country      string
	Product      string
	UserType     string
	CampaignType string
}

var productSuffixes = []string{"-hq", "-lq", "-light", "-heavy"}

// ParseCampaignName is a best-effort parse over the semi-fixed campaign naming
// convention, e.g. "NL_Search_Light_[Subtitles-HQ]_Exact". Malformed names
// degrade to Other/empty rather than failing.
func ParseCampaignName(name string) CampaignInfo {
	info := CampaignInfo{UserType: models.UserTypeOther}
	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) >= 2 {
		info.Country = strings.ToUpper(string(runes[:2]))
	}

	lower := strings.ToLower(name)
	if strings.Contains(lower, "brand") {
		// Brand campaigns carry no product/weight tokens.
		info.UserType = models.UserTypeBrand
		info.CampaignType = "Brand"
		return info
	}

	if strings.Contains(lower, "light") {
		info.UserType = models.UserTypeMachineMade
		info.CampaignType = "Light"
	} else if strings.Contains(lower, "heavy") {
		info.UserType = models.UserTypeHumanMade
		info.CampaignType = "Heavy"
	}

	info.Product = extractProduct(lower)
	return info
}

// extractProduct pulls the token between the bracket delimiters and strips
// known quality/weight suffixes and trailing separators.
func extractProduct(lower string) string {
	open := strings.Index(lower, "[")
	if open < 0 {
		return ""
	}
	end := strings.Index(lower[open:], "]")
	if end < 0 {
		return ""
	}
	token := strings.TrimRight(lower[open+1:open+end], "-_ ")
	for _, suf := range productSuffixes {
		token = strings.TrimSuffix(token, suf)
	}
	token = strings.TrimRight(token, "-_ ")
	if token == "" {
		return ""
	}
	return strings.ToUpper(token[:1]) + token[1:]
}
