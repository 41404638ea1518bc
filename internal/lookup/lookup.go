package lookup

import "github.com/ambernotes/revops-etl/internal/models"

// FormChannelMap builds formId→channel from form submission tallies. For each
// form the channel with the highest submission count wins; equal tallies are
// broken by the lexicographically smaller channel name so the result does not
// depend on input ordering.
func FormChannelMap(forms []models.FormSubmission) map[string]string {
	tallies := make(map[string]map[string]int)
	for _, f := range forms {
		if f.FormID == "" {
			continue
		}
		t, ok := tallies[f.FormID]
		if !ok {
			t = make(map[string]int)
			tallies[f.FormID] = t
		}
		t[f.Channel] += f.Count
	}

	out := make(map[string]string, len(tallies))
	for formID, t := range tallies {
		best, bestCount := "", -1
		for ch, n := range t {
			if n > bestCount || (n == bestCount && ch < best) {
				best, bestCount = ch, n
			}
		}
		out[formID] = best
	}
	return out
}

// TransactionLookup builds transactionId→attribution from purchase events.
// Duplicate transaction ids are last-write-wins; a purchase event is assumed
// unique per transaction.
func TransactionLookup(purchases []models.Purchase) map[string]models.Attribution {
	out := make(map[string]models.Attribution, len(purchases))
	for _, p := range purchases {
		if p.TransactionID == "" {
			continue
		}
		out[p.TransactionID] = models.Attribution{Channel: p.Channel, Campaign: p.Campaign}
	}
	return out
}
