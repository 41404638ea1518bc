package segment

import (
	"math"

	"github.com/ambernotes/revops-etl/internal/models"
)

type predicate func(models.Charge) bool

// The segment table is a closed, hand-enumerated combination set feeding the
// dashboard's cascading filters. Structurally impossible combinations
// (Human-Made has no subtype drill-down) are intentionally absent; adding a
// filter dimension means extending this list, not a rule engine.
var segments = []struct {
	name string
	pred predicate
}{
	{"all", func(models.Charge) bool { return true }},

	{"machineMade", product(models.ProductMachineMade)},
	{"machineMadePrepaid", and(product(models.ProductMachineMade), plan(models.PlanPrepaid))},
	{"machineMadePrepaidLight", and(product(models.ProductMachineMade), plan(models.PlanPrepaid), subtype(models.SubtypeLight))},
	{"machineMadePrepaidHeavy", and(product(models.ProductMachineMade), plan(models.PlanPrepaid), subtype(models.SubtypeHeavy))},
	{"machineMadeSubscription", and(product(models.ProductMachineMade), plan(models.PlanSubscription))},
	{"machineMadeSubscriptionMonthly", and(product(models.ProductMachineMade), plan(models.PlanSubscription), subtype(models.SubtypeMonthly))},
	{"machineMadeSubscriptionYearly", and(product(models.ProductMachineMade), plan(models.PlanSubscription), subtype(models.SubtypeYearly))},
	{"machineMadeInvoice", and(product(models.ProductMachineMade), plan(models.PlanInvoice))},

	{"humanMade", product(models.ProductHumanMade)},
	{"humanMadePrepaid", and(product(models.ProductHumanMade), plan(models.PlanPrepaid))},
	{"humanMadeInvoice", and(product(models.ProductHumanMade), plan(models.PlanInvoice))},

	{"amberNotes", product(models.ProductAmberNotes)},
	{"amberNotesSubscription", and(product(models.ProductAmberNotes), plan(models.PlanSubscription))},
	{"amberNotesSubscriptionMonthly", and(product(models.ProductAmberNotes), plan(models.PlanSubscription), subtype(models.SubtypeMonthly))},
	{"amberNotesSubscriptionYearly", and(product(models.ProductAmberNotes), plan(models.PlanSubscription), subtype(models.SubtypeYearly))},
}

// Crunch computes the {count, revenue} subtotal for every enumerated segment.
func Crunch(charges []models.Charge) map[string]models.CountRevenue {
	out := make(map[string]models.CountRevenue, len(segments))
	for _, s := range segments {
		var cr models.CountRevenue
		for _, c := range charges {
			if s.pred(c) {
				cr.Count++
				cr.Revenue += c.Amount
			}
		}
		cr.Revenue = math.Round(cr.Revenue*100) / 100
		out[s.name] = cr
	}
	return out
}

func product(p string) predicate {
	return func(c models.Charge) bool { return c.Product == p }
}

func plan(p string) predicate {
	return func(c models.Charge) bool { return c.PlanType == p }
}

func subtype(s string) predicate {
	return func(c models.Charge) bool { return c.PlanSubtype == s }
}

func and(preds ...predicate) predicate {
	return func(c models.Charge) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}
