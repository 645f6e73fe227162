// Package catalog defines the subscription plans offered on the pricing page
// and at checkout.
package catalog

import (
	"net/url"
	"strings"
)

// CurrencyUSD is the ISO code every plan is billed in.
const CurrencyUSD = "USD"

// Plan is one subscription tier.
type Plan struct {
	ID           string
	Name         string
	PriceMonthly int64
	Currency     string
	Description  string
	Features     []string
	MostPopular  bool
}

// AmountMinor returns the monthly price in minor currency units.
func (p Plan) AmountMinor() int64 {
	return p.PriceMonthly * 100
}

// CheckoutPath returns the checkout URL that preselects this plan.
func (p Plan) CheckoutPath() string {
	return "/checkout?plan=" + url.QueryEscape(p.ID)
}

// ItemReference is the line-item reference sent to the payment provider.
func (p Plan) ItemReference() string {
	return "PLAN-" + p.ID
}

var tiers = []Plan{
	{
		ID:           "starter",
		Name:         "Starter",
		PriceMonthly: 29,
		Currency:     CurrencyUSD,
		Description:  "Perfect for small creators just getting started.",
		Features: []string{
			"Up to 100 customers",
			"Accept credit card payments",
			"Basic analytics",
			"Simple customer management",
			"Email support",
		},
	},
	{
		ID:           "growth",
		Name:         "Growth",
		PriceMonthly: 79,
		Currency:     CurrencyUSD,
		Description:  "Ideal for growing businesses with more customers.",
		Features: []string{
			"Unlimited customers",
			"Advanced analytics dashboard",
			"Custom checkout experiences",
			"Marketing tools and automations",
			"Priority email & chat support",
			"Multiple team members",
		},
		MostPopular: true,
	},
	{
		ID:           "enterprise",
		Name:         "Enterprise",
		PriceMonthly: 199,
		Currency:     CurrencyUSD,
		Description:  "Dedicated support and infrastructure for your company.",
		Features: []string{
			"Unlimited everything",
			"Advanced security features",
			"Dedicated account manager",
			"White-labeling options",
			"Custom integrations",
			"Phone, email, and chat support",
			"SLA agreement",
		},
	},
}

// Plans returns every tier in display order. The result is a deep copy.
func Plans() []Plan {
	out := make([]Plan, len(tiers))
	for i, plan := range tiers {
		out[i] = plan.clone()
	}
	return out
}

// Lookup finds a plan by id.
func Lookup(id string) (Plan, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, plan := range tiers {
		if plan.ID == id {
			return plan.clone(), true
		}
	}
	return Plan{}, false
}

// Resolve returns the plan for id, falling back to the first tier.
func Resolve(id string) Plan {
	if plan, ok := Lookup(id); ok {
		return plan
	}
	return tiers[0].clone()
}

func (p Plan) clone() Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}
