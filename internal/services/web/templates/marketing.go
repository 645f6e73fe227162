package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

// PlanCard is a pricing tier prepared for display.
type PlanCard struct {
	ID          string
	Name        string
	PriceLabel  string
	Description string
	Features    []string
	MostPopular bool
	CheckoutURL string
}

// HomeView carries the landing page content.
type HomeView struct {
	Loc   Localizer
	Plans []PlanCard
}

type feature struct {
	title string
	body  string
}

type testimonial struct {
	quote   string
	name    string
	role    string
	company string
	rating  int
}

type legalSection struct {
	heading string
	body    string
}

var features = []feature{
	{title: "Secure payments", body: "Accept cards and local payment methods through a hosted, PCI-compliant checkout."},
	{title: "Subscription management", body: "Recurring billing, upgrades and cancellations handled for you."},
	{title: "Analytics", body: "Understand revenue, churn and customer behavior at a glance."},
	{title: "Customer management", body: "Keep every customer, order and receipt in one place."},
	{title: "Marketing tools", body: "Discounts, automations and email campaigns that convert."},
	{title: "Team collaboration", body: "Invite teammates and control what each of them can access."},
}

var testimonials = []testimonial{
	{
		quote:   "We've been using SaaSify to sell our premium courses for over a year now. The platform is incredibly intuitive and the analytics give us valuable insights into our customers' behavior. Highly recommend!",
		name:    "Emma Rodriguez",
		role:    "Co-founder",
		company: "LearnStack Academy",
		rating:  5,
	},
	{
		quote:   "The subscription management features have saved us countless hours. We used to handle everything manually, but now it's all automated. Customer support is also excellent whenever we have questions.",
		name:    "Michael Chen",
		role:    "CEO",
		company: "CodeMasters Pro",
		rating:  5,
	},
	{
		quote:   "SaaSify has been a game-changer for our digital product business. The payment system is rock-solid, and our customers love the seamless checkout experience. Worth every penny!",
		name:    "Sarah Johnson",
		role:    "Digital Product Manager",
		company: "CreativeAssets",
		rating:  4,
	},
}

var values = []string{
	"Customer Success: Your success is our success. We're committed to helping you grow.",
	"Innovation: We constantly evolve our platform to stay ahead of market trends.",
	"Simplicity: Powerful doesn't have to mean complicated. We focus on usability.",
	"Security: Your data and your customers' data are safe with us.",
}

var termsSections = []legalSection{
	{"1. Introduction", "Welcome to SaaSify. By accessing or using our service, you agree to be bound by these Terms of Service."},
	{"2. User Agreement", "By using our services, you agree to these terms, our Privacy Policy, and any other guidelines or policies we may communicate to you."},
	{"3. Subscriptions and Payments", "Our service operates on a subscription basis. You agree to pay the fees associated with your chosen subscription tier. Payments are processed securely through Checkout.com."},
	{"4. Cancellation and Refunds", "You may cancel your subscription at any time. Refunds are provided in accordance with our refund policy."},
	{"5. Limitation of Liability", `Our service is provided "as is" without warranties of any kind. We are not liable for any damages arising from your use of our service.`},
	{"6. Changes to Terms", "We may update these terms from time to time. Continued use of the service constitutes acceptance of any changes."},
	{"7. Contact Information", "If you have any questions about these Terms, please contact us at support@saasify.com."},
}

var privacySections = []legalSection{
	{"1. Introduction", "At SaaSify, we take your privacy seriously. This Privacy Policy explains how we collect, use, and protect your personal information."},
	{"2. Information We Collect", "We collect information you provide directly to us, such as when you create an account, subscribe to our service, or contact customer support. This may include your name, email address, billing information, and any other information you choose to provide."},
	{"3. How We Use Your Information", "We use your information to provide, maintain, and improve our services, process transactions, send communications, and for other legitimate business purposes."},
	{"4. Payment Processing", "We use Checkout.com to process payments. Your payment information is handled in accordance with Checkout.com's privacy policy and security standards. We do not store your complete payment details on our servers."},
	{"5. Data Security", "We implement appropriate security measures to protect your personal information from unauthorized access, alteration, disclosure, or destruction."},
	{"6. Third-Party Services", "Our service may contain links to third-party websites or services. We are not responsible for the privacy practices of these third parties."},
	{"7. Changes to This Policy", "We may update this Privacy Policy from time to time. We will notify you of any changes by posting the new policy on this page."},
	{"8. Contact Us", "If you have any questions about this Privacy Policy, please contact us at privacy@saasify.com."},
}

// HomePage renders the landing page: hero, features, testimonials and pricing.
func HomePage(view HomeView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("section", "class", "hero")
		h.element("h1", T(view.Loc, "page.home"))
		h.element("p", "Sell courses, memberships and digital downloads with checkout, subscriptions and analytics built in.", "class", "lead")
		h.open("p", "class", "actions")
		h.link(routepath.Pricing, T(view.Loc, "nav.get_started"), "class", "button")
		h.raw(" ")
		h.link(routepath.Features, T(view.Loc, "nav.features"), "class", "button secondary")
		h.close("p")
		h.close("section")
		writeFeatures(h)
		writeTestimonials(h)
		writePricing(h, view.Loc, view.Plans)
		return h.err
	})
}

// PricingPage renders the pricing tiers.
func PricingPage(loc Localizer, plans []PlanCard) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		writePricing(h, loc, plans)
		return h.err
	})
}

// FeaturesPage renders the product feature grid.
func FeaturesPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		writeFeatures(h)
		return h.err
	})
}

// AboutPage renders the company story.
func AboutPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("section", "class", "prose", "id", "about")
		h.element("h1", "About SaaSify")
		h.element("p", "We are on a mission to help creators and businesses sell their digital products with ease.", "class", "lead")
		h.open("figure", "class", "quote")
		h.open("blockquote")
		h.element("p", `"SaaSify has transformed how we approach our digital business. Their platform is intuitive, powerful, and constantly evolving to meet our needs."`)
		h.close("blockquote")
		h.element("figcaption", "Emma Rodriguez, Co-founder of LearnStack Academy")
		h.close("figure")
		h.element("p", "Founded in 2020, SaaSify was born from a simple idea: make it easy for anyone to sell digital products online. Whether you're a solo creator or a growing business, our platform provides all the tools you need to succeed.")
		h.element("p", "Our team of industry experts has built a platform that combines powerful features with simplicity. We believe that technology should work for you, not the other way around.")
		h.element("h2", "Our Values")
		h.list("ul", values)
		h.element("h2", "Our Team")
		h.element("p", "We're a diverse team of engineers, designers, and business experts united by a common goal: to build the best platform for selling digital products. We're remote-first, with team members across the globe bringing their unique perspectives to our work.")
		h.close("section")
		return h.err
	})
}

// TermsPage renders the terms of service.
func TermsPage(loc Localizer) templ.Component {
	return legalPage("terms", T(loc, "page.terms"), termsSections)
}

// PrivacyPage renders the privacy policy.
func PrivacyPage(loc Localizer) templ.Component {
	return legalPage("privacy", T(loc, "page.privacy"), privacySections)
}

func legalPage(id string, title string, sections []legalSection) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("article", "class", "prose", "id", id)
		h.element("h1", title)
		for _, section := range sections {
			h.element("h2", section.heading)
			h.element("p", section.body)
		}
		h.close("article")
		return h.err
	})
}

func writeFeatures(h *htmlWriter) {
	h.open("section", "class", "features", "id", "features")
	h.element("h2", "Everything you need to sell online")
	h.open("div", "class", "grid")
	for _, f := range features {
		h.open("div", "class", "card")
		h.element("h3", f.title)
		h.element("p", f.body)
		h.close("div")
	}
	h.close("div")
	h.close("section")
}

func writeTestimonials(h *htmlWriter) {
	h.open("section", "class", "testimonials", "id", "testimonials")
	h.element("h2", "Trusted by businesses worldwide")
	h.open("div", "class", "grid")
	for _, t := range testimonials {
		h.open("figure", "class", "card testimonial")
		h.element("span", starRating(t.rating), "class", "rating", "aria-label", itoa(t.rating)+" out of 5")
		h.open("blockquote")
		h.element("p", t.quote)
		h.close("blockquote")
		h.open("figcaption")
		h.element("strong", t.name)
		h.element("span", t.role+", "+t.company)
		h.close("figcaption")
		h.close("figure")
	}
	h.close("div")
	h.close("section")
}

func starRating(rating int) string {
	stars := ""
	for i := 0; i < 5; i++ {
		if i < rating {
			stars += "★"
		} else {
			stars += "☆"
		}
	}
	return stars
}

func writePricing(h *htmlWriter, loc Localizer, plans []PlanCard) {
	h.open("section", "class", "pricing", "id", "pricing")
	h.element("h2", T(loc, "pricing.heading"))
	h.element("p", T(loc, "pricing.subtitle"), "class", "lead")
	h.open("div", "class", "grid")
	for _, plan := range plans {
		class := "card plan"
		if plan.MostPopular {
			class += " popular"
		}
		h.open("div", "class", class, "id", "tier-"+plan.ID)
		h.element("h3", plan.Name)
		if plan.MostPopular {
			h.element("span", T(loc, "pricing.popular"), "class", "badge")
		}
		h.element("p", plan.Description)
		h.element("p", plan.PriceLabel, "class", "price")
		h.list("ul", plan.Features, "class", "checklist")
		h.link(plan.CheckoutURL, T(loc, "pricing.cta"), "class", "button", "aria-describedby", "tier-"+plan.ID)
		h.close("div")
	}
	h.close("div")
	h.close("section")
}
