package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

func render(t *testing.T, c templ.Component) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func mustFind(t *testing.T, doc *html.Node, id string) *html.Node {
	t.Helper()
	n := findByID(doc, id)
	if n == nil {
		t.Fatalf("element #%s not found", id)
	}
	return n
}

func TestLayoutWrapsChildren(t *testing.T) {
	t.Parallel()

	child := templ.Raw(`<p id="child">hello</p>`)
	ctx := templ.WithChildren(context.Background(), child)
	var buf bytes.Buffer
	view := LayoutView{Title: "Pricing", Lang: "pt-BR", CurrentPath: "/pricing", Year: 2024, Scripts: []string{"/static/checkout.js"}}
	if err := Layout(view).Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	htmlNode := findAll(doc, "html")[0]
	if got := attr(htmlNode, "lang"); got != "pt-BR" {
		t.Fatalf("lang = %q", got)
	}
	if got := textOf(findAll(doc, "title")[0]); got != "Pricing | SaaSify" {
		t.Fatalf("title = %q", got)
	}
	main := mustFind(t, doc, "main")
	if findByID(main, "child") == nil {
		t.Fatal("children not rendered inside main")
	}
	current := ""
	for _, a := range findAll(doc, "a") {
		if attr(a, "aria-current") == "page" {
			current = attr(a, "href")
		}
	}
	if current != "/pricing" {
		t.Fatalf("aria-current link = %q", current)
	}
	scripts := findAll(doc, "script")
	if len(scripts) != 1 || attr(scripts[0], "src") != "/static/checkout.js" {
		t.Fatalf("scripts = %d", len(scripts))
	}
	if footer := findAll(doc, "footer")[0]; !strings.Contains(textOf(footer), "© 2024 SaaSify") {
		t.Fatalf("footer = %q", textOf(footer))
	}
}

func TestHomePageRendersPlansAndTestimonials(t *testing.T) {
	t.Parallel()

	doc := render(t, HomePage(HomeView{Plans: []PlanCard{
		{ID: "starter", Name: "Starter", PriceLabel: "$29/month", CheckoutURL: "/checkout?plan=starter", Features: []string{"Email support"}},
		{ID: "growth", Name: "Growth", PriceLabel: "$79/month", CheckoutURL: "/checkout?plan=growth", MostPopular: true},
	}}))

	growth := mustFind(t, doc, "tier-growth")
	if !strings.Contains(attr(growth, "class"), "popular") {
		t.Fatalf("growth class = %q", attr(growth, "class"))
	}
	if !strings.Contains(textOf(growth), "Most popular") {
		t.Fatal("growth missing popular badge")
	}
	starter := mustFind(t, doc, "tier-starter")
	links := findAll(starter, "a")
	if len(links) != 1 || attr(links[0], "href") != "/checkout?plan=starter" {
		t.Fatalf("starter links = %+v", links)
	}
	if !strings.Contains(textOf(starter), "$29/month") {
		t.Fatalf("starter text = %q", textOf(starter))
	}

	testimonials := textOf(mustFind(t, doc, "testimonials"))
	for _, name := range []string{"Emma Rodriguez", "Michael Chen", "Sarah Johnson"} {
		if !strings.Contains(testimonials, name) {
			t.Fatalf("missing testimonial from %s", name)
		}
	}
}

func TestLegalPages(t *testing.T) {
	t.Parallel()

	terms := render(t, TermsPage(nil))
	if got := len(findAll(mustFind(t, terms, "terms"), "h2")); got != 7 {
		t.Fatalf("terms sections = %d", got)
	}
	privacy := render(t, PrivacyPage(nil))
	if !strings.Contains(textOf(mustFind(t, privacy, "privacy")), "privacy@saasify.com") {
		t.Fatal("privacy contact missing")
	}
}

func TestErrorState(t *testing.T) {
	t.Parallel()

	doc := render(t, ErrorState(404, nil))
	state := mustFind(t, doc, "error-state")
	if attr(state, "data-status") != "404" {
		t.Fatalf("data-status = %q", attr(state, "data-status"))
	}
	if !strings.Contains(textOf(state), "Page not found") {
		t.Fatalf("text = %q", textOf(state))
	}
	if got := ErrorPageTitle(503, nil); got != "Something went wrong" {
		t.Fatalf("title = %q", got)
	}
}

func TestCheckoutPageEmailStage(t *testing.T) {
	t.Parallel()

	doc := render(t, CheckoutPage(CheckoutView{
		Stage: "email",
		Plan:  CheckoutPlan{ID: "growth", Name: "Growth", PriceLabel: "$79/month"},
		Email: "bad",
		Error: "Please enter a valid email address.",
	}))

	if attr(mustFind(t, doc, "checkout"), "data-stage") != "email" {
		t.Fatal("stage attribute missing")
	}
	form := mustFind(t, doc, "email-form")
	if attr(form, "method") != "post" || attr(form, "action") != "/checkout" {
		t.Fatalf("form = %+v", form.Attr)
	}
	email := mustFind(t, doc, "email")
	if attr(email, "value") != "bad" || attr(email, "aria-invalid") != "true" {
		t.Fatalf("email input = %+v", email.Attr)
	}
	if got := textOf(mustFind(t, doc, "email-error")); got != "Please enter a valid email address." {
		t.Fatalf("error = %q", got)
	}
	if !strings.Contains(textOf(mustFind(t, doc, "order-summary")), "Growth Plan") {
		t.Fatal("summary missing plan name")
	}
	if findByID(doc, "payment-panel") != nil {
		t.Fatal("payment panel rendered at email stage")
	}
}

func TestCheckoutPagePaymentPanel(t *testing.T) {
	t.Parallel()

	doc := render(t, CheckoutPage(CheckoutView{
		Stage:   "mounting",
		Plan:    CheckoutPlan{ID: "starter", Name: "Starter"},
		Email:   "jane@example.com",
		Loading: true,
		Payment: &PaymentPanel{
			SessionID:      "ps_1",
			SessionJSON:    `{"id":"ps_1","payment_session_secret":"pss_x"}`,
			PublicKey:      "pk_sbox_test",
			Environment:    "sandbox",
			Locale:         "en-US",
			ScriptURL:      "/api/proxy/checkout-script",
			AppearanceJSON: `{"colorAction":"#4F46E5"}`,
		},
	}))

	panel := mustFind(t, doc, "payment-panel")
	want := map[string]string{
		"data-stage":       "mounting",
		"data-session-id":  "ps_1",
		"data-session":     `{"id":"ps_1","payment_session_secret":"pss_x"}`,
		"data-public-key":  "pk_sbox_test",
		"data-environment": "sandbox",
		"data-locale":      "en-US",
		"data-script-url":  "/api/proxy/checkout-script",
		"data-appearance":  `{"colorAction":"#4F46E5"}`,
	}
	for name, value := range want {
		if got := attr(panel, name); got != value {
			t.Fatalf("%s = %q, want %q", name, got, value)
		}
	}
	if hasAttr(mustFind(t, doc, "flow-loading"), "hidden") {
		t.Fatal("loading indicator hidden while mounting")
	}
	if !hasAttr(mustFind(t, doc, "flow-error"), "hidden") {
		t.Fatal("error panel visible without error")
	}
	if findByID(doc, "email-form") != nil {
		t.Fatal("email form rendered with payment panel")
	}
}

func TestCheckoutPageFailedStageShowsRetry(t *testing.T) {
	t.Parallel()

	doc := render(t, CheckoutPage(CheckoutView{
		Stage: "failed",
		Plan:  CheckoutPlan{ID: "enterprise", Name: "Enterprise"},
		Error: "Failed to create payment session",
	}))
	errPanel := mustFind(t, doc, "flow-error")
	if hasAttr(errPanel, "hidden") {
		t.Fatal("error panel hidden")
	}
	if got := textOf(mustFind(t, doc, "flow-error-message")); got != "Failed to create payment session" {
		t.Fatalf("message = %q", got)
	}
	if got := attr(mustFind(t, doc, "flow-retry"), "href"); got != "/checkout?plan=enterprise" {
		t.Fatalf("retry href = %q", got)
	}
}

func TestSuccessPage(t *testing.T) {
	t.Parallel()

	doc := render(t, SuccessPage(SuccessView{
		Reference: "ORDER-1",
		Amount:    "$29.00",
		Status:    "Captured",
		Plan:      "Starter",
		Blocks:    []JSONBlock{{ID: "json-payment", Title: "Payment", Body: `{"id":"pay_1"}`}},
	}))
	if got := textOf(mustFind(t, doc, "summary-amount")); got != "$29.00" {
		t.Fatalf("amount = %q", got)
	}
	if findByID(doc, "summary-date") != nil {
		t.Fatal("empty date should be omitted")
	}
	block := mustFind(t, doc, "json-payment")
	if block.Data != "details" || !strings.Contains(textOf(block), `"pay_1"`) {
		t.Fatalf("block = %q", textOf(block))
	}

	errDoc := render(t, SuccessPage(SuccessView{Error: "No session ID provided"}))
	if !strings.Contains(textOf(mustFind(t, errDoc, "success-error")), "No session ID provided") {
		t.Fatal("error not rendered")
	}
}

func TestFailurePageDefaults(t *testing.T) {
	t.Parallel()

	doc := render(t, FailurePage(FailureView{}))
	if got := textOf(mustFind(t, doc, "failure-message")); got != "Your payment could not be processed at this time." {
		t.Fatalf("message = %q", got)
	}
	retry := mustFind(t, doc, "failure-retry")
	if textOf(retry) != "Try Again" || attr(retry, "href") != "/checkout" {
		t.Fatalf("retry = %q %q", textOf(retry), attr(retry, "href"))
	}
	if got := len(findAll(mustFind(t, doc, "failure-reasons"), "li")); got != 4 {
		t.Fatalf("reasons = %d", got)
	}
}
