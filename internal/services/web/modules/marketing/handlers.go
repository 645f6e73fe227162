package marketing

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/saasify/internal/catalog"
	webi18n "github.com/louisbranch/saasify/internal/services/web/platform/i18n"
	"github.com/louisbranch/saasify/internal/services/web/platform/pagerender"
	"github.com/louisbranch/saasify/internal/services/web/platform/publichandler"
	webtemplates "github.com/louisbranch/saasify/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
}

func newHandlers(base publichandler.Base) handlers {
	return handlers{Base: base}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	body := webtemplates.HomePage(webtemplates.HomeView{Loc: loc, Plans: planCards(loc, lang)})
	h.writePage(w, r, loc, lang, "", body)
}

func (h handlers) handlePricing(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	h.writePage(w, r, loc, lang, webtemplates.T(loc, "page.pricing"), webtemplates.PricingPage(loc, planCards(loc, lang)))
}

func (h handlers) handleFeatures(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	h.writePage(w, r, loc, lang, webtemplates.T(loc, "page.features"), webtemplates.FeaturesPage())
}

func (h handlers) handleAbout(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	h.writePage(w, r, loc, lang, webtemplates.T(loc, "page.about"), webtemplates.AboutPage())
}

func (h handlers) handleTerms(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	h.writePage(w, r, loc, lang, webtemplates.T(loc, "page.terms"), webtemplates.TermsPage(loc))
}

func (h handlers) handlePrivacy(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.PageLocalizer(w, r)
	h.writePage(w, r, loc, lang, webtemplates.T(loc, "page.privacy"), webtemplates.PrivacyPage(loc))
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, lang string, title string, body templ.Component) {
	h.WritePage(w, r, pagerender.Page{
		Title:       title,
		Description: webtemplates.T(loc, "page.home"),
		Lang:        lang,
		Loc:         loc,
		Body:        body,
	})
}

func planCards(loc webtemplates.Localizer, lang string) []webtemplates.PlanCard {
	tag := webi18n.TagOf(lang)
	plans := catalog.Plans()
	cards := make([]webtemplates.PlanCard, 0, len(plans))
	for _, plan := range plans {
		price := webi18n.FormatWholeAmount(tag, plan.PriceMonthly, plan.Currency)
		cards = append(cards, webtemplates.PlanCard{
			ID:          plan.ID,
			Name:        plan.Name,
			PriceLabel:  webtemplates.T(loc, "pricing.per_month", price),
			Description: plan.Description,
			Features:    plan.Features,
			MostPopular: plan.MostPopular,
			CheckoutURL: plan.CheckoutPath(),
		})
	}
	return cards
}
