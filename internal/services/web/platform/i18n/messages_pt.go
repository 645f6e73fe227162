package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Partial catalog; missing keys fall back to English through T.
var portugueseMessages = map[string]string{
	"nav.home":          "Início",
	"nav.pricing":       "Preços",
	"nav.features":      "Recursos",
	"nav.about":         "Sobre",
	"nav.get_started":   "Começar",
	"footer.terms":      "Termos de Serviço",
	"footer.privacy":    "Política de Privacidade",
	"footer.copyright":  "© %d SaaSify. Todos os direitos reservados.",
	"page.pricing":      "Preços",
	"page.features":     "Recursos",
	"page.about":        "Sobre",
	"page.checkout":     "Pagamento",
	"page.not_found":    "Página não encontrada",
	"page.error":        "Algo deu errado",
	"pricing.per_month": "%s/mês",
	"pricing.popular":   "Mais popular",
	"pricing.cta":       "Começar",

	"checkout.summary.title":        "Resumo do pedido",
	"checkout.summary.plan":         "Plano %s",
	"checkout.email.label":          "E-mail",
	"checkout.email.submit":         "Continuar para o pagamento",
	"checkout.payment.title":        "Dados de pagamento",
	"checkout.payment.loading":      "Carregando formulário de pagamento...",
	"checkout.error.email_required": "Informe seu e-mail.",
	"checkout.error.email_invalid":  "Informe um e-mail válido.",

	"success.title":  "Pagamento aprovado!",
	"success.amount": "Valor",
	"success.date":   "Data",
	"success.plan":   "Plano",
	"failure.title":  "Pagamento recusado",
	"failure.retry":  "Tentar novamente",

	"error.back_home": "Voltar ao início",

	"date.long":       "%d de %s de %d",
	"month.january":   "janeiro",
	"month.february":  "fevereiro",
	"month.march":     "março",
	"month.april":     "abril",
	"month.may":       "maio",
	"month.june":      "junho",
	"month.july":      "julho",
	"month.august":    "agosto",
	"month.september": "setembro",
	"month.october":   "outubro",
	"month.november":  "novembro",
	"month.december":  "dezembro",
}

func init() {
	for key, value := range portugueseMessages {
		_ = message.SetString(language.BrazilianPortuguese, key, value)
	}
}
