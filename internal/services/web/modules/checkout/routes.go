package checkout

import (
	"net/http"

	"github.com/louisbranch/saasify/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Checkout, h.handleCheckout)
	mux.HandleFunc(http.MethodPost+" "+routepath.Checkout, h.handleSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.CheckoutSuccess, h.handleSuccess)
	mux.HandleFunc(http.MethodGet+" "+routepath.CheckoutFailure, h.handleFailure)
	mux.HandleFunc(http.MethodGet+" "+routepath.CheckoutPrefix+"{rest...}", h.handleNotFound)
}
