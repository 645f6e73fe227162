// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/saasify/internal/services/web/platform/httpx"
	webtemplates "github.com/louisbranch/saasify/internal/services/web/templates"
)

// Page describes a full-page module response.
type Page struct {
	Title       string
	Description string
	StatusCode  int
	Lang        string
	Loc         webtemplates.Localizer
	Body        templ.Component
	Scripts     []string
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders the page body inside the site layout. Nothing is written
// when rendering fails so the caller can still send an error response.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}
	currentPath := ""
	if r != nil && r.URL != nil {
		currentPath = r.URL.Path
	}

	layout := webtemplates.Layout(webtemplates.LayoutView{
		Title:       page.Title,
		Description: page.Description,
		Lang:        page.Lang,
		CurrentPath: currentPath,
		Loc:         page.Loc,
		Scripts:     page.Scripts,
	})
	var buf bytes.Buffer
	if err := layout.Render(templ.WithChildren(httpx.RequestContext(r), body), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
