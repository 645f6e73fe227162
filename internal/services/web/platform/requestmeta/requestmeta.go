// Package requestmeta derives origin and scheme facts from requests.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how request metadata resolves request scheme.
//
// X-Forwarded-Proto and X-Forwarded-Host are only read when
// TrustForwardedHeaders is set.
type SchemePolicy struct {
	TrustForwardedHeaders bool
}

// IsHTTPS reports whether a request should be treated as HTTPS.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return requestScheme(r, policy) == "https"
}

// Origin returns scheme://host for the site as the browser sees it. A
// configured public base URL wins over request headers.
func Origin(r *http.Request, policy SchemePolicy, publicBaseURL string) string {
	if base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"); base != "" {
		return base
	}
	if r == nil {
		return ""
	}
	host := requestHost(r, policy)
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}
	if host == "" {
		return ""
	}
	return requestScheme(r, policy) + "://" + host
}

// IsUnsafeMethod reports whether the method may change server state.
func IsUnsafeMethod(method string) bool {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

// IsCrossOrigin reports whether Origin (or, failing that, Referer) names a
// different origin than the request. Requests carrying neither header are
// not considered cross-origin.
func IsCrossOrigin(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" || claimed == "null" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	return !sameOrigin(claimed, r, policy)
}

func sameOrigin(raw string, r *http.Request, policy SchemePolicy) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	claimedScheme := strings.ToLower(parsed.Scheme)
	claimedHost := strings.ToLower(parsed.Hostname())
	if claimedScheme == "" || claimedHost == "" {
		return false
	}

	scheme := requestScheme(r, policy)
	host, port := hostParts(requestHost(r, policy))
	if host == "" || claimedScheme != scheme || claimedHost != host {
		return false
	}
	claimedPort := parsed.Port()
	if claimedPort == "" {
		claimedPort = defaultPort(claimedScheme)
	}
	if port == "" {
		port = defaultPort(scheme)
	}
	return claimedPort == port
}

// requestHost is the host the browser addressed: X-Forwarded-Host when
// trusted, else the Host header.
func requestHost(r *http.Request, policy SchemePolicy) string {
	if policy.TrustForwardedHeaders {
		if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); forwarded != "" {
			if i := strings.IndexByte(forwarded, ','); i >= 0 {
				forwarded = strings.TrimSpace(forwarded[:i])
			}
			return forwarded
		}
	}
	return strings.TrimSpace(r.Host)
}

func requestScheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedHeaders {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.URL != nil {
		if scheme := strings.ToLower(strings.TrimSpace(r.URL.Scheme)); scheme == "http" || scheme == "https" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}

func hostParts(rawHost string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(rawHost))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}
