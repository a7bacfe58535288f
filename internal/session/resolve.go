package session

import (
	"net/http"
	"strings"

	"cmc-mcp/internal/registry"
)

// Request headers and query parameters a client may use to supply its own
// configuration on the served binding.
const (
	HeaderAPIKey = "X-Coinmarketcap-Api-Key"
	HeaderTier   = "X-Subscription-Level"
	QueryAPIKey  = "COINMARKETCAP_API_KEY"
	QueryTier    = "SUBSCRIPTION_LEVEL"
)

// Defaults is the process-level configuration a request falls back to.
type Defaults struct {
	Credential string
	Tier       registry.Tier
}

// Resolved is the configuration in force for one request.
type Resolved struct {
	Credential string
	Tier       registry.Tier
	// UnknownTier is set when the request named a tier that matched no plan.
	UnknownTier string
}

// Resolve picks the request's credential and tier. Values supplied by the
// request win over process defaults; an unrecognized tier name fails closed
// to Basic.
func Resolve(r *http.Request, d Defaults) Resolved {
	res := Resolved{Credential: d.Credential, Tier: d.Tier}

	if key := firstNonEmpty(r.Header.Get(HeaderAPIKey), r.URL.Query().Get(QueryAPIKey)); key != "" {
		res.Credential = key
	}

	if name := firstNonEmpty(r.Header.Get(HeaderTier), r.URL.Query().Get(QueryTier)); name != "" {
		tier, ok := registry.ParseTier(name)
		if !ok {
			res.UnknownTier = name
		}
		res.Tier = tier
	}

	return res
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
