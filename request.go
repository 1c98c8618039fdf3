package carbon

import (
	"net/url"
	"sort"
	"strings"
)

// Request is everything the renderer needs to draw one image.
type Request struct {
	Endpoint string
	Code     string
	Language string
	Settings Settings
}

// NewRequest returns a request against DefaultEndpoint.
func NewRequest(code, language string, settings Settings) Request {
	return Request{
		Endpoint: DefaultEndpoint,
		Code:     code,
		Language: language,
		Settings: settings,
	}
}

// URL serializes the request. Identical requests always yield identical URLs.
func (r Request) URL() string {
	return BuildURL(r.Endpoint, r.Code, r.Language, r.Settings)
}

// BuildURL merges code and language into the settings parameters and appends
// them to endpoint as a query string with keys in sorted order.
//
// The code is percent-encoded before it is placed in the query, and the query
// is encoded again on serialization: the renderer decodes the code parameter a
// second time after reading it from the URL.
func BuildURL(endpoint, code, language string, settings Settings) string {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if language == "" {
		language = AutoLanguage
	}

	params := settings.params()
	params[keyCode] = encodeURIComponent(code)
	params[keyLanguage] = language

	return endpoint + "?" + encodeQuery(params)
}

// encodeQuery serializes params sorted by key with strict encoding.
func encodeQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(strictEscape(k))
		b.WriteByte('=')
		b.WriteString(strictEscape(params[k]))
	}
	return b.String()
}

// componentUnescapes lists the characters encodeURIComponent leaves alone
// but url.QueryEscape escapes.
var componentUnescapes = strings.NewReplacer(
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s the way browsers do: spaces become %20 and
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) are kept.
func encodeURIComponent(s string) string {
	return componentUnescapes.Replace(strictEscape(s))
}

// strictEscape escapes everything except A-Z a-z 0-9 - _ . ~, with %20 for
// spaces.
func strictEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
