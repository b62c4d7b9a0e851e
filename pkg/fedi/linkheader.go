package fedi

import (
	"net/http"
	"strings"
)

// NavigationLinks holds the pagination URIs parsed from a response's Link
// header. Only the "next" relation drives pagination; "prev" is kept for
// callers that walk backwards.
type NavigationLinks struct {
	Next string
	Prev string
}

// ParseLinkHeader parses an RFC 5988 style Link header value into
// NavigationLinks. The value is a comma-separated list of
// `<uri>; rel="name"` entries; unrecognized relations are ignored.
func ParseLinkHeader(value string) NavigationLinks {
	var links NavigationLinks

	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ";")

		uri := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(uri, "<") || !strings.HasSuffix(uri, ">") {
			continue
		}

		uri = strings.Trim(uri, "<>")

		for _, param := range parts[1:] {
			key, val, found := strings.Cut(strings.TrimSpace(param), "=")
			if !found || strings.TrimSpace(key) != "rel" {
				continue
			}

			switch strings.Trim(strings.TrimSpace(val), `"`) {
			case "next":
				links.Next = uri
			case "prev":
				links.Prev = uri
			}
		}
	}

	return links
}

// LinksFromHeader extracts NavigationLinks from a response header set.
func LinksFromHeader(h http.Header) NavigationLinks {
	if h == nil {
		return NavigationLinks{}
	}

	return ParseLinkHeader(h.Get("Link"))
}
