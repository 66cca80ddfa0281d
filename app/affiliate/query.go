package affiliate

import (
	"net/url"
	"strings"
)

// queryPair keeps the raw segment so untouched pairs are re-emitted byte for byte.
type queryPair struct {
	raw   string
	key   string
	value string
}

// query is an ordered view of a raw query string. url.Values would sort keys on
// Encode and rewrite links that never needed a change.
type query []queryPair

func parseQuery(rawQuery string) query {
	var q query
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}

		k, v, _ := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			key = k
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			value = v
		}

		q = append(q, queryPair{raw: segment, key: key, value: value})
	}
	return q
}

func (q query) has(key string) bool {
	for _, p := range q {
		if p.key == key {
			return true
		}
	}
	return false
}

// set replaces the first occurrence of key and drops any repeats, or appends.
func (q query) set(key, value string) query {
	out := make(query, 0, len(q)+1)
	found := false
	for _, p := range q {
		if p.key != key {
			out = append(out, p)
			continue
		}
		if !found {
			out = append(out, queryPair{key: key, value: value})
			found = true
		}
	}
	if !found {
		out = append(out, queryPair{key: key, value: value})
	}
	return out
}

func (q query) add(key, value string) query {
	return append(q, queryPair{key: key, value: value})
}

func (q query) encode() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		if p.raw != "" {
			parts = append(parts, p.raw)
			continue
		}
		parts = append(parts, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}
	return strings.Join(parts, "&")
}
