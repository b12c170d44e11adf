// Package dburl normalises Postgres connection strings shared by the API,
// the export command and migrations.
package dburl

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// WithPreparedBinaryDisabled sets disable_prepared_binary_result=yes on a URL
// DSN unless the URL already carries the parameter. Key/value DSNs and
// unparsable input are returned unchanged.
func WithPreparedBinaryDisabled(raw string) string {
	parsed, ok := parseURL(raw)
	if !ok {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// Name returns the database name of a URL or key/value DSN, or "".
func Name(raw string) string {
	if parsed, ok := parseURL(raw); ok {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(raw) {
		key, value, found := strings.Cut(token, "=")
		if !found || key != "dbname" {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}
	return ""
}

// Redact masks the password of a URL DSN so it can be logged. Key/value DSNs
// are reduced to their host and database.
func Redact(raw string) string {
	if parsed, ok := parseURL(raw); ok {
		return parsed.Redacted()
	}

	var kept []string
	for _, token := range strings.Fields(raw) {
		key, _, _ := strings.Cut(token, "=")
		switch key {
		case "host", "port", "dbname", "user", "sslmode":
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, " ")
}

func parseURL(raw string) (*url.URL, bool) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, false
	}
	return parsed, true
}
