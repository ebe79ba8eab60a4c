package helpers

import (
	"net/url"
	"strings"
)

// SetRawQuery returns rawQuery with key set to value.
func SetRawQuery(rawQuery, key, value string) string {
	values, _ := url.ParseQuery(rawQuery)
	if values == nil {
		values = url.Values{}
	}
	values.Set(key, value)
	return values.Encode()
}

// DelRawQuery returns rawQuery without key.
func DelRawQuery(rawQuery, key string) string {
	values, _ := url.ParseQuery(rawQuery)
	values.Del(key)
	return values.Encode()
}

// BuildURL joins path (dropping any existing query) with rawQuery.
func BuildURL(path, rawQuery string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}
