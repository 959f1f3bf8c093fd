package utils

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// JoinInt64s renders ids as the comma separated list the backend expects in form fields.
func JoinInt64s(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

// Slug lower-cases s and replaces every run of whitespace with a single "-".
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// QueryEscape escapes s for a query value, encoding spaces as %20 rather than "+".
func QueryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Sorted returns a sorted copy of s.
func Sorted(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}
