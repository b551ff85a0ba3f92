package core

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CustomService is the catalog entry used for services we have no brand for.
const CustomService = "custom"

// KnownService is a subscription service with a brand color.
type KnownService struct {
	Key   string
	Color string
}

var serviceCatalog = map[string]string{
	"netflix":       "#E50914",
	"spotify":       "#1DB954",
	"claude":        "#DE7356",
	"openai":        "#412991",
	"domain name":   "#4CAF50",
	"gym":           "#FF5722",
	"microsoft 365": "#0078D4",
	"canva":         "#00C4CC",
	"google one":    "#4285F4",
	"icloud":        "#3498DB",
	"notion":        "#000000",
	CustomService:   "#888888",
}

// NormalizeService lowercases and collapses whitespace so lookups are
// insensitive to how the user typed the service.
func NormalizeService(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// LookupService returns the catalog entry for s, falling back to the custom
// entry. The bool reports whether s itself is known.
func LookupService(s string) (KnownService, bool) {
	key := NormalizeService(s)
	if color, ok := serviceCatalog[key]; ok {
		return KnownService{Key: key, Color: color}, true
	}
	return KnownService{Key: CustomService, Color: serviceCatalog[CustomService]}, false
}

// Services lists the catalog keys alphabetically.
func Services() []string {
	keys := make([]string, 0, len(serviceCatalog))
	for k := range serviceCatalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ServiceDisplayName capitalizes the first letter of a catalog key.
func ServiceDisplayName(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}
