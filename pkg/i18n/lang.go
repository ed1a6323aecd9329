package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength caps header parsing. RFC 7231 sets no limit, but
// 4KB covers every legitimate header while bounding work on hostile input.
const maxAcceptLanguageLength = 4096

type localeWithQ struct {
	locale string
	q      float64
}

// parseAcceptLanguage splits an Accept-Language header into lowercased
// locale tags sorted by quality, dropping malformed entries.
func parseAcceptLanguage(header string) []localeWithQ {
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var locales []localeWithQ
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		tag, qPart, _ := strings.Cut(part, ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || tag == "*" {
			continue
		}

		q := 1.0
		if qPart = strings.TrimSpace(qPart); strings.HasPrefix(qPart, "q=") {
			if v, err := strconv.ParseFloat(qPart[2:], 64); err == nil && v >= 0 && v <= 1 {
				q = v
			}
		}
		locales = append(locales, localeWithQ{locale: tag, q: q})
	}

	slices.SortStableFunc(locales, func(a, b localeWithQ) int {
		return cmp.Compare(b.q, a.q)
	})
	return locales
}

// NegotiateLocale resolves an Accept-Language header against the supported
// locales: exact matches first in quality order, then base-language
// matches (en-US -> en), then the default.
func NegotiateLocale(header string, supported []string, defaultLocale string) string {
	if header == "" || len(supported) == 0 {
		return defaultLocale
	}

	normalized := make([]string, len(supported))
	for i, locale := range supported {
		normalized[i] = strings.ToLower(locale)
	}

	candidates := parseAcceptLanguage(header)
	for _, c := range candidates {
		if slices.Contains(normalized, c.locale) {
			return c.locale
		}
	}
	for _, c := range candidates {
		if base, _, ok := strings.Cut(c.locale, "-"); ok && slices.Contains(normalized, base) {
			return base
		}
	}
	return defaultLocale
}

// NormalizeLocale canonicalizes a BCP 47 tag to its lowercase base form
// ("en-US" -> "en", "ZH-Hant" -> "zh"). Unparseable input comes back
// lowercased and trimmed so lookups stay deterministic.
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		base, _, _ := strings.Cut(strings.ToLower(locale), "-")
		return base
	}
	base, _ := tag.Base()
	return base.String()
}
