package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/lazyi18n/pkg/i18n"
)

func TestNegotiateLocale(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "vi", "de", "pt-br"}

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", "en"},
		{"exact match", "vi", "vi"},
		{"quality ordering", "de;q=0.8, vi;q=0.9", "vi"},
		{"exact regional match", "pt-BR, en;q=0.5", "pt-br"},
		{"base language fallback", "de-AT, fr;q=0.9", "de"},
		{"exact beats base despite quality", "vi-VN;q=0.9, de;q=0.8", "de"},
		{"wildcard ignored", "*, vi;q=0.5", "vi"},
		{"nothing matches", "fr, ja;q=0.9", "en"},
		{"malformed quality treated as 1", "vi;q=abc, de", "vi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, i18n.NegotiateLocale(tc.header, supported, "en"))
		})
	}
}

func TestNegotiateLocaleNoSupported(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "en", i18n.NegotiateLocale("vi", nil, "en"))
}

func TestNormalizeLocale(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"en-US", "en"},
		{"EN", "en"},
		{"zh-Hant", "zh"},
		{"  vi  ", "vi"},
		{"", ""},
		{"not_a!tag-XX", "not_a!tag"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, i18n.NormalizeLocale(tc.in), "input %q", tc.in)
	}
}
