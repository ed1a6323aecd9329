package translation

import "strings"

// Section is a flat mapping from translation key to display string.
type Section map[string]string

// Payload is the full translation document for one locale, keyed by
// section name. Treat payloads as immutable after loading.
type Payload map[string]Section

// Section returns the named section.
func (p Payload) Section(name string) (Section, bool) {
	s, ok := p[name]
	return s, ok
}

// Resolve looks up a dotted key of the form "section.rest.of.key". The
// first segment selects the section; the remainder is looked up in the
// section's flat map. Returns false when the section or key is absent.
func (p Payload) Resolve(key string) (string, bool) {
	section, rest, ok := strings.Cut(key, ".")
	if !ok || rest == "" {
		return "", false
	}

	s, ok := p[section]
	if !ok {
		return "", false
	}

	v, ok := s[rest]
	return v, ok
}

// Sections returns the section names present in the payload.
func (p Payload) Sections() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	return names
}

// ByteSize estimates the in-memory footprint of the payload. It counts the
// UTF-8 lengths of keys and values; map bookkeeping overhead is ignored, so
// the figure is a lower bound used only for metrics.
func (p Payload) ByteSize() int {
	size := 0
	for name, section := range p {
		size += len(name)
		size += section.ByteSize()
	}
	return size
}

// ByteSize estimates the in-memory footprint of the section.
func (s Section) ByteSize() int {
	size := 0
	for k, v := range s {
		size += len(k) + len(v)
	}
	return size
}
