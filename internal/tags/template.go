package tags

import "strings"

// segment is either static text (key == "") or a tag.
type segment struct {
	text string
	key  string
}

// Template is a parsed string: static parts interspersed with tags. It can be
// executed many times against different data sets.
type Template struct {
	source   string
	segments []segment
}

// Parse splits s into static text and tags.
func (p Pattern) Parse(s string) *Template {
	t := &Template{source: s}
	p.scan(s,
		func(text string) { t.segments = append(t.segments, segment{text: text}) },
		func(raw, key string) { t.segments = append(t.segments, segment{text: raw, key: key}) },
	)
	return t
}

// Execute renders the template. Each tag whose key is in data is replaced by
// the value as-is; other tags are emitted unchanged.
func (t *Template) Execute(data map[string]string) string {
	var b strings.Builder
	b.Grow(len(t.source))
	for _, seg := range t.segments {
		if seg.key != "" {
			if v, ok := data[seg.key]; ok {
				b.WriteString(v)
				continue
			}
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// Keys returns the distinct tag keys in order of first appearance.
func (t *Template) Keys() []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, seg := range t.segments {
		if seg.key == "" {
			continue
		}
		if _, ok := seen[seg.key]; ok {
			continue
		}
		seen[seg.key] = struct{}{}
		keys = append(keys, seg.key)
	}
	return keys
}

// String returns the source the template was parsed from.
func (t *Template) String() string {
	return t.source
}
