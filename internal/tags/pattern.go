package tags

import "strings"

// DefaultPrefix is the namespace used when none is configured.
const DefaultPrefix = "fittings"

// Pattern recognizes tags of the form {<prefix>:<key>}.
type Pattern struct {
	prefix string
	open   string
}

// NewPattern returns a Pattern for the given namespace. An empty or blank
// prefix selects DefaultPrefix.
func NewPattern(prefix string) Pattern {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Pattern{prefix: prefix, open: "{" + prefix + ":"}
}

// Prefix returns the namespace this pattern matches.
func (p Pattern) Prefix() string {
	if p.prefix == "" {
		return DefaultPrefix
	}
	return p.prefix
}

// Tag renders the tag text for key, e.g. Tag("hash") == "{fittings:hash}".
func (p Pattern) Tag(key string) string {
	return p.opener() + key + "}"
}

// Substitute replaces every tag in s whose key is present in data. Tags with
// unknown keys are kept unchanged.
func (p Pattern) Substitute(s string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(s, p.opener()) {
		return s
	}
	return p.Parse(s).Execute(data)
}

// Keys lists the distinct tag keys in s in order of first appearance.
func (p Pattern) Keys(s string) []string {
	return p.Parse(s).Keys()
}

func (p Pattern) opener() string {
	if p.open == "" {
		return "{" + DefaultPrefix + ":"
	}
	return p.open
}

// scan walks s and reports static text and tags in order. A key is the text
// between the opener and the next closing brace; it must be non-empty and may
// not contain an opening brace, otherwise the candidate is treated as text and
// the search resumes one byte later.
func (p Pattern) scan(s string, text func(string), tag func(raw, key string)) {
	open := p.opener()
	start, i := 0, 0
	for i < len(s) {
		j := strings.Index(s[i:], open)
		if j < 0 {
			break
		}
		j += i
		keyStart := j + len(open)
		end := strings.IndexAny(s[keyStart:], "{}")
		if end < 0 {
			break
		}
		end += keyStart
		if s[end] != '}' || end == keyStart {
			i = j + 1
			continue
		}
		if j > start {
			text(s[start:j])
		}
		tag(s[j:end+1], s[keyStart:end])
		i = end + 1
		start = i
	}
	if start < len(s) {
		text(s[start:])
	}
}
