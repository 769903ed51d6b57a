// Package svg provides the string-level SVG handling the pipeline needs:
// locating the outer container, scanning tag attributes, and turning
// 2-command path elements into line segments. It deliberately works on raw
// text instead of a DOM so that visible geometry passes through the
// pipeline byte for byte.
package svg

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrContainerTagNotFound is returned when a document has no <svg> opening tag.
	ErrContainerTagNotFound = errors.New("svg container tag not found")

	// ErrContainerBodyNotFound is returned when the <svg>...</svg> pair cannot be matched.
	ErrContainerBodyNotFound = errors.New("svg container body not found")
)

var (
	attrRe      = regexp.MustCompile(`([A-Za-z_][\w:.-]*)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>/]+))`)
	openTagRe   = regexp.MustCompile(`(?is)<svg\b([^>]*)>`)
	innerBodyRe = regexp.MustCompile(`(?is)<svg\b[^>]*>(.*?)</svg\s*>`)
)

// Attribute is one key=value pair from a tag. Keys are lowercased on
// extraction; values keep their original spelling.
type Attribute struct {
	Key   string
	Value string
}

// Attributes preserves document order. Lookup is linear; tags in this domain
// carry a handful of attributes at most.
type Attributes []Attribute

// Get returns the value for key (already lowercased by extraction) and
// whether it was present.
func (a Attributes) Get(key string) (string, bool) {
	for _, at := range a {
		if at.Key == key {
			return at.Value, true
		}
	}
	return "", false
}

// ExtractTagAttributes scans the inner text of a single tag for key=value,
// key="value" and key='value' pairs. Fragments that do not form a pair are
// skipped rather than reported; rendered output routinely contains bare
// flags the pipeline does not care about.
func ExtractTagAttributes(inner string) Attributes {
	var attrs Attributes
	for _, m := range attrRe.FindAllStringSubmatch(inner, -1) {
		value := m[2]
		if m[3] != "" {
			value = m[3]
		}
		if m[4] != "" {
			value = m[4]
		}
		attrs = append(attrs, Attribute{Key: strings.ToLower(m[1]), Value: value})
	}
	return attrs
}

// ExtractOuterAttributes returns the attributes of the document's first
// top-level <svg> opening tag.
func ExtractOuterAttributes(doc string) (Attributes, error) {
	m := openTagRe.FindStringSubmatch(doc)
	if m == nil {
		return nil, ErrContainerTagNotFound
	}
	return ExtractTagAttributes(m[1]), nil
}

// ExtractInnerBody returns the text strictly between the container's opening
// and closing tags, with a single leading blank line trimmed.
func ExtractInnerBody(doc string) (string, error) {
	m := innerBodyRe.FindStringSubmatch(doc)
	if m == nil {
		return "", ErrContainerBodyNotFound
	}
	body := m[1]
	if i := strings.IndexByte(body, '\n'); i >= 0 && strings.TrimSpace(body[:i]) == "" {
		body = body[i+1:]
	}
	return body, nil
}
