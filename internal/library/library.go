// Package library consolidates many per-variant symbols into one grouped
// symbol library: symbols sharing a logical component name become a single
// component record with one variant child per symbol, and the per-symbol
// metadata blocks are dropped in favor of the group-level record.
package library

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Circuit2TikZ/SymbolConvert/internal/svg"
)

// ErrNoSymbols is returned when the input contains nothing to merge.
var ErrNoSymbols = errors.New("no symbols to merge")

var (
	symbolRe   = regexp.MustCompile(`(?s)<symbol\s+([^>]*)>(.*?)</symbol>`)
	infoRe     = regexp.MustCompile(`(?s)<componentInformation\b([^>]*)>(.*?)</componentInformation>`)
	metadataRe = regexp.MustCompile(`(?s)[ \t]*<metadata>.*?</metadata>\n?`)
	optionsRe  = regexp.MustCompile(`(?s)<tikzOptions>(.*?)</tikzOptions>`)
	optionRe   = regexp.MustCompile(`<option\b[^>]*/>`)
	pinRe      = regexp.MustCompile(`<pin\b[^>]*/>`)
	textPosRe  = regexp.MustCompile(`<textPosition\b[^>]*/>`)
	activeRe   = regexp.MustCompile(`\s+active="true"`)
	displayRe  = regexp.MustCompile(`\s+displayName="[^"]*"`)
)

// memberSymbol is one parsed per-variant symbol.
type memberSymbol struct {
	id       string
	info     svg.Attributes // componentInformation attributes
	options  string         // raw tikzOptions inner content, may be empty
	pins     []string       // raw <pin/> elements
	textPos  string         // raw <textPosition/> element, may be empty
	document string         // full symbol element, metadata still embedded
}

// Merge consolidates the given symbol documents into one library document.
// Grouping preserves the order in which component names first appear, so
// merging is deterministic. The result still needs a pass through the
// external optimizer; callers drive that separately.
func Merge(symbols []string) (string, error) {
	members, err := parseMembers(symbols)
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "", ErrNoSymbols
	}

	var order []string
	groups := make(map[string][]memberSymbol)
	for _, m := range members {
		name, _ := m.info.Get("tikzname")
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], m)
	}

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\" ?>\n")
	b.WriteString("<svg\n\tversion=\"1.1\"\n\txmlns=\"http://www.w3.org/2000/svg\"\n\txmlns:xlink=\"http://www.w3.org/1999/xlink\">\n")
	b.WriteString("\t<defs>\n")

	for _, m := range members {
		stripped := metadataRe.ReplaceAllString(m.document, "")
		for _, line := range strings.Split(strings.TrimRight(stripped, "\n"), "\n") {
			b.WriteString("\t\t")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteString("\t\t<metadata>\n")
	for _, name := range order {
		renderComponent(&b, groups[name])
	}
	b.WriteString("\t\t</metadata>\n")
	b.WriteString("\t</defs>\n</svg>\n")

	return b.String(), nil
}

func parseMembers(symbols []string) ([]memberSymbol, error) {
	var members []memberSymbol
	for _, doc := range symbols {
		for _, sm := range symbolRe.FindAllStringSubmatch(doc, -1) {
			attrs := svg.ExtractTagAttributes(sm[1])
			id, _ := attrs.Get("id")

			im := infoRe.FindStringSubmatch(sm[2])
			if im == nil {
				return nil, fmt.Errorf("symbol %q carries no componentInformation", id)
			}

			m := memberSymbol{
				id:       id,
				info:     svg.ExtractTagAttributes(im[1]),
				pins:     pinRe.FindAllString(im[2], -1),
				document: sm[0],
			}
			if om := optionsRe.FindStringSubmatch(im[2]); om != nil {
				m.options = om[1]
			}
			if tm := textPosRe.FindString(im[2]); tm != "" {
				m.textPos = tm
			}
			members = append(members, m)
		}
	}
	return members, nil
}

// renderComponent writes one component group: the shared shell taken from
// the first member, then one variant per member.
func renderComponent(b *strings.Builder, members []memberSymbol) {
	first := members[0]

	b.WriteString("\t\t\t<component")
	copyAttr(b, first.info, "type")
	copyAttr(b, first.info, "displayname", "displayName")
	copyAttr(b, first.info, "tikzname", "tikzName")
	if t, _ := first.info.Get("type"); t == "path" {
		copyAttr(b, first.info, "shapename", "shapeName")
	}
	copyAttr(b, first.info, "groupname", "groupName")
	b.WriteString(">\n")

	// Shared option declarations; active flags belong to variants, not to
	// the shell.
	if strings.TrimSpace(first.options) != "" {
		b.WriteString("\t\t\t\t<tikzOptions>")
		b.WriteString(activeRe.ReplaceAllString(first.options, ""))
		b.WriteString("</tikzOptions>\n")
	}

	for _, m := range members {
		renderVariant(b, m)
	}

	b.WriteString("\t\t\t</component>\n")
}

func renderVariant(b *strings.Builder, m memberSymbol) {
	b.WriteString("\t\t\t\t<variant for=\"" + m.id + "\"")
	if v, _ := m.info.Get("refx"); v != "" && v != "0" {
		b.WriteString(` refX="` + v + `"`)
	}
	if v, _ := m.info.Get("refy"); v != "" && v != "0" {
		b.WriteString(` refY="` + v + `"`)
	}
	copyAttr(b, m.info, "viewbox", "viewBox")
	b.WriteString(">\n")

	for _, opt := range optionRe.FindAllString(m.options, -1) {
		if !strings.Contains(opt, `active="true"`) {
			continue
		}
		opt = activeRe.ReplaceAllString(opt, "")
		opt = displayRe.ReplaceAllString(opt, "")
		b.WriteString("\t\t\t\t\t" + opt + "\n")
	}
	for _, pin := range m.pins {
		b.WriteString("\t\t\t\t\t" + pin + "\n")
	}
	if m.textPos != "" {
		b.WriteString("\t\t\t\t\t" + m.textPos + "\n")
	}

	b.WriteString("\t\t\t\t</variant>\n")
}

// copyAttr writes an attribute from the parsed (lowercased) key under its
// canonical camelCase name. The canonical name defaults to the key itself.
func copyAttr(b *strings.Builder, attrs svg.Attributes, key string, canonical ...string) {
	v, ok := attrs.Get(key)
	if !ok || v == "" {
		return
	}
	name := key
	if len(canonical) > 0 {
		name = canonical[0]
	}
	b.WriteString(" " + name + `="` + v + `"`)
}
