// Package options scrapes aria2 option declarations out of the Markdown
// rendering of the aria2 manual.
package options

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultPermalinkPrefix is the URL prefix of the manual's permalink
	// references, which are dropped from descriptions.
	DefaultPermalinkPrefix = "https://aria2.github.io/"

	// DefaultMaxDescription is the description length, in characters, past
	// which descriptions are truncated.
	DefaultMaxDescription = 500

	// typeLookahead is how many characters after a declaration are searched
	// for a true|false hint when the declaration carries none.
	typeLookahead = 100

	ellipsis = "..."
)

// headingPattern matches a level 2 or 3 heading line.
var headingPattern = regexp.MustCompile(`(?m)^(###? .*)$`)

// optionPattern matches a declaration such as
//
//	\--dir \=<DIR> [¶]
//	\--enable-rpc \[true|false\] [¶]
//	--split=<N> [¶]
//
// Group 1 is the option name, group 2 the raw value hint (possibly empty).
// Markdown escapes are optional and the permalink glyph may appear
// double-encoded.
var optionPattern = regexp.MustCompile(`\\?--([a-zA-Z0-9-]+)\s*(\\?\[[^\]]+\\?\]|\\?=<[^>]+>|\\?=[a-zA-Z0-9|]+)?\s*\[(?:Â)?¶\]`)

var defaultPattern = regexp.MustCompile("Default:\\s*`([^`]+)`")

// Option is a single option scraped from the manual.
type Option struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Default     *string `json:"default"`
	Description string  `json:"description"`
}

// Parser extracts options. The zero value is not usable; use New.
type Parser struct {
	permalink      *regexp.Regexp
	maxDescription int
}

// New returns a Parser that strips "(<permalinkPrefix>...)" references from
// descriptions and truncates descriptions longer than maxDescription
// characters.
func New(permalinkPrefix string, maxDescription int) *Parser {
	return &Parser{
		permalink:      regexp.MustCompile(`\(` + regexp.QuoteMeta(permalinkPrefix) + `.*?\)`),
		maxDescription: maxDescription,
	}
}

// ExtractFile reads the whole document at path and extracts its options.
func (p *Parser) ExtractFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Extract(string(data)), nil
}

// Extract returns every option declared in content, in document order.
func (p *Parser) Extract(content string) []Option {
	opts := []Option{}
	for _, s := range splitSections(content) {
		opts = append(opts, p.extractSection(s)...)
	}
	return opts
}

type section struct {
	category string
	body     string
}

// splitSections splits content at headings. Text before the first heading
// belongs to no section and is dropped.
func splitSections(content string) []section {
	locs := headingPattern.FindAllStringSubmatchIndex(content, -1)

	sections := make([]section, 0, len(locs))
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		category := strings.TrimSpace(strings.Trim(content[loc[2]:loc[3]], "# "))
		if category == "" {
			continue
		}
		start := loc[1]
		if start < end && content[start] == '\n' {
			start++
		}
		sections = append(sections, section{
			category: category,
			body:     content[start:end],
		})
	}
	return sections
}

func (p *Parser) extractSection(s section) []Option {
	matches := optionPattern.FindAllStringSubmatchIndex(s.body, -1)

	opts := make([]Option, 0, len(matches))
	for i, m := range matches {
		end := len(s.body)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		var hint string
		if m[4] >= 0 {
			hint = s.body[m[4]:m[5]]
		}

		desc := strings.TrimSpace(s.body[m[1]:end])

		opts = append(opts, Option{
			Name:        s.body[m[2]:m[3]],
			Category:    s.category,
			Type:        inferType(hint, s.body[m[1]:]),
			Default:     findDefault(desc),
			Description: p.cleanDescription(desc),
		})
	}
	return opts
}

// inferType normalizes a raw value hint into a type name. Without a hint the
// text following the declaration decides between boolean and string.
func inferType(hint, rest string) string {
	if hint != "" {
		t := strings.ReplaceAll(hint, `\`, "")
		t = strings.ReplaceAll(t, "=", "")
		t = strings.Trim(t, "[]<> ")
		if t == "true|false" {
			return "boolean"
		}
		return t
	}

	if strings.Contains(runePrefix(rest, typeLookahead), "true|false") {
		return "boolean"
	}
	return "string"
}

func findDefault(desc string) *string {
	m := defaultPattern.FindStringSubmatch(desc)
	if m == nil {
		return nil
	}
	v := m[1]
	return &v
}

func (p *Parser) cleanDescription(desc string) string {
	desc, _, _ = strings.Cut(desc, "Default:")
	desc = strings.TrimSpace(desc)
	desc = p.permalink.ReplaceAllString(desc, "")
	desc = strings.TrimSpace(desc)

	if utf8.RuneCountInString(desc) > p.maxDescription {
		return runePrefix(desc, p.maxDescription) + ellipsis
	}
	return desc
}

// runePrefix returns at most the first n characters of s.
func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
