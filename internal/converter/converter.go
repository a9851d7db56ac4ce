package converter

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// removeTags are HTML tags that should be stripped entirely during conversion.
var removeTags = []string{
	"nav", "header", "footer", "aside", "script", "style", "noscript", "iframe",
}

var multiBlankLines = regexp.MustCompile(`\n{3,}`)

// markdownEscape matches a backslash escape of ASCII punctuation.
var markdownEscape = regexp.MustCompile("\\\\([!-/:-@\\[-`{-~])")

// permalinkGlyph marks the lines that carry option declarations.
const permalinkGlyph = "¶"

// ConvertHTML converts an extracted manual fragment to markdown. sourceURL,
// when it is an absolute URL, is used to resolve relative links.
func ConvertHTML(extractedHTML string, sourceURL string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	for _, tag := range removeTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}

	md, err := conv.ConvertString(extractedHTML, converter.WithDomain(domainFromURL(sourceURL)))
	if err != nil {
		return "", fmt.Errorf("html-to-markdown conversion: %w", err)
	}

	return CleanMarkdown(unescapeDeclarations(md)), nil
}

// unescapeDeclarations undoes Markdown and entity escaping on declaration
// lines, so `\--dir=&lt;DIR&gt; \[¶\]` reads "--dir=<DIR> [¶]" again.
func unescapeDeclarations(md string) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		if !strings.Contains(line, permalinkGlyph) {
			continue
		}
		line = markdownEscape.ReplaceAllString(line, "$1")
		lines[i] = html.UnescapeString(line)
	}
	return strings.Join(lines, "\n")
}

// CleanMarkdown normalizes whitespace in converted markdown.
func CleanMarkdown(md string) string {
	md = multiBlankLines.ReplaceAllString(md, "\n\n")

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func domainFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
