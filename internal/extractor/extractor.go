package extractor

import (
	"bytes"
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PermalinkMarker is the text that stands in for a Sphinx permalink anchor
// and terminates an option declaration.
const PermalinkMarker = "[¶]"

// heuristicSelectors is the ordered list of containers tried when no
// explicit --selector is given. The aria2 manual is a Sphinx build, so its
// containers come first. The first match with meaningful text wins.
var heuristicSelectors = []string{
	`div[role="main"]`,
	".rst-content .document",
	".document .body",
	".document",
	"main",
	"article",
	"#content",
}

// noiseSelectors are removed from the content before conversion.
var noiseSelectors = []string{
	"script",
	"style",
	"noscript",
	"iframe",
	"nav",
	"header",
	"footer",
	".wy-nav-side",
	".wy-breadcrumbs",
	".sphinxsidebar",
	".related",
	".rst-footer-buttons",
}

// optionListSelector matches Sphinx option description lists, old
// (dl.cmdoption) and new (dl.std.option) markup alike.
const optionListSelector = "dl.option, dl.cmdoption"

const headingPermalinks = "h1 .headerlink, h2 .headerlink, h3 .headerlink, h4 .headerlink, h5 .headerlink, h6 .headerlink"

// Extract parses an HTML manual page and returns the inner HTML of its main
// content area, prepared for Markdown conversion:
//
//   - navigation noise is removed;
//   - heading permalinks are dropped;
//   - every option list entry becomes a "--name=<HINT> [¶]" paragraph
//     followed by its description;
//   - remaining permalinks become plain [¶] text;
//   - relative links are resolved against baseURL when it is absolute.
func Extract(htmlBody []byte, selector string, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return "", err
	}

	var selection *goquery.Selection
	if selector != "" {
		selection = doc.Find(selector)
	} else {
		selection = findMainContent(doc)
	}

	selection.Find(strings.Join(noiseSelectors, ", ")).Remove()
	selection.Find(headingPermalinks).Remove()
	resolveLinks(selection, baseURL)
	rewriteOptionLists(selection)
	selection.Find(".headerlink").ReplaceWithHtml(PermalinkMarker)

	return selection.Html()
}

// findMainContent returns the first heuristic match with more than 50
// characters of text, falling back to body.
func findMainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range heuristicSelectors {
		s := doc.Find(sel).First()
		if s.Length() > 0 && len(strings.TrimSpace(s.Text())) > 50 {
			return s
		}
	}
	return doc.Find("body")
}

func resolveLinks(sel *goquery.Selection, baseURL string) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return
	}
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		a.SetAttr("href", base.ResolveReference(ref).String())
	})
}

// rewriteOptionLists flattens each option list into paragraphs. A signature
// spread over nested spans and code elements would otherwise be split into
// separate inline code runs by the converter.
func rewriteOptionLists(sel *goquery.Selection) {
	sel.Find(optionListSelector).Each(func(_ int, dl *goquery.Selection) {
		var b strings.Builder
		dl.Children().Each(func(_ int, c *goquery.Selection) {
			switch goquery.NodeName(c) {
			case "dt":
				b.WriteString("<p>")
				b.WriteString(html.EscapeString(declaration(c)))
				b.WriteString(" " + PermalinkMarker + "</p>")
			case "dd":
				inner, err := c.Html()
				if err == nil {
					b.WriteString(inner)
				}
			}
		})
		dl.ReplaceWithHtml(b.String())
	})
}

// declaration returns the plain-text signature of an option term with its
// short alias dropped: "-d, --dir=<DIR>" becomes "--dir=<DIR>".
func declaration(dt *goquery.Selection) string {
	term := dt.Clone()
	term.Find(".headerlink").Remove()
	text := strings.Join(strings.Fields(term.Text()), " ")
	if i := strings.Index(text, "--"); i > 0 {
		text = text[i:]
	}
	return text
}
