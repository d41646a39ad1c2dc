package htmlutil

import (
	"bytes"
	"context"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
	"hibid-backend/lib/textutil"
)

var tracer = otel.Tracer("hibid.lib.htmlutil")

// GetText concatenates every text node under node without adding separators.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// GetSeparatedText trims every text node under node and joins the non-empty ones
// with sep, so "<span>12 Main</span><br><span>Dallas</span>" does not collapse
// into "12 MainDallas".
func GetSeparatedText(node *html.Node, sep string) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				parts = append(parts, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.Join(parts, sep)
}

// CleanText is the selection's text with non-printable runes removed and
// whitespace collapsed.
func CleanText(sel *goquery.Selection) string {
	return textutil.CollapseWhitespace(removeNonPrintable(sel.Text()))
}

type Anchor struct {
	Name string
	Href string
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// GetAnchors returns the cleaned text and raw href of every <a> node in sel.
// Nodes without an href attribute are skipped.
func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href, ok := "", false
		for _, a := range n.Attr {
			if a.Key == "href" {
				href, ok = a.Val, true
				break
			}
		}
		if !ok {
			continue
		}

		name := GetText(n)
		name = removeNonPrintable(name)
		name = textutil.CollapseWhitespace(name)

		anchors = append(anchors, Anchor{
			Name: name,
			Href: strings.TrimSpace(href),
		})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("url", href),
		))
	}

	return anchors
}
