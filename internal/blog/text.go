package blog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const excerptLimit = 280

// plainText strips markup and collapses whitespace. Entities are decoded.
func plainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// excerpt returns the plain text of fragment cut at a word boundary.
func excerpt(fragment string) string {
	text := strings.TrimSuffix(plainText(fragment), "[…]")
	text = strings.TrimSpace(strings.TrimSuffix(text, "[&hellip;]"))
	if len([]rune(text)) <= excerptLimit {
		return text
	}
	runes := []rune(text)[:excerptLimit]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > excerptLimit/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// firstImage returns the src of the first <img> in fragment.
func firstImage(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return strings.TrimSpace(src)
}
