package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`[\+]?[1-9][\d\s\-\(\)]{7,15}`)
	phoneNoise   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\n", "", "\t", "")
)

// extractContact scans page text for email and phone patterns, then walks
// anchors in document order. Anchor evidence overwrites text matches.
func extractContact(doc *goquery.Document, pageText string) Contact {
	var c Contact
	if m := emailPattern.FindString(pageText); m != "" {
		c.Email = m
	}
	if m := phonePattern.FindString(pageText); m != "" {
		c.Phone = phoneNoise.Replace(m)
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		lowerHref := strings.ToLower(href)
		label := strings.ToLower(collapseSpace(a.Text()))

		switch {
		case strings.Contains(lowerHref, "linkedin.com") || strings.Contains(label, "linkedin"):
			c.LinkedIn = href
		case strings.Contains(lowerHref, "github.com") || strings.Contains(label, "github"):
			c.GitHub = href
		case strings.HasPrefix(lowerHref, "mailto:"):
			email := href[len("mailto:"):]
			if i := strings.IndexByte(email, '?'); i >= 0 {
				email = email[:i]
			}
			if strings.Contains(email, "@") {
				c.Email = email
			}
		case strings.HasPrefix(lowerHref, "tel:"):
			c.Phone = strings.TrimSpace(href[len("tel:"):])
		}
	})
	return c
}
