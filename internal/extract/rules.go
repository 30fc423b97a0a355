package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field names a scalar feature filled by selector rules.
type Field string

// Scalar fields.
const (
	FieldName     Field = "name"
	FieldTitle    Field = "title"
	FieldLocation Field = "location"
	FieldAbout    Field = "about"
)

// Rule maps the first element matching Selector to Field when its text is
// accepted. Rules are evaluated in slice order and the first accepted value for
// a field wins.
type Rule struct {
	Field     Field
	Selector  string
	Accept    func(text string) bool
	Transform func(text string) string
}

var (
	nameSelectors = []string{
		"h1", ".name", "#name", `[class*="name"]`, `[id*="name"]`,
		".hero h1", ".header h1", ".intro h1", ".profile h1",
		".title h1", ".main-title", ".hero-title",
	}
	titleSelectors = []string{
		"h2", ".title", "#title", `[class*="title"]`, `[id*="title"]`,
		".role", ".position", ".job-title", ".profession",
		".hero h2", ".header h2", ".intro h2", ".profile h2",
		".subtitle", ".tagline", ".description",
	}
	locationSelectors = []string{
		".location", "#location", `[class*="location"]`, `[id*="location"]`,
		".address", "address",
	}
	aboutSelectors = []string{
		".about", "#about", `[class*="about"]`, `[id*="about"]`,
		".intro", ".summary", ".bio", ".description", ".profile",
	}
)

// DefaultRules returns the ordered scalar rule list for t.
func DefaultRules(t Thresholds) []Rule {
	shortText := func(text string) bool { return runeLen(text) < t.TitleMaxLen }
	longText := func(text string) bool { return runeLen(text) > t.AboutMinLen }
	truncate := func(text string) string { return truncateRunes(text, t.AboutMaxLen) }

	var rules []Rule
	for _, sel := range nameSelectors {
		rules = append(rules, Rule{Field: FieldName, Selector: sel})
	}
	for _, sel := range titleSelectors {
		rules = append(rules, Rule{Field: FieldTitle, Selector: sel, Accept: shortText})
	}
	for _, sel := range locationSelectors {
		rules = append(rules, Rule{Field: FieldLocation, Selector: sel, Accept: shortText})
	}
	for _, sel := range aboutSelectors {
		rules = append(rules, Rule{Field: FieldAbout, Selector: sel, Accept: longText, Transform: truncate})
	}
	return rules
}

// ApplyRules evaluates rules against doc and returns the accepted value per field.
func ApplyRules(doc *goquery.Document, rules []Rule) map[Field]string {
	out := make(map[Field]string)
	for _, r := range rules {
		if _, done := out[r.Field]; done {
			continue
		}
		sel := doc.Find(r.Selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := collapseSpace(sel.Text())
		if text == "" {
			continue
		}
		if r.Accept != nil && !r.Accept(text) {
			continue
		}
		if r.Transform != nil {
			text = r.Transform(text)
		}
		out[r.Field] = text
	}
	return out
}

// collapseSpace trims text and folds internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
