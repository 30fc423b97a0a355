package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/portfolio-resume/internal/fetch"
)

// Extractor runs the feature heuristics with a fixed rule list and thresholds.
type Extractor struct {
	thresholds Thresholds
	rules      []Rule
}

// New creates an Extractor for t using DefaultRules.
func New(t Thresholds) *Extractor {
	return &Extractor{thresholds: t, rules: DefaultRules(t)}
}

// NewWithRules creates an Extractor with a custom scalar rule list.
func NewWithRules(t Thresholds, rules []Rule) *Extractor {
	return &Extractor{thresholds: t, rules: rules}
}

// Default returns an Extractor with DefaultThresholds.
func Default() *Extractor {
	return New(DefaultThresholds())
}

// Thresholds returns the extractor's limits.
func (e *Extractor) Thresholds() Thresholds { return e.thresholds }

// ExtractDocument extracts features from a fetched document. Documents
// without real content yield empty features carrying the document text.
func (e *Extractor) ExtractDocument(doc *fetch.Document) *Features {
	if !doc.OK() {
		f := Empty()
		if doc != nil {
			f.Text = doc.Text
		}
		return f
	}
	return e.Extract(doc.HTML)
}

// Extract runs every heuristic over html. The result is always fully populated.
func (e *Extractor) Extract(html string) *Features {
	f := Empty()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return f
	}
	doc.Find("script, style, noscript, template").Remove()

	f.Text = blockText(doc.Selection)

	scalars := ApplyRules(doc, e.rules)
	f.Name = scalars[FieldName]
	f.Title = scalars[FieldTitle]
	f.Location = scalars[FieldLocation]
	f.About = scalars[FieldAbout]

	f.Contact = extractContact(doc, f.Text)
	f.Skills = extractSkills(doc, e.thresholds)
	f.Projects = extractProjects(doc, e.thresholds)
	f.Education = extractEducation(doc)
	f.Experience = extractExperience(doc)
	f.Achievements = extractAchievements(doc)
	return f
}
