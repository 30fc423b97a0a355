package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	projectSelectors = []string{
		".project", "#project", `[class*="project"]`, `[id*="project"]`,
		".portfolio-item", ".work-item", ".case-study", ".app",
		".card", ".item", ".work", ".portfolio",
	}
	projectTitleSelectors = []string{"h3", "h4", ".title", ".name", ".project-title", ".project-name"}
	projectDescSelectors  = []string{"p", ".description", ".desc", ".project-desc", ".summary"}
	projectTechSelectors  = []string{".tech", ".technologies", ".stack", ".tools", ".languages"}
	demoDomains           = []string{"vercel.app", "netlify.app", "herokuapp.com", "render.com", "surge.sh", "firebaseapp.com"}
	demoWords             = []string{"demo", "live", "view"}

	educationSelectors = []string{
		".education", "#education", `[class*="education"]`, `[id*="education"]`,
		".academic", ".degree", ".university", ".college", ".school",
	}
	degreePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:B\.Tech|B\.E\.|B\.S\.|M\.Tech|M\.S\.|Ph\.D|Bachelor|Master|Diploma)`),
		regexp.MustCompile(`(?i)\b(?:Computer Science|Engineering|Information Technology|Software Engineering)\b`),
	}
	yearPattern        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	gpaPattern         = regexp.MustCompile(`(?i)\b(?:GPA|CGPA|Grade):?\s*(\d+\.?\d*)`)
	institutionMarkers = []string{"university", "college", "institute"}
	institutionLine    = []string{"university", "college", "institute", "school"}

	experienceSelectors = []string{
		".experience", "#experience", `[class*="experience"]`, `[id*="experience"]`,
		".work", ".employment", ".career", ".job", ".position",
	}
	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*[ \t]+(?:Company|Corp|Inc|LLC|Ltd|Tech|Solutions|Systems)\b`),
		regexp.MustCompile(`(?i)\b(?:Company|Corp|Inc|LLC|Ltd|Tech|Solutions|Systems)\b`),
	}
	positionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:(?:Senior|Junior|Lead|Staff)\s+)?(?:Full Stack|Frontend|Backend|Software|Web|Mobile|DevOps)\s+(?:Developer|Engineer|Designer|Architect)\b`),
		regexp.MustCompile(`(?i)\b(?:Developer|Engineer|Designer|Manager|Lead|Architect|Consultant|Analyst)\b`),
		regexp.MustCompile(`(?i)\b(?:Full Stack|Frontend|Backend|Software|Web|Mobile|UI/UX|DevOps)\b`),
	}
	durationPattern = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*(?:-|–|to)\s*(?:(?:19|20)\d{2}|present|current|now)\b`)

	achievementSelectors = []string{
		".achievements", "#achievements", `[class*="achievement"]`, `[id*="achievement"]`,
		".awards", `[class*="award"]`, ".certifications", `[class*="certification"]`,
	}
)

func extractProjects(doc *goquery.Document, t Thresholds) []Project {
	projects := []Project{}
	seen := nodeSet{}
	for _, selector := range projectSelectors {
		doc.Find(selector).Each(func(_ int, card *goquery.Selection) {
			if !seen.add(card) {
				return
			}
			p := projectFrom(card, t)
			if runeLen(p.Title) > t.ProjectTitleMinLen {
				projects = append(projects, p)
			}
		})
	}
	return projects
}

func projectFrom(card *goquery.Selection, t Thresholds) Project {
	p := Project{Technologies: []string{}}

	// The first title selector present wins, even when its text is blank.
	for _, sel := range projectTitleSelectors {
		if el := card.Find(sel).First(); el.Length() > 0 {
			p.Title = collapseSpace(el.Text())
			break
		}
	}
	for _, sel := range projectDescSelectors {
		if el := card.Find(sel).First(); el.Length() > 0 {
			if text := collapseSpace(el.Text()); runeLen(text) > t.ProjectDescMinLen {
				p.Description = text
				break
			}
		}
	}
	for _, sel := range projectTechSelectors {
		el := card.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		for _, token := range strings.Split(el.Text(), ",") {
			if token = collapseSpace(token); token != "" {
				p.Technologies = append(p.Technologies, token)
			}
		}
	}
	card.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		lowerHref := strings.ToLower(href)
		label := strings.ToLower(collapseSpace(a.Text()))
		switch {
		case strings.Contains(lowerHref, "github.com") || strings.Contains(label, "github"):
			p.GitHub = href
		case containsAny(lowerHref, demoDomains) || containsAny(label, demoWords):
			p.Demo = href
		}
	})
	return p
}

func extractEducation(doc *goquery.Document) []Education {
	entries := []Education{}
	seen := nodeSet{}
	for _, selector := range educationSelectors {
		container := doc.Find(selector).First()
		if !seen.add(container) {
			continue
		}
		text := blockText(container)
		var e Education
		for _, re := range degreePatterns {
			if m := re.FindString(text); m != "" {
				e.Degree = m
				break
			}
		}
		e.Year = yearPattern.FindString(text)
		if m := gpaPattern.FindStringSubmatch(text); m != nil {
			e.GPA = m[1]
		}
		if containsAny(strings.ToLower(text), institutionMarkers) {
			for _, line := range strings.Split(text, "\n") {
				if containsAny(strings.ToLower(line), institutionLine) {
					e.Institute = strings.TrimSpace(line)
					break
				}
			}
		}
		if e.Institute != "" || e.Degree != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func extractExperience(doc *goquery.Document) []Experience {
	entries := []Experience{}
	seen := nodeSet{}
	for _, selector := range experienceSelectors {
		container := doc.Find(selector).First()
		if !seen.add(container) {
			continue
		}
		text := blockText(container)
		var e Experience
		for _, re := range companyPatterns {
			if m := re.FindString(text); m != "" {
				e.Company = m
				break
			}
		}
		for _, re := range positionPatterns {
			if m := re.FindString(text); m != "" {
				e.Position = m
				break
			}
		}
		e.Duration = durationPattern.FindString(text)
		if e.Company != "" || e.Position != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func extractAchievements(doc *goquery.Document) []string {
	set := newStringSet()
	seen := nodeSet{}
	for _, selector := range achievementSelectors {
		container := doc.Find(selector).First()
		if !seen.add(container) {
			continue
		}
		container.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := collapseSpace(li.Text()); runeLen(text) > 3 {
				set.add(text)
			}
		})
	}
	return set.items
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
