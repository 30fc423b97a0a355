package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var skillSelectors = []string{
	".skills", "#skills", `[class*="skill"]`, `[id*="skill"]`,
	".technologies", ".tech-stack", ".tools", ".languages",
	".frontend", ".backend", ".database", ".frameworks",
}

// SkillFamilies are the curated keyword families matched case-insensitively
// inside skills containers: languages and frontend, data stores and cloud,
// backend frameworks, then protocols and process terms.
var SkillFamilies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:React|Angular|Vue|JavaScript|TypeScript|HTML|CSS|Node\.js|Python|Java|C\+\+|C#|PHP|Ruby|Go|Rust|Swift|Kotlin|Dart)\b`),
	regexp.MustCompile(`(?i)\b(?:MongoDB|PostgreSQL|MySQL|SQLite|Redis|Firebase|Supabase|AWS|Azure|GCP|Docker|Kubernetes|Git|GitHub|GitLab)\b`),
	regexp.MustCompile(`(?i)\b(?:Express|FastAPI|Django|Flask|Spring|Laravel|Rails|Next\.js|Nuxt\.js|Tailwind|Bootstrap|Material-UI|Ant Design)\b`),
	regexp.MustCompile(`(?i)\b(?:REST|GraphQL|JWT|OAuth|Jest|Cypress|Selenium|Postman|Swagger|CI/CD|Agile|Scrum|MVC|MVVM)\b`),
}

func extractSkills(doc *goquery.Document, t Thresholds) []string {
	set := newStringSet()
	seen := nodeSet{}
	for _, selector := range skillSelectors {
		container := doc.Find(selector).First()
		if !seen.add(container) {
			continue
		}
		text := blockText(container)
		for _, family := range SkillFamilies {
			for _, m := range family.FindAllString(text, -1) {
				set.add(m)
			}
		}
		for _, line := range strings.Split(text, "\n") {
			if !strings.Contains(line, ",") {
				continue
			}
			for _, token := range strings.Split(line, ",") {
				token = strings.TrimSpace(token)
				if runeLen(token) > t.SkillTokenMinLen {
					set.add(token)
				}
			}
		}
	}
	return set.items
}
