package enrich

import (
	"strings"

	"github.com/jonathan/portfolio-resume/internal/types"
)

type titleRule struct {
	keywords []string
	title    string
}

// FallbackTitle is returned when no title rule matches.
const FallbackTitle = "Software Developer"

var titleRules = []titleRule{
	{[]string{"full stack", "fullstack"}, "Senior Full Stack Developer"},
	{[]string{"frontend", "react", "vue", "angular"}, "Frontend Developer"},
	{[]string{"backend", "node", "python", "java"}, "Backend Developer"},
	{[]string{"devops", "aws", "docker", "kubernetes"}, "DevOps Engineer"},
}

// InferTitle picks a professional title from the skills. Rules are checked in
// order against the lower-cased, space-joined skill list.
func InferTitle(skills []string) string {
	text := strings.ToLower(strings.Join(skills, " "))
	for _, rule := range titleRules {
		if containsAny(text, rule.keywords) {
			return rule.title
		}
	}
	return FallbackTitle
}

type category struct {
	name     string
	keywords []string
}

var categories = []category{
	{types.CategoryFrontend, []string{"html", "css", "javascript", "react", "vue", "angular", "next", "tailwind"}},
	{types.CategoryBackend, []string{"node", "python", "java", "php", "express", "fastapi", "django"}},
	{types.CategoryDatabase, []string{"mongodb", "postgresql", "mysql", "redis", "sql"}},
	{types.CategoryDevOps, []string{"docker", "kubernetes", "aws", "git", "ci/cd", "jenkins"}},
}

// Categories lists the category names in presentation order.
func Categories() []string {
	names := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		names = append(names, c.name)
	}
	return append(names, types.CategoryOther)
}

// Categorize groups skills into the five presentation categories. Every
// category is present, and every distinct input element lands unchanged in
// exactly one of them: the first family with a keyword contained in the
// trimmed, lower-cased skill, else Other. Cleaning belongs to
// CandidateRecord.Normalize.
func Categorize(skills []string) []types.SkillCategory {
	out := make([]types.SkillCategory, 0, len(categories)+1)
	for _, name := range Categories() {
		out = append(out, types.SkillCategory{Name: name, Skills: []string{}})
	}

	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}

		idx := len(categories)
		lower := strings.ToLower(strings.TrimSpace(skill))
		for i, c := range categories {
			if lower != "" && containsAny(lower, c.keywords) {
				idx = i
				break
			}
		}
		out[idx].Skills = append(out[idx].Skills, skill)
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
