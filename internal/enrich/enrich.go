// Package enrich turns a validated CandidateRecord into presentation-ready
// resume data: inferred title, categorized skills, normalized contact links and
// defaults for missing sub-fields. Everything here is pure and deterministic.
package enrich

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/portfolio-resume/internal/types"
)

// DefaultName is used when the record carries no name.
const DefaultName = "Professional Developer"

// Project defaults.
const (
	DefaultProjectName        = "Web Application"
	DefaultProjectDescription = "Professional web application built with modern technologies"
	DefaultProjectLink        = "https://github.com/username/project"
)

// Education defaults.
const (
	DefaultDegree      = "Bachelor of Science in Computer Science"
	DefaultInstitution = "University"
	DefaultEduDuration = "2020-2024"
	DefaultGPA         = "3.8/4.0"
)

// Experience defaults.
const (
	DefaultPosition       = "Software Developer"
	DefaultCompany        = "Technology Company"
	DefaultExpDuration    = "2022-Present"
	DefaultExpDescription = "Developed and maintained scalable applications"
)

// Achievement defaults.
const (
	DefaultAchievementName        = "Professional Certification"
	DefaultAchievementInstitution = "Professional Organization"
	DefaultAchievementDescription = "Technical expertise and professional development"
)

// DefaultProjectTechnologies and DefaultExperienceSkills fill empty skill lists.
var (
	DefaultProjectTechnologies = []string{"React", "Node.js"}
	DefaultExperienceSkills    = []string{"JavaScript", "React", "Node.js"}
)

// SummarySkillCount is how many skills the synthesized summary names.
const SummarySkillCount = 5

var (
	githubRepoPattern = regexp.MustCompile(`github\.com/[a-zA-Z0-9-]+/[a-zA-Z0-9-]+`)
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	demoHints         = []string{"demo", "live", "vercel", "netlify", "heroku"}
)

// Enrich converts record into EnrichedResumeData. The record is not modified.
func Enrich(record *types.CandidateRecord) *types.EnrichedResumeData {
	if record == nil {
		record = &types.CandidateRecord{}
	}
	name := strings.TrimSpace(record.Name)
	if name == "" {
		name = DefaultName
	}
	return &types.EnrichedResumeData{
		Name:                      name,
		Title:                     InferTitle(record.Skills),
		About:                     Summary(record),
		ContactInfo:               NormalizeContact(record.ContactInfo),
		Skills:                    Categorize(record.Skills),
		Projects:                  Projects(record.Projects),
		Education:                 Education(record.Education),
		Experience:                Experience(record.Experience),
		Achievements:              Achievements(record.Achievements),
		PositionsOfResponsibility: positions(record.PositionsOfResponsibility),
	}
}

// Summary returns the record's own summary, or synthesizes one from the
// inferred title and the first skills.
func Summary(record *types.CandidateRecord) string {
	if s := strings.TrimSpace(record.Summary); s != "" {
		return s
	}
	title := InferTitle(record.Skills)
	skills := record.Skills
	if len(skills) > SummarySkillCount {
		skills = skills[:SummarySkillCount]
	}
	expertise := "modern software development"
	if len(skills) > 0 {
		expertise = strings.Join(skills, ", ")
	}
	if len(record.Experience) > 0 {
		return fmt.Sprintf("%s with hands-on industry experience across %d roles and expertise in %s. Passionate about creating scalable, maintainable solutions and contributing to innovative projects.",
			title, len(record.Experience), expertise)
	}
	return fmt.Sprintf("%s with expertise in %s. Passionate about modern technologies and best practices in software development.",
		title, expertise)
}

// NormalizeContact lower-cases keys, prefixes scheme-less github and linkedin
// values with https://, and drops empty entries.
func NormalizeContact(contact map[string]string) map[string]string {
	keys := make([]string, 0, len(contact))
	for k := range contact {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// On a collision a key already in normalized form wins, otherwise the
	// last in sorted order.
	out := make(map[string]string, len(contact))
	exact := make(map[string]bool, len(contact))
	for _, k := range keys {
		key := strings.ToLower(strings.TrimSpace(k))
		v := strings.TrimSpace(contact[k])
		if key == "" || v == "" || (exact[key] && k != key) {
			continue
		}
		if (key == "github" || key == "linkedin") && !hasScheme(v) {
			v = "https://" + v
		}
		out[key] = v
		exact[key] = exact[key] || k == key
	}
	return out
}

func hasScheme(v string) bool {
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Projects fills project defaults and lifts GitHub and demo links out of the
// description.
func Projects(projects []types.Project) []types.EnrichedProject {
	out := make([]types.EnrichedProject, 0, len(projects))
	for _, p := range projects {
		github, demo := projectLinks(p.AboutProject)
		link := DefaultProjectLink
		switch {
		case github != "":
			link = github
		case demo != "":
			link = demo
		}
		out = append(out, types.EnrichedProject{
			Name:         orDefault(p.ProjectName, DefaultProjectName),
			Description:  orDefault(p.AboutProject, DefaultProjectDescription),
			Technologies: orDefaultList(p.SkillsUsed, DefaultProjectTechnologies),
			GitHub:       github,
			Demo:         demo,
			Link:         link,
		})
	}
	return out
}

func projectLinks(description string) (github, demo string) {
	desc := strings.ToLower(description)
	if m := githubRepoPattern.FindString(desc); m != "" {
		github = "https://" + m
	}
	for _, hint := range demoHints {
		if strings.Contains(desc, hint) {
			demo = urlPattern.FindString(desc)
			break
		}
	}
	return github, demo
}

// Education fills education defaults.
func Education(entries []types.Education) []types.EnrichedEducation {
	out := make([]types.EnrichedEducation, 0, len(entries))
	for _, e := range entries {
		out = append(out, types.EnrichedEducation{
			Degree:      orDefault(e.DegreeName, DefaultDegree),
			Institution: orDefault(e.InstituteName, DefaultInstitution),
			Duration:    DefaultEduDuration,
			GPA:         orDefault(e.Marks, DefaultGPA),
		})
	}
	return out
}

// Experience fills experience defaults.
func Experience(entries []types.Experience) []types.EnrichedExperience {
	out := make([]types.EnrichedExperience, 0, len(entries))
	for _, e := range entries {
		out = append(out, types.EnrichedExperience{
			Position:    orDefault(e.PositionName, DefaultPosition),
			Company:     orDefault(e.CompanyName, DefaultCompany),
			Duration:    DefaultExpDuration,
			Description: DefaultExpDescription,
			Skills:      orDefaultList(e.SkillsUsed, DefaultExperienceSkills),
		})
	}
	return out
}

// Achievements fills achievement defaults.
func Achievements(entries []types.Achievement) []types.EnrichedAchievement {
	out := make([]types.EnrichedAchievement, 0, len(entries))
	for _, a := range entries {
		out = append(out, types.EnrichedAchievement{
			Name:        orDefault(a.AchievementName, DefaultAchievementName),
			Institution: orDefault(a.InstituteName, DefaultAchievementInstitution),
			Description: orDefault(a.About, DefaultAchievementDescription),
		})
	}
	return out
}

func positions(entries []types.PositionOfResponsibility) []types.PositionOfResponsibility {
	out := make([]types.PositionOfResponsibility, 0, len(entries))
	return append(out, entries...)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func orDefaultList(v, def []string) []string {
	if len(v) == 0 {
		v = def
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}
