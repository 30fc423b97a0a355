// Package types provides type definitions for structured data used throughout the portfolio-resume system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CandidateRecord is the validated structured resume produced by the extraction pipeline.
// List fields are never nil once a record has passed through Normalize.
type CandidateRecord struct {
	Name                      string                     `json:"name" jsonschema:"description=Full name of the candidate"`
	Summary                   string                     `json:"summary,omitempty" jsonschema:"description=Short professional summary"`
	Education                 []Education                `json:"education" validate:"required"`
	Projects                  []Project                  `json:"projects" validate:"required"`
	Experience                []Experience               `json:"experience" validate:"required"`
	Achievements              []Achievement              `json:"achievements" validate:"required"`
	Skills                    []string                   `json:"skills" validate:"required"`
	PositionsOfResponsibility []PositionOfResponsibility `json:"positions_of_responsibility" validate:"required"`
	ContactInfo               map[string]string          `json:"contact_info" validate:"required"`
}

// Education is one academic entry.
type Education struct {
	InstituteName string `json:"institute_name"`
	DegreeName    string `json:"degree_name"`
	Marks         string `json:"marks" jsonschema:"description=GPA or percentage as written"`
}

// Project is one portfolio project.
type Project struct {
	ProjectName  string   `json:"project_name"`
	AboutProject string   `json:"about_project"`
	SkillsUsed   []string `json:"skills_used"`
}

// Experience is one work entry.
type Experience struct {
	PositionName string   `json:"position_name"`
	CompanyName  string   `json:"company_name"`
	SkillsUsed   []string `json:"skills_used"`
}

// Achievement is one award, certification or competition result.
type Achievement struct {
	AchievementName string `json:"achievement_name"`
	InstituteName   string `json:"institute_name"`
	About           string `json:"about"`
}

// PositionOfResponsibility is a leadership or society role.
type PositionOfResponsibility struct {
	PositionName string `json:"position_name"`
	SocietyName  string `json:"society_name"`
	Description  string `json:"description"`
}

// Normalize replaces nil lists and maps with empty values so the record
// always encodes as [] and {} instead of null. Skills are trimmed, and blank
// or repeated entries are dropped.
func (r *CandidateRecord) Normalize() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].SkillsUsed == nil {
			r.Projects[i].SkillsUsed = []string{}
		}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	for i := range r.Experience {
		if r.Experience[i].SkillsUsed == nil {
			r.Experience[i].SkillsUsed = []string{}
		}
	}
	if r.Achievements == nil {
		r.Achievements = []Achievement{}
	}
	r.Skills = cleanSkills(r.Skills)
	if r.PositionsOfResponsibility == nil {
		r.PositionsOfResponsibility = []PositionOfResponsibility{}
	}
	if r.ContactInfo == nil {
		r.ContactInfo = map[string]string{}
	}
}

// cleanSkills trims skills and drops blanks and repeats, keeping first-seen
// order.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Validate checks that every list field is present.
func (r *CandidateRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
