// Package extract derives candidate fields from portfolio HTML using ordered
// selector rules and regular expressions. Extraction is best-effort: it never
// fails, and fields it cannot find are left empty.
package extract

import "unicode/utf8"

// Features holds everything the heuristics found on one page. Every field is
// always present in the JSON encoding.
type Features struct {
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Location     string       `json:"location"`
	About        string       `json:"about"`
	Contact      Contact      `json:"contact"`
	Skills       []string     `json:"skills"`
	Projects     []Project    `json:"projects"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Achievements []string     `json:"achievements"`
	Text         string       `json:"text"`
}

// Contact holds contact fields and profile links.
type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Project is a portfolio project card.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHub       string   `json:"github"`
	Demo         string   `json:"demo"`
}

// Education is one education block.
type Education struct {
	Institute string `json:"institute"`
	Degree    string `json:"degree"`
	Year      string `json:"year"`
	GPA       string `json:"gpa"`
}

// Experience is one work block.
type Experience struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Duration string `json:"duration"`
}

// Thresholds are the tunable length limits used by the heuristics.
type Thresholds struct {
	// TitleMaxLen rejects title candidates at or above this many characters.
	TitleMaxLen int
	// AboutMinLen requires about text longer than this.
	AboutMinLen int
	// AboutMaxLen truncates about text.
	AboutMaxLen int
	// ProjectTitleMinLen requires project titles longer than this.
	ProjectTitleMinLen int
	// ProjectDescMinLen requires project descriptions longer than this.
	ProjectDescMinLen int
	// SkillTokenMinLen requires comma-split skill tokens longer than this.
	SkillTokenMinLen int
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TitleMaxLen:        100,
		AboutMinLen:        20,
		AboutMaxLen:        500,
		ProjectTitleMinLen: 2,
		ProjectDescMinLen:  10,
		SkillTokenMinLen:   2,
	}
}

// Empty returns a Features value with every list initialized.
func Empty() *Features {
	return &Features{
		Skills:       []string{},
		Projects:     []Project{},
		Education:    []Education{},
		Experience:   []Experience{},
		Achievements: []string{},
	}
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func truncateRunes(s string, n int) string {
	if n <= 0 || runeLen(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
