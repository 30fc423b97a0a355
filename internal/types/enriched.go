package types

// Skill category names in presentation order.
const (
	CategoryFrontend = "Frontend"
	CategoryBackend  = "Backend"
	CategoryDatabase = "Database"
	CategoryDevOps   = "DevOps & Tools"
	CategoryOther    = "Other"
)

// EnrichedResumeData is the presentation-ready record consumed by every renderer.
type EnrichedResumeData struct {
	Name                      string                     `json:"name"`
	Title                     string                     `json:"title"`
	About                     string                     `json:"about"`
	ContactInfo               map[string]string          `json:"contact_info"`
	Skills                    []SkillCategory            `json:"skills"`
	Projects                  []EnrichedProject          `json:"projects"`
	Education                 []EnrichedEducation        `json:"education"`
	Experience                []EnrichedExperience       `json:"experience"`
	Achievements              []EnrichedAchievement      `json:"achievements"`
	PositionsOfResponsibility []PositionOfResponsibility `json:"positions_of_responsibility"`
}

// SkillCategory groups skills under one heading.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// EnrichedProject is a project with every sub-field filled.
type EnrichedProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHub       string   `json:"github"`
	Demo         string   `json:"demo"`
	Link         string   `json:"link"`
}

// EnrichedEducation is an education entry with every sub-field filled.
type EnrichedEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
	GPA         string `json:"gpa"`
}

// EnrichedExperience is a work entry with every sub-field filled.
type EnrichedExperience struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// EnrichedAchievement is an achievement with every sub-field filled.
type EnrichedAchievement struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Description string `json:"description"`
}

// SkillsIn returns the skills of the named category, or nil when absent.
func (d *EnrichedResumeData) SkillsIn(category string) []string {
	for _, c := range d.Skills {
		if c.Name == category {
			return c.Skills
		}
	}
	return nil
}

// AllSkills flattens every category in order.
func (d *EnrichedResumeData) AllSkills() []string {
	var all []string
	for _, c := range d.Skills {
		all = append(all, c.Skills...)
	}
	return all
}

// Contact returns a contact value by key, or "".
func (d *EnrichedResumeData) Contact(key string) string {
	if d.ContactInfo == nil {
		return ""
	}
	return d.ContactInfo[key]
}

// Normalize replaces nil lists and maps so the record renders without nil checks.
// Data decoded from client requests may omit any of them.
func (d *EnrichedResumeData) Normalize() {
	if d.ContactInfo == nil {
		d.ContactInfo = map[string]string{}
	}
	if d.Skills == nil {
		d.Skills = []SkillCategory{}
	}
	for i := range d.Skills {
		if d.Skills[i].Skills == nil {
			d.Skills[i].Skills = []string{}
		}
	}
	if d.Projects == nil {
		d.Projects = []EnrichedProject{}
	}
	if d.Education == nil {
		d.Education = []EnrichedEducation{}
	}
	if d.Experience == nil {
		d.Experience = []EnrichedExperience{}
	}
	if d.Achievements == nil {
		d.Achievements = []EnrichedAchievement{}
	}
	if d.PositionsOfResponsibility == nil {
		d.PositionsOfResponsibility = []PositionOfResponsibility{}
	}
}
