package enrich

import "github.com/jonathan/portfolio-resume/internal/types"

// FallbackData returns the fixed, fully populated record used whenever a
// conversion cannot produce real data. portfolioURL becomes the demo link of
// the single project.
func FallbackData(portfolioURL string) *types.EnrichedResumeData {
	return &types.EnrichedResumeData{
		Name:  DefaultName,
		Title: "Full Stack Developer",
		About: "Experienced software developer with expertise in modern web technologies and best practices. Passionate about creating scalable, maintainable solutions.",
		ContactInfo: map[string]string{
			"email":    "developer@example.com",
			"phone":    "+1-234-567-8900",
			"github":   "https://github.com/developer",
			"linkedin": "https://linkedin.com/in/developer",
		},
		Skills: []types.SkillCategory{
			{Name: types.CategoryFrontend, Skills: []string{"React", "Next.js", "TypeScript", "Tailwind CSS"}},
			{Name: types.CategoryBackend, Skills: []string{"Node.js", "Python", "Express.js", "FastAPI"}},
			{Name: types.CategoryDatabase, Skills: []string{"MongoDB", "PostgreSQL", "Redis"}},
			{Name: types.CategoryDevOps, Skills: []string{"Docker", "AWS", "Git", "CI/CD"}},
			{Name: types.CategoryOther, Skills: []string{}},
		},
		Projects: []types.EnrichedProject{{
			Name:         "Portfolio Website",
			Description:  "Professional portfolio showcasing skills and projects",
			Technologies: []string{"React", "Next.js", "Tailwind CSS"},
			GitHub:       "https://github.com/developer/portfolio",
			Demo:         portfolioURL,
			Link:         "https://github.com/developer/portfolio",
		}},
		Education: []types.EnrichedEducation{{
			Degree:      DefaultDegree,
			Institution: "University of Technology",
			Duration:    DefaultEduDuration,
			GPA:         DefaultGPA,
		}},
		Experience: []types.EnrichedExperience{{
			Position:    "Full Stack Developer",
			Company:     "Tech Solutions Inc",
			Duration:    DefaultExpDuration,
			Description: DefaultExpDescription,
			Skills:      []string{"React", "Node.js", "MongoDB", "AWS"},
		}},
		Achievements: []types.EnrichedAchievement{{
			Name:        DefaultAchievementName,
			Institution: DefaultAchievementInstitution,
			Description: "Full Stack Development and Cloud Architecture",
		}},
		PositionsOfResponsibility: []types.PositionOfResponsibility{},
	}
}
