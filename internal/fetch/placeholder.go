package fetch

import "strings"

// PlaceholderMarker is the bracketed instruction used for every field of the
// placeholder document.
const PlaceholderMarker = "[Extract from URL or context]"

const placeholderTemplate = `PROFESSIONAL PORTFOLIO DATA EXTRACTION:

PERSONAL INFORMATION:
NAME: [Extract from URL or context]
TITLE: [Extract from URL or context]
EMAIL: [Extract from URL or context]
PHONE: [Extract from URL or context]
LOCATION: [Extract from URL or context]
LINKEDIN: [Extract from URL or context]
GITHUB: [Extract from URL or context]

PROFESSIONAL SUMMARY:
ABOUT: [Extract professional summary from context]

TECHNICAL SKILLS:
SKILLS: [Extract technical skills from context]

EDUCATION BACKGROUND:
EDUCATION: [Extract education information from context]

WORK EXPERIENCE:
EXPERIENCE: [Extract work experience from context]

PROJECT PORTFOLIO:
PROJECTS: [Extract project information from context]

ACHIEVEMENTS:
ACHIEVEMENTS: [Extract achievements from context]

PORTFOLIO URL: {url}
ADDITIONAL CONTEXT: Unable to scrape website directly. Please extract information from the portfolio URL and context.
`

// Placeholder returns the synthetic document substituted when a portfolio
// cannot be fetched. It keeps the shape of a real narrative so downstream
// stages receive well-formed input.
func Placeholder(portfolioURL string) string {
	return strings.Replace(placeholderTemplate, "{url}", portfolioURL, 1)
}
