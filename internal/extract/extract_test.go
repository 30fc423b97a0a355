package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-resume/internal/fetch"
)

var (
	featureKeys = []string{"name", "title", "location", "about", "contact", "skills", "projects", "education", "experience", "achievements", "text"}
	contactKeys = []string{"email", "phone", "linkedin", "github"}
)

func assertAllKeys(t *testing.T, f *Features) {
	t.Helper()
	raw, err := json.Marshal(f)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, k := range featureKeys {
		require.Contains(t, m, k)
		assert.NotEqual(t, "null", string(m[k]), "field %s must not be null", k)
	}

	var contact map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(m["contact"], &contact))
	for _, k := range contactKeys {
		assert.Contains(t, contact, k)
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtract_AllKeysPresent(t *testing.T) {
	inputs := map[string]string{
		"empty":    "",
		"no match": "<html><body><span>nothing useful</span></body></html>",
		"garbage":  "<<<>>> not html at all",
		"full":     `<h1>Ada Lovelace</h1><div id="skills">Go, Rust</div>`,
	}
	for name, html := range inputs {
		t.Run(name, func(t *testing.T) {
			assertAllKeys(t, Default().Extract(html))
		})
	}
}

func TestFetchThenExtract_AllKeysPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Ada Lovelace</h1><h2>Backend Engineer</h2></body></html>`))
	}))
	defer server.Close()

	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	cfg := fetch.DefaultConfig()
	cfg.Timeout = time.Second
	cfg.RetryTimeout = time.Second
	cfg.RetryDelay = time.Millisecond
	fetcher := fetch.NewResilient(cfg)

	for _, url := range []string{server.URL, downURL, "not a url"} {
		doc := fetcher.Fetch(context.Background(), url)
		f := Default().ExtractDocument(doc)
		assertAllKeys(t, f)
	}

	ok := Default().ExtractDocument(fetcher.Fetch(context.Background(), server.URL))
	assert.Equal(t, "Ada Lovelace", ok.Name)
	assert.Equal(t, "Backend Engineer", ok.Title)

	degraded := Default().ExtractDocument(fetcher.Fetch(context.Background(), downURL))
	assert.Empty(t, degraded.Name)
	assert.Contains(t, degraded.Text, fetch.PlaceholderMarker)
}

func TestExtract_NameRules(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"h1 wins", `<h1>  Ada   Lovelace </h1><div class="name">Other</div>`, "Ada Lovelace"},
		{"empty h1 skipped", `<h1>  </h1><div class="name">Grace Hopper</div>`, "Grace Hopper"},
		{"id contains name", `<span id="full-name">Alan Turing</span>`, "Alan Turing"},
		{"none", `<p>hello</p>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default().Extract(tt.html).Name)
		})
	}
}

func TestExtract_TitleCeiling(t *testing.T) {
	long := strings.Repeat("word ", 30)
	html := `<h2>` + long + `</h2><p class="title">Backend Engineer</p>`

	assert.Equal(t, "Backend Engineer", Default().Extract(html).Title)
}

func TestExtract_AboutThresholds(t *testing.T) {
	long := strings.Repeat("a", 600)
	html := `<div class="about">Too short</div><div class="bio">` + long + `</div>`

	about := Default().Extract(html).About
	assert.Len(t, about, 500)

	custom := New(Thresholds{TitleMaxLen: 100, AboutMinLen: 5, AboutMaxLen: 50, ProjectTitleMinLen: 2, ProjectDescMinLen: 10, SkillTokenMinLen: 2})
	assert.Equal(t, "Too short", custom.Extract(html).About)
}

func TestApplyRules_OrderAndPredicates(t *testing.T) {
	doc := mustDoc(t, `<p class="a">alpha</p><p class="b">beta</p><p class="c">gamma ray</p>`)

	got := ApplyRules(doc, []Rule{
		{Field: FieldName, Selector: ".b"},
		{Field: FieldName, Selector: ".a"},
		{Field: FieldTitle, Selector: ".a", Accept: func(s string) bool { return strings.Contains(s, " ") }},
		{Field: FieldTitle, Selector: ".c", Transform: strings.ToUpper},
		{Field: FieldAbout, Selector: ".missing"},
	})

	assert.Equal(t, "beta", got[FieldName])
	assert.Equal(t, "GAMMA RAY", got[FieldTitle])
	assert.NotContains(t, got, FieldAbout)
}

func TestDefaultRules_Order(t *testing.T) {
	rules := DefaultRules(DefaultThresholds())
	require.NotEmpty(t, rules)

	assert.Equal(t, FieldName, rules[0].Field)
	assert.Equal(t, "h1", rules[0].Selector)

	var lastField Field
	seen := map[Field]bool{}
	for _, r := range rules {
		if r.Field != lastField {
			assert.False(t, seen[r.Field], "rules for %s must be contiguous", r.Field)
			seen[r.Field] = true
			lastField = r.Field
		}
	}
}

func TestExtract_Contact(t *testing.T) {
	html := `<body>
		<p>Write to text@example.com</p>
		<p>+1 (555) 123-4567</p>
		<a href="mailto:ada@example.com?subject=Hi">Email</a>
		<a href="https://www.linkedin.com/in/ada">Connect</a>
		<a href="https://github.com/old">Code</a>
		<a href="https://github.com/ada">My GitHub</a>
	</body>`

	c := Default().Extract(html).Contact
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Equal(t, "+15551234567", c.Phone)
	assert.Equal(t, "https://www.linkedin.com/in/ada", c.LinkedIn)
	assert.Equal(t, "https://github.com/ada", c.GitHub)
}

func TestExtract_ContactTelAnchorOverridesText(t *testing.T) {
	html := `<p>Call 555 000 1111</p><a href="tel:+44 20 7946 0958">Call me</a>`

	c := Default().Extract(html).Contact
	assert.Equal(t, "+44 20 7946 0958", c.Phone)
}

func TestExtract_MailtoWithoutAtIgnored(t *testing.T) {
	html := `<p>hi@ada.dev</p><a href="mailto:nobody">Mail</a>`
	assert.Equal(t, "hi@ada.dev", Default().Extract(html).Contact.Email)
}

func TestExtract_Skills(t *testing.T) {
	html := `<section id="skills">
		<h2>Skills</h2>
		<ul><li>React</li><li>Node.js</li><li>golang</li><li>   </li></ul>
		<p>Terraform, Ansible, Go</p>
	</section>`

	assert.Equal(t, []string{"React", "Node.js", "Go", "Terraform", "Ansible"}, Default().Extract(html).Skills)
}

func TestExtract_SkillsDeduplicated(t *testing.T) {
	html := `<div class="skills">React, React, react, CI/CD</div><div class="tech-stack">React</div>`

	assert.Equal(t, []string{"React", "react", "CI/CD"}, Default().Extract(html).Skills)
}

func TestExtract_SkillFamilies(t *testing.T) {
	tests := []struct {
		text   string
		family int
		want   []string
	}{
		{"typescript, Python and Rust", 0, []string{"typescript", "Python", "Rust"}},
		{"PostgreSQL on AWS with Docker", 1, []string{"PostgreSQL", "AWS", "Docker"}},
		{"Next.js with Tailwind and Material-UI", 2, []string{"Next.js", "Tailwind", "Material-UI"}},
		{"GraphQL, CI/CD, Scrum", 3, []string{"GraphQL", "CI/CD", "Scrum"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, SkillFamilies[tt.family].FindAllString(tt.text, -1))
		})
	}
}

func TestExtract_ProjectTitleBoundary(t *testing.T) {
	html := `
	<div class="project"><h3>ab</h3><p>A description that is long enough</p></div>
	<div class="project"><h3>abc</h3><p>A description that is long enough</p></div>`

	projects := Default().Extract(html).Projects
	require.Len(t, projects, 1)
	assert.Equal(t, "abc", projects[0].Title)
}

func TestExtract_ProjectFields(t *testing.T) {
	html := `<div class="project-card">
		<h3>Weather App</h3>
		<p>Short</p>
		<p class="description">Forecasts with charts and maps</p>
		<span class="tech">React, D3 , Node.js,</span>
		<a href="https://github.com/ada/weather">Code</a>
		<a href="https://weather.vercel.app">Open</a>
	</div>
	<div class="card"><h4>Chess Engine</h4><a href="https://ada.dev/chess">Live Demo</a></div>`

	projects := Default().Extract(html).Projects
	require.Len(t, projects, 2)

	p := projects[0]
	assert.Equal(t, "Weather App", p.Title)
	assert.Equal(t, "Forecasts with charts and maps", p.Description)
	assert.Equal(t, []string{"React", "D3", "Node.js"}, p.Technologies)
	assert.Equal(t, "https://github.com/ada/weather", p.GitHub)
	assert.Equal(t, "https://weather.vercel.app", p.Demo)

	assert.Equal(t, "Chess Engine", projects[1].Title)
	assert.Equal(t, "https://ada.dev/chess", projects[1].Demo)
	assert.Empty(t, projects[1].Description)
	assert.NotNil(t, projects[1].Technologies)
}

func TestExtract_ProjectFloorIsConfigurable(t *testing.T) {
	th := DefaultThresholds()
	th.ProjectTitleMinLen = 5
	html := `<div class="project"><h3>abcde</h3></div><div class="project"><h3>abcdef</h3></div>`

	projects := New(th).Extract(html).Projects
	require.Len(t, projects, 1)
	assert.Equal(t, "abcdef", projects[0].Title)
}

func TestExtract_Education(t *testing.T) {
	html := `<section class="education">
		<h3>Stanford University</h3>
		<p>B.S. Computer Science, 2018</p>
		<p>GPA: 3.9</p>
	</section>
	<div class="degree">Diploma in Engineering 1999</div>
	<div class="school">Nothing structured here</div>`

	edu := Default().Extract(html).Education
	require.Len(t, edu, 2)
	assert.Equal(t, Education{Institute: "Stanford University", Degree: "B.S.", Year: "2018", GPA: "3.9"}, edu[0])
	assert.Equal(t, Education{Degree: "Diploma", Year: "1999"}, edu[1])
}

func TestYearPatternRange(t *testing.T) {
	assert.Equal(t, "1900", yearPattern.FindString("since 1900"))
	assert.Equal(t, "2099", yearPattern.FindString("until 2099"))
	assert.Empty(t, yearPattern.FindString("in 1899 or 2100 or 20245"))
}

func TestExtract_Experience(t *testing.T) {
	html := `<section id="experience">
		<h3>Senior Backend Engineer</h3>
		<p>Acme Solutions</p>
		<p>2019 - Present</p>
	</section>
	<div class="career"><p>Volunteered at the library</p></div>`

	exp := Default().Extract(html).Experience
	require.Len(t, exp, 1)
	assert.Equal(t, Experience{Company: "Acme Solutions", Position: "Senior Backend Engineer", Duration: "2019 - Present"}, exp[0])
}

func TestExtract_Achievements(t *testing.T) {
	html := `<div class="awards"><ul><li>Hackathon Winner 2022</li><li>AWS Certified</li><li>ok</li><li>AWS Certified</li></ul></div>`

	assert.Equal(t, []string{"Hackathon Winner 2022", "AWS Certified"}, Default().Extract(html).Achievements)
}

func TestExtract_IgnoresScripts(t *testing.T) {
	html := `<script>var email = "bot@spam.io";</script><h1>Ada</h1>`

	f := Default().Extract(html)
	assert.Empty(t, f.Contact.Email)
	assert.NotContains(t, f.Text, "bot@spam.io")
}
