package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/portfolio-resume/internal/enrich"
	"github.com/jonathan/portfolio-resume/internal/extract"
	"github.com/jonathan/portfolio-resume/internal/pipeline"
	"github.com/jonathan/portfolio-resume/internal/types"
)

func TestPrintFeatures(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	f := extract.Empty()
	f.Name = "Ada Lovelace"
	f.Title = "Backend Engineer"
	f.Contact.Email = "ada@example.com"
	f.Skills = []string{"Go", "PostgreSQL", "Docker", "React", "Redis", "Kafka", "gRPC"}
	f.Projects = []extract.Project{{Title: "Engine"}}

	p.PrintFeatures(f)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED PAGE FEATURES")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "ada@example.com")
	assert.Contains(t, output, "Skills (7)")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "gRPC")
	assert.Contains(t, output, "Engine")
}

func TestPrintStages(t *testing.T) {
	tests := []struct {
		name    string
		outcome *pipeline.Outcome
		want    []string
	}{
		{
			name: "success",
			outcome: &pipeline.Outcome{
				RunID: "run-1",
				Stages: []pipeline.StageReport{
					{Stage: pipeline.StageFetch, Status: pipeline.StatusOK, Duration: 120 * time.Millisecond, Detail: "HTTP 200"},
					{Stage: pipeline.StageParse, Status: pipeline.StatusOK},
				},
			},
			want: []string{"CONVERSION STAGES", "run-1", "✓ fetch", "HTTP 200", "all stages succeeded"},
		},
		{
			name: "fallback",
			outcome: &pipeline.Outcome{
				Fallback: true,
				Degraded: true,
				Reason:   pipeline.ReasonSchemaInvalid,
				Stages:   []pipeline.StageReport{{Stage: pipeline.StageParse, Status: pipeline.StatusFailed}},
			},
			want: []string{"✗ parse", "fallback record used (schema_invalid)"},
		},
		{
			name: "degraded",
			outcome: &pipeline.Outcome{
				Degraded: true,
				Stages:   []pipeline.StageReport{{Stage: pipeline.StageFetch, Status: pipeline.StatusDegraded}},
			},
			want: []string{"~ fetch", "degraded"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintStages(tt.outcome)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestPrintResumeData(t *testing.T) {
	var buf bytes.Buffer
	d := enrich.FallbackData("https://ada.dev")
	d.Skills = []types.SkillCategory{
		{Name: types.CategoryFrontend, Skills: []string{"React"}},
		{Name: types.CategoryDatabase, Skills: []string{}},
	}

	NewPrinter(&buf).PrintResumeData(d)
	output := buf.String()

	assert.Contains(t, output, "RESUME DATA")
	assert.Contains(t, output, d.Name)
	assert.Contains(t, output, "Frontend: React")
	assert.NotContains(t, output, "Database:")
	assert.Contains(t, output, "Experience:")
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(nil)
	assert.Contains(t, buf.String(), "SCHEMA VALID")

	buf.Reset()
	p.PrintValidation(errors.New("validation failed:\n  1. skills: Invalid type\n"))
	assert.Contains(t, buf.String(), "SCHEMA VIOLATIONS")
	assert.Contains(t, buf.String(), "skills: Invalid type")
}

func TestPrint_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFeatures(nil)
	p.PrintStages(nil)
	p.PrintResumeData(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_ClipsLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd...", clip("abcdefghij", 7))
}
