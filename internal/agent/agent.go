package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/llm"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

// ModelInvoker is the slice of the model manager the agents call
type ModelInvoker interface {
	Generate(ctx context.Context, prompt string, preset llm.ModelPreset, opts *llm.GenerateOptions) (string, *llm.GenerateMetadata, error)
	GenerateJSON(ctx context.Context, prompt string, preset llm.ModelPreset, dest any, opts *llm.GenerateOptions) (*llm.GenerateMetadata, error)
}

// summarizeProfile renders the compact profile block interpolated into
// agent prompts. Long sections are truncated so a verbose profile does
// not crowd out the instructions.
func summarizeProfile(p *domain.Profile) string {
	if p == nil {
		return "No profile loaded."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	if p.Headline != "" {
		fmt.Fprintf(&b, "Headline: %s\n", p.Headline)
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Location)
	}
	if p.About != "" {
		fmt.Fprintf(&b, "About: %s\n", util.TruncateString(p.About, 400))
	}

	if len(p.Experiences) > 0 {
		b.WriteString("Experience:\n")
		for i, exp := range p.Experiences {
			if i == 6 {
				fmt.Fprintf(&b, "  ... and %d more roles\n", len(p.Experiences)-i)
				break
			}
			fmt.Fprintf(&b, "  - %s%s\n", exp.Label(), dateRangeSuffix(exp))
		}
	}

	if len(p.Educations) > 0 {
		b.WriteString("Education:\n")
		for i, edu := range p.Educations {
			if i == 3 {
				break
			}
			if edu.Degree != "" {
				fmt.Fprintf(&b, "  - %s, %s\n", edu.School, edu.Degree)
			} else {
				fmt.Fprintf(&b, "  - %s\n", edu.School)
			}
		}
	}

	if skills := p.AllSkillNames(); len(skills) > 0 {
		if len(skills) > 25 {
			skills = skills[:25]
		}
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(skills, ", "))
	}
	if len(p.Certifications) > 0 {
		fmt.Fprintf(&b, "Certifications: %d\n", len(p.Certifications))
	}

	return strings.TrimRight(b.String(), "\n")
}

func dateRangeSuffix(exp domain.Experience) string {
	if exp.StartDate == "" {
		return ""
	}
	end := exp.EndDate
	if exp.IsCurrent() {
		end = "Present"
	}
	return fmt.Sprintf(" (%s - %s)", exp.StartDate, end)
}
