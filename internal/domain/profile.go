package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProfileSource identifies where a profile document came from
type ProfileSource string

const (
	ProfileSourceLinkedIn ProfileSource = "linkedin"
	ProfileSourceResume   ProfileSource = "resume"
)

// Profile is the normalized profile document produced by the scraper or
// the resume importer. The JSON shape is persisted inside session files,
// so field tags are stable.
type Profile struct {
	Source          ProfileSource  `json:"source"`
	URL             string         `json:"url,omitempty"`
	Username        string         `json:"username,omitempty"`
	Name            string         `json:"name"`
	Headline        string         `json:"headline"`
	About           string         `json:"about"`
	Location        string         `json:"location"`
	CurrentCompany  string         `json:"current_company,omitempty"`
	FollowerCount   int            `json:"follower_count,omitempty"`
	ConnectionCount int            `json:"connection_count,omitempty"`
	IsCreator       bool           `json:"is_creator,omitempty"`
	IsPremium       bool           `json:"is_premium,omitempty"`
	Experiences     []Experience   `json:"experiences"`
	Educations      []Education    `json:"educations"`
	Certifications  []Certification `json:"certifications"`
	Skills          []string       `json:"skills"`
	SkillsDetailed  []SkillDetail  `json:"skills_detailed,omitempty"`
	ScrapedAt       time.Time      `json:"scraped_at"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// IsCurrent reports whether the position is ongoing
func (e *Experience) IsCurrent() bool {
	end := strings.ToLower(strings.TrimSpace(e.EndDate))
	return end == "" || end == "present"
}

func (e *Experience) Label() string {
	if e.Company == "" {
		return e.Title
	}
	return fmt.Sprintf("%s at %s", e.Title, e.Company)
}

type Education struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartYear    string `json:"start_year,omitempty"`
	EndYear      string `json:"end_year,omitempty"`
}

type Certification struct {
	Name      string `json:"name"`
	Issuer    string `json:"issuer,omitempty"`
	IssueDate string `json:"issue_date,omitempty"`
}

type SkillDetail struct {
	Name               string `json:"name"`
	EndorsementCount   int    `json:"endorsement_count"`
	RelatedExperiences int    `json:"related_experiences"`
}

// LatestExperience returns the most recent position, preferring a current
// one, else the first entry (the actor returns newest first).
func (p *Profile) LatestExperience() *Experience {
	for i := range p.Experiences {
		if p.Experiences[i].IsCurrent() {
			return &p.Experiences[i]
		}
	}
	if len(p.Experiences) > 0 {
		return &p.Experiences[0]
	}
	return nil
}

// AllSkillNames merges the flat skill list with detailed skill names,
// preserving order and dropping duplicates.
func (p *Profile) AllSkillNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0, len(p.Skills)+len(p.SkillsDetailed))

	add := func(name string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}

	for _, s := range p.Skills {
		add(s)
	}
	for _, d := range p.SkillsDetailed {
		add(d.Name)
	}
	return names
}

// FullText renders the profile as one plain-text block for embedding
func (p *Profile) FullText() string {
	var b strings.Builder

	b.WriteString(p.Name)
	if p.Headline != "" {
		b.WriteString(". ")
		b.WriteString(p.Headline)
	}
	if p.About != "" {
		b.WriteString("\n")
		b.WriteString(p.About)
	}
	for _, exp := range p.Experiences {
		b.WriteString("\n")
		b.WriteString(exp.Label())
		if exp.Description != "" {
			b.WriteString(": ")
			b.WriteString(exp.Description)
		}
	}
	if skills := p.AllSkillNames(); len(skills) > 0 {
		b.WriteString("\nSkills: ")
		b.WriteString(strings.Join(skills, ", "))
	}

	return b.String()
}
