package importer

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
)

const sampleResume = `John Carpenter
Senior Software Engineer
john@example.com
(555) 123-4567

Summary
Backend engineer with ten years of experience building APIs.

Experience

Senior Software Engineer at Acme Corp
Jan 2020 - Present
- Built the payments platform
- Mentored four engineers

Software Engineer
Initech
2016 - 2019
Shipped internal tooling

Education
Bachelor of Science in Computer Science
State University, 2012 - 2016

Skills
Go, PostgreSQL; Kubernetes | Docker
Leadership

Certifications
- AWS Certified Solutions Architect - Amazon
`

func TestImportResumeParsesPlainText(t *testing.T) {
	im := NewImporter(zap.NewNop())

	profile, err := im.ImportResume("resume.txt", []byte(sampleResume))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Source != domain.ProfileSourceResume {
		t.Fatalf("expected resume source, got %q", profile.Source)
	}
	if profile.Name != "John Carpenter" {
		t.Fatalf("expected name John Carpenter, got %q", profile.Name)
	}
	if profile.Headline != "Senior Software Engineer" {
		t.Fatalf("expected headline from preamble, got %q", profile.Headline)
	}
	if !strings.Contains(profile.About, "ten years of experience") {
		t.Fatalf("expected summary section in About, got %q", profile.About)
	}

	if len(profile.Experiences) != 2 {
		t.Fatalf("expected 2 experiences, got %d", len(profile.Experiences))
	}
	first := profile.Experiences[0]
	if first.Title != "Senior Software Engineer" || first.Company != "Acme Corp" {
		t.Fatalf("unexpected first experience: %+v", first)
	}
	if first.StartDate != "Jan 2020" || first.EndDate != "Present" {
		t.Fatalf("expected Jan 2020..Present, got %q..%q", first.StartDate, first.EndDate)
	}
	if !strings.Contains(first.Description, "payments platform") {
		t.Fatalf("expected bullets merged into description, got %q", first.Description)
	}
	second := profile.Experiences[1]
	if second.Company != "Initech" {
		t.Fatalf("expected standalone company line, got %q", second.Company)
	}
	if second.StartDate != "2016" || second.EndDate != "2019" {
		t.Fatalf("expected 2016..2019, got %q..%q", second.StartDate, second.EndDate)
	}

	if len(profile.Educations) != 1 {
		t.Fatalf("expected 1 education, got %d", len(profile.Educations))
	}
	edu := profile.Educations[0]
	if edu.Degree != "Bachelor of Science in Computer Science" {
		t.Fatalf("unexpected degree: %q", edu.Degree)
	}
	if edu.School != "State University" {
		t.Fatalf("unexpected school: %q", edu.School)
	}
	if edu.StartYear != "2012" || edu.EndYear != "2016" {
		t.Fatalf("expected 2012..2016, got %q..%q", edu.StartYear, edu.EndYear)
	}

	wantSkills := []string{"Go", "PostgreSQL", "Kubernetes", "Docker", "Leadership"}
	if len(profile.Skills) != len(wantSkills) {
		t.Fatalf("expected %d skills, got %v", len(wantSkills), profile.Skills)
	}
	for i, want := range wantSkills {
		if profile.Skills[i] != want {
			t.Fatalf("expected skill %q at %d, got %q", want, i, profile.Skills[i])
		}
	}

	if len(profile.Certifications) != 1 {
		t.Fatalf("expected 1 certification, got %d", len(profile.Certifications))
	}
	cert := profile.Certifications[0]
	if cert.Name != "AWS Certified Solutions Architect" || cert.Issuer != "Amazon" {
		t.Fatalf("unexpected certification: %+v", cert)
	}
}

func TestImportResumeRejectsUnsupportedFormat(t *testing.T) {
	im := NewImporter(zap.NewNop())
	if _, err := im.ImportResume("resume.rtf", []byte("content")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestImportResumeRejectsEmptyFile(t *testing.T) {
	im := NewImporter(zap.NewNop())
	if _, err := im.ImportResume("resume.txt", nil); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestImportResumeRejectsOversizedFile(t *testing.T) {
	im := NewImporter(zap.NewNop())
	data := make([]byte, constants.InputLimits.MaxResumeBytes+1)
	if _, err := im.ImportResume("resume.txt", data); err == nil {
		t.Fatal("expected error for oversized file")
	}
}

func TestImportResumeRejectsContentFreeText(t *testing.T) {
	im := NewImporter(zap.NewNop())
	text := "john@example.com\nlinkedin.com/in/john\n(555) 123-4567\n"
	if _, err := im.ImportResume("resume.txt", []byte(text)); err == nil {
		t.Fatal("expected error when nothing extractable remains")
	}
}

func TestSplitTitleCompany(t *testing.T) {
	cases := []struct {
		line    string
		title   string
		company string
	}{
		{"Senior Engineer at Acme", "Senior Engineer", "Acme"},
		{"Senior Engineer - Acme", "Senior Engineer", "Acme"},
		{"Senior Engineer | Acme", "Senior Engineer", "Acme"},
		{"Senior Engineer @ Acme", "Senior Engineer", "Acme"},
		{"Senior Engineer", "Senior Engineer", ""},
	}
	for _, tc := range cases {
		title, company := splitTitleCompany(tc.line)
		if title != tc.title || company != tc.company {
			t.Fatalf("splitTitleCompany(%q): expected %q/%q, got %q/%q", tc.line, tc.title, tc.company, title, company)
		}
	}
}

func TestNormalizeEndDate(t *testing.T) {
	if got := normalizeEndDate("current"); got != "Present" {
		t.Fatalf("expected current to normalize to Present, got %q", got)
	}
	if got := normalizeEndDate("Mar 2021"); got != "Mar 2021" {
		t.Fatalf("expected date to pass through, got %q", got)
	}
}

func TestDocxPlainText(t *testing.T) {
	content := `<w:p><w:r><w:t>Hello</w:t></w:r><w:t xml:space="preserve"> World</w:t></w:p><w:p><w:t>Next &amp; more</w:t></w:p>`
	got := docxPlainText(content)
	want := "Hello World\nNext & more\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
