package importer

import (
	"regexp"
	"strings"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

// resume sections the parser recognizes
const (
	sectionPreamble       = ""
	sectionSummary        = "summary"
	sectionExperience     = "experience"
	sectionEducation      = "education"
	sectionSkills         = "skills"
	sectionCertifications = "certifications"
)

var sectionHeaders = map[string]string{
	"summary":                     sectionSummary,
	"professional summary":        sectionSummary,
	"about":                       sectionSummary,
	"about me":                    sectionSummary,
	"profile":                     sectionSummary,
	"objective":                   sectionSummary,
	"experience":                  sectionExperience,
	"work experience":             sectionExperience,
	"professional experience":     sectionExperience,
	"employment history":          sectionExperience,
	"work history":                sectionExperience,
	"education":                   sectionEducation,
	"academic background":         sectionEducation,
	"skills":                      sectionSkills,
	"technical skills":            sectionSkills,
	"core competencies":           sectionSkills,
	"certifications":              sectionCertifications,
	"certificates":                sectionCertifications,
	"licenses & certifications":   sectionCertifications,
	"licenses and certifications": sectionCertifications,
}

var headlineKeywords = []string{
	"engineer", "analyst", "manager", "scientist", "developer",
	"designer", "consultant", "architect", "specialist", "director", "lead",
}

var (
	dateRangePattern = regexp.MustCompile(`(?i)([A-Za-z]{3,9}\.?\s?\d{4}|\d{1,2}/\d{4}|\b(?:19|20)\d{2}\b)\s*(?:-|–|—|to)\s*(present|current|[A-Za-z]{3,9}\.?\s?\d{4}|\d{1,2}/\d{4}|\b(?:19|20)\d{2}\b)`)
	yearPattern      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	phonePattern     = regexp.MustCompile(`(?:\d[\s\-().]?){7,}`)
)

// parseResumeText turns extracted resume text into a structured profile
// using header and keyword heuristics. It never fails; a resume that
// defeats every heuristic just yields an emptier profile.
func parseResumeText(text string) *domain.Profile {
	profile := &domain.Profile{}

	sections := splitSections(text)

	parsePreamble(sections[sectionPreamble], profile)
	profile.About = strings.TrimSpace(strings.Join(sections[sectionSummary], "\n"))
	profile.Experiences = parseExperiences(sections[sectionExperience])
	profile.Educations = parseEducations(sections[sectionEducation])
	profile.Certifications = parseCertifications(sections[sectionCertifications])
	profile.Skills = parseSkills(sections[sectionSkills])

	if profile.Headline == "" {
		if exp := profile.LatestExperience(); exp != nil {
			profile.Headline = exp.Label()
		}
	}
	return profile
}

// splitSections groups lines under the most recent section header
func splitSections(text string) map[string][]string {
	sections := make(map[string][]string)
	current := sectionPreamble

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if section, ok := headerOf(line); ok {
			current = section
			continue
		}
		sections[current] = append(sections[current], line)
	}
	return sections
}

// headerOf reports whether a line is a section header. Headers are
// short standalone lines, so anything long is treated as content.
func headerOf(line string) (string, bool) {
	if line == "" || len(line) > 40 {
		return "", false
	}
	key := strings.ToLower(strings.TrimRight(line, ":"))
	key = strings.TrimSpace(key)
	section, ok := sectionHeaders[key]
	return section, ok
}

func parsePreamble(lines []string, profile *domain.Profile) {
	for _, line := range lines {
		if line == "" || isContactLine(line) {
			continue
		}
		if profile.Name == "" && len(line) <= 60 && !containsHeadlineKeyword(line) {
			profile.Name = stripBullet(line)
			continue
		}
		if profile.Headline == "" && containsHeadlineKeyword(line) && len(line) <= constants.StringLimits.Headline {
			profile.Headline = stripBullet(line)
		}
	}
}

func isContactLine(line string) bool {
	return strings.Contains(line, "@") ||
		strings.Contains(strings.ToLower(line), "linkedin.com") ||
		phonePattern.MatchString(line)
}

func containsHeadlineKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range headlineKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// parseExperiences reads blank-line separated blocks. The first line of
// a block carries the title, a date-range line carries the period, and
// whatever remains becomes the description.
func parseExperiences(lines []string) []domain.Experience {
	var experiences []domain.Experience

	for _, block := range splitBlocks(lines) {
		exp := domain.Experience{}
		var description []string

		for _, line := range block {
			if m := dateRangePattern.FindStringSubmatch(line); m != nil && exp.StartDate == "" {
				exp.StartDate = strings.TrimSpace(m[1])
				exp.EndDate = normalizeEndDate(m[2])
				if rest := strings.TrimSpace(dateRangePattern.ReplaceAllString(line, "")); rest != "" && exp.Company == "" && exp.Title != "" {
					exp.Company = strings.Trim(rest, " |,-")
				}
				continue
			}
			switch {
			case exp.Title == "":
				exp.Title, exp.Company = splitTitleCompany(stripBullet(line))
			case exp.Company == "" && len(description) == 0 && len(line) <= 60:
				exp.Company = stripBullet(line)
			default:
				description = append(description, stripBullet(line))
			}
		}

		if exp.Title == "" {
			continue
		}
		exp.Description = strings.Join(description, " ")
		experiences = append(experiences, exp)
	}
	return experiences
}

func normalizeEndDate(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "present" || lower == "current" {
		return "Present"
	}
	return strings.TrimSpace(raw)
}

// splitTitleCompany handles "Senior Engineer at Acme" and
// "Senior Engineer - Acme" style lines
func splitTitleCompany(line string) (title, company string) {
	for _, sep := range []string{" at ", " @ ", " - ", " – ", " | "} {
		if idx := strings.Index(line, sep); idx > 0 {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return line, ""
}

var degreeKeywords = []string{
	"bachelor", "master", "phd", "ph.d", "doctorate", "associate",
	"b.s", "m.s", "b.a", "m.a", "bsc", "msc", "mba", "b.tech", "m.tech",
}

func parseEducations(lines []string) []domain.Education {
	var educations []domain.Education

	for _, block := range splitBlocks(lines) {
		edu := domain.Education{}
		for _, line := range block {
			clean := stripBullet(line)
			lower := strings.ToLower(clean)

			isDegree := false
			for _, kw := range degreeKeywords {
				if strings.Contains(lower, kw) {
					isDegree = true
					break
				}
			}

			years := yearPattern.FindAllString(clean, 2)
			if len(years) > 0 && edu.EndYear == "" {
				edu.StartYear = years[0]
				edu.EndYear = years[len(years)-1]
			}

			switch {
			case isDegree && edu.Degree == "":
				edu.Degree = strings.TrimSpace(yearPattern.ReplaceAllString(clean, ""))
			case edu.School == "":
				if school := strings.Trim(yearPattern.ReplaceAllString(clean, ""), " |,-"); school != "" {
					edu.School = school
				}
			}
		}
		if edu.School == "" && edu.Degree == "" {
			continue
		}
		educations = append(educations, edu)
	}
	return educations
}

func parseCertifications(lines []string) []domain.Certification {
	var certs []domain.Certification
	for _, line := range lines {
		clean := stripBullet(line)
		if clean == "" {
			continue
		}
		cert := domain.Certification{Name: clean}
		if name, issuer := splitTitleCompany(clean); issuer != "" {
			cert.Name = name
			cert.Issuer = issuer
		}
		certs = append(certs, cert)
	}
	return certs
}

var skillSeparators = regexp.MustCompile(`[,;|•·▪●\t]+`)

func parseSkills(lines []string) []string {
	var skills []string
	for _, line := range lines {
		for _, part := range skillSeparators.Split(line, -1) {
			skill := stripBullet(part)
			if skill == "" || len(skill) > 50 {
				continue
			}
			skills = append(skills, skill)
		}
	}
	return util.UniqueStrings(skills)
}

// splitBlocks groups consecutive non-empty lines
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•-*–—▪●·○"))
}
