package scrape

import (
	"strconv"
	"strings"
	"time"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
)

// NormalizeItem flattens one raw actor dataset item into a Profile.
// The actor's payload shape drifts between runs (strings vs objects,
// missing sections), so every accessor tolerates absent or mistyped keys.
func NormalizeItem(item map[string]any) *domain.Profile {
	p := &domain.Profile{
		Experiences:    []domain.Experience{},
		Educations:     []domain.Education{},
		Certifications: []domain.Certification{},
		Skills:         []string{},
	}
	if item == nil {
		return p
	}

	basic := asMap(item["basic_info"])
	if basic == nil {
		// Some actor versions return the basic fields at the top level
		basic = item
	}

	p.Name = str(basic, "fullname", "full_name", "name")
	p.Headline = str(basic, "headline")
	p.About = str(basic, "about", "summary")
	p.Location = normalizeLocation(basic["location"])
	p.CurrentCompany = companyName(basic["current_company"])
	p.FollowerCount = num(basic, "follower_count")
	p.ConnectionCount = num(basic, "connection_count")
	p.IsCreator = boolean(basic, "is_creator")
	p.IsPremium = boolean(basic, "is_premium")
	p.URL = str(basic, "profile_url", "url")

	for _, v := range asSlice(item["experience"]) {
		if m := asMap(v); m != nil {
			p.Experiences = append(p.Experiences, normalizeExperience(m))
		}
	}

	for _, v := range asSlice(item["education"]) {
		if m := asMap(v); m != nil {
			p.Educations = append(p.Educations, normalizeEducation(m))
		}
	}

	for _, v := range asSlice(item["certifications"]) {
		if m := asMap(v); m != nil {
			cert := domain.Certification{
				Name:      str(m, "name", "title"),
				Issuer:    str(m, "issuing_organization", "issuer", "authority"),
				IssueDate: str(m, "issue_date", "issued_at", "date"),
			}
			if cert.Name != "" {
				p.Certifications = append(p.Certifications, cert)
			}
		}
	}

	for _, v := range asSlice(item["skills"]) {
		switch sv := v.(type) {
		case string:
			if name := strings.TrimSpace(sv); name != "" {
				p.Skills = append(p.Skills, name)
			}
		case map[string]any:
			name := str(sv, "name", "skill", "title")
			if name == "" {
				continue
			}
			p.Skills = append(p.Skills, name)
			p.SkillsDetailed = append(p.SkillsDetailed, domain.SkillDetail{
				Name:               name,
				EndorsementCount:   num(sv, "endorsement_count", "endorsements"),
				RelatedExperiences: countRelated(sv["related_experiences"]),
			})
		}
	}

	return p
}

func normalizeExperience(m map[string]any) domain.Experience {
	exp := domain.Experience{
		Title:       str(m, "title", "position"),
		Company:     companyName(m["company"]),
		Description: str(m, "description"),
		Location:    normalizeLocation(m["location"]),
		StartDate:   formatActorDate(asMap(m["start_date"])),
	}
	if exp.Company == "" {
		exp.Company = str(m, "company_name")
	}
	if boolean(m, "is_current") {
		exp.EndDate = "Present"
	} else {
		exp.EndDate = formatActorDate(asMap(m["end_date"]))
	}
	return exp
}

func normalizeEducation(m map[string]any) domain.Education {
	edu := domain.Education{
		School:       str(m, "school", "school_name", "institution"),
		Degree:       str(m, "degree", "degree_name"),
		FieldOfStudy: str(m, "field_of_study", "field"),
		StartYear:    yearOf(m, "start_date", "start_year"),
		EndYear:      yearOf(m, "end_date", "end_year"),
	}
	return edu
}

// formatActorDate renders an actor date object as profiles display it:
// "Jan 2006" with a month, bare "2006" without, "" when empty.
func formatActorDate(m map[string]any) string {
	if m == nil {
		return ""
	}

	year := num(m, "year")
	if year == 0 {
		return ""
	}

	month := num(m, "month")
	if month >= 1 && month <= 12 {
		return time.Month(month).String()[:3] + " " + strconv.Itoa(year)
	}
	return strconv.Itoa(year)
}

func normalizeLocation(v any) string {
	switch loc := v.(type) {
	case string:
		return strings.TrimSpace(loc)
	case map[string]any:
		if full := str(loc, "full"); full != "" {
			return full
		}
		city := str(loc, "city")
		country := str(loc, "country")
		switch {
		case city != "" && country != "":
			return city + ", " + country
		case city != "":
			return city
		default:
			return country
		}
	}
	return ""
}

func companyName(v any) string {
	switch c := v.(type) {
	case string:
		return strings.TrimSpace(c)
	case map[string]any:
		return str(c, "name", "company_name")
	}
	return ""
}

func countRelated(v any) int {
	switch rv := v.(type) {
	case []any:
		return len(rv)
	case float64:
		return int(rv)
	}
	return 0
}

func yearOf(m map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case map[string]any:
			if y := num(v, "year"); y > 0 {
				return strconv.Itoa(y)
			}
		case float64:
			if v > 0 {
				return strconv.Itoa(int(v))
			}
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// str returns the first non-empty string value among keys
func str(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// num reads a numeric field, tolerating JSON float64, int, and numeric strings
func num(m map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

func boolean(m map[string]any, keys ...string) bool {
	for _, key := range keys {
		if b, ok := m[key].(bool); ok {
			return b
		}
	}
	return false
}
