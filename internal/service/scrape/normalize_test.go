package scrape

import "testing"

func TestNormalizeItemFlattensActorPayload(t *testing.T) {
	item := map[string]any{
		"basic_info": map[string]any{
			"fullname":         "Jane Smith",
			"headline":         "Staff Engineer at Acme",
			"about":            "Distributed systems engineer.",
			"location":         map[string]any{"city": "Berlin", "country": "Germany"},
			"current_company":  map[string]any{"name": "Acme"},
			"follower_count":   float64(1200),
			"connection_count": float64(500),
			"is_premium":       true,
			"profile_url":      "https://www.linkedin.com/in/jane-smith",
		},
		"experience": []any{
			map[string]any{
				"title":       "Staff Engineer",
				"company":     map[string]any{"name": "Acme"},
				"description": "Leads the platform team.",
				"start_date":  map[string]any{"year": float64(2021), "month": float64(3)},
				"is_current":  true,
			},
			map[string]any{
				"title":      "Engineer",
				"company":    "Startup GmbH",
				"start_date": map[string]any{"year": float64(2018)},
				"end_date":   map[string]any{"year": float64(2021), "month": float64(2)},
			},
		},
		"education": []any{
			map[string]any{
				"school":         "TU Berlin",
				"degree":         "BSc",
				"field_of_study": "Computer Science",
				"start_date":     map[string]any{"year": float64(2014)},
				"end_date":       map[string]any{"year": float64(2018)},
			},
		},
		"certifications": []any{
			map[string]any{
				"name":                 "CKA",
				"issuing_organization": "CNCF",
				"issue_date":           "2022",
			},
			map[string]any{"issuer": "nameless entries are dropped"},
		},
		"skills": []any{
			"Go",
			map[string]any{
				"name":                "Kubernetes",
				"endorsement_count":   float64(14),
				"related_experiences": []any{map[string]any{}, map[string]any{}},
			},
		},
	}

	p := NormalizeItem(item)

	if p.Name != "Jane Smith" {
		t.Fatalf("expected name Jane Smith, got %q", p.Name)
	}
	if p.Headline != "Staff Engineer at Acme" {
		t.Fatalf("expected headline, got %q", p.Headline)
	}
	if p.Location != "Berlin, Germany" {
		t.Fatalf("expected location Berlin, Germany, got %q", p.Location)
	}
	if p.CurrentCompany != "Acme" {
		t.Fatalf("expected current company Acme, got %q", p.CurrentCompany)
	}
	if p.FollowerCount != 1200 || p.ConnectionCount != 500 {
		t.Fatalf("expected counts 1200/500, got %d/%d", p.FollowerCount, p.ConnectionCount)
	}
	if !p.IsPremium || p.IsCreator {
		t.Fatalf("expected premium without creator, got premium=%v creator=%v", p.IsPremium, p.IsCreator)
	}

	if len(p.Experiences) != 2 {
		t.Fatalf("expected 2 experiences, got %d", len(p.Experiences))
	}
	first := p.Experiences[0]
	if first.StartDate != "Mar 2021" {
		t.Fatalf("expected start date Mar 2021, got %q", first.StartDate)
	}
	if first.EndDate != "Present" {
		t.Fatalf("expected current role to end at Present, got %q", first.EndDate)
	}
	second := p.Experiences[1]
	if second.Company != "Startup GmbH" {
		t.Fatalf("expected string company to pass through, got %q", second.Company)
	}
	if second.StartDate != "2018" || second.EndDate != "Feb 2021" {
		t.Fatalf("expected 2018..Feb 2021, got %q..%q", second.StartDate, second.EndDate)
	}

	if len(p.Educations) != 1 {
		t.Fatalf("expected 1 education, got %d", len(p.Educations))
	}
	edu := p.Educations[0]
	if edu.School != "TU Berlin" || edu.StartYear != "2014" || edu.EndYear != "2018" {
		t.Fatalf("unexpected education: %+v", edu)
	}

	if len(p.Certifications) != 1 {
		t.Fatalf("expected nameless certification to be dropped, got %d entries", len(p.Certifications))
	}
	if p.Certifications[0].Issuer != "CNCF" {
		t.Fatalf("expected issuer CNCF, got %q", p.Certifications[0].Issuer)
	}

	if len(p.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %v", p.Skills)
	}
	if len(p.SkillsDetailed) != 1 {
		t.Fatalf("expected 1 detailed skill, got %d", len(p.SkillsDetailed))
	}
	detail := p.SkillsDetailed[0]
	if detail.Name != "Kubernetes" || detail.EndorsementCount != 14 || detail.RelatedExperiences != 2 {
		t.Fatalf("unexpected skill detail: %+v", detail)
	}
}

func TestNormalizeItemReadsTopLevelBasicFields(t *testing.T) {
	p := NormalizeItem(map[string]any{
		"fullname": "Flat Payload",
		"headline": "No basic_info wrapper",
	})
	if p.Name != "Flat Payload" {
		t.Fatalf("expected top-level fallback name, got %q", p.Name)
	}
	if p.Headline != "No basic_info wrapper" {
		t.Fatalf("expected top-level fallback headline, got %q", p.Headline)
	}
}

func TestNormalizeItemHandlesNilAndEmpty(t *testing.T) {
	for _, item := range []map[string]any{nil, {}} {
		p := NormalizeItem(item)
		if p == nil {
			t.Fatal("expected a profile, got nil")
		}
		if p.Experiences == nil || p.Educations == nil || p.Skills == nil || p.Certifications == nil {
			t.Fatal("expected empty slices instead of nil")
		}
	}
}

func TestFormatActorDate(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]any
		want string
	}{
		{name: "month and year", in: map[string]any{"year": float64(2020), "month": float64(11)}, want: "Nov 2020"},
		{name: "year only", in: map[string]any{"year": float64(2020)}, want: "2020"},
		{name: "month out of range", in: map[string]any{"year": float64(2020), "month": float64(13)}, want: "2020"},
		{name: "missing year", in: map[string]any{"month": float64(5)}, want: ""},
		{name: "nil", in: nil, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatActorDate(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
