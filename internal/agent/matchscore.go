package agent

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

// relatedSkills gives partial credit across skill families: holding the
// key skill counts half for any of its relatives, and vice versa.
var relatedSkills = map[string][]string{
	"python":             {"machine learning", "data analysis", "pandas", "numpy", "scikit-learn", "django", "flask"},
	"machine learning":   {"deep learning", "nlp", "computer vision", "pytorch", "tensorflow", "data science"},
	"deep learning":      {"pytorch", "tensorflow", "neural networks", "computer vision", "nlp"},
	"aws":                {"cloud", "docker", "kubernetes", "terraform"},
	"sql":                {"database", "postgresql", "mysql", "data analysis"},
	"javascript":         {"typescript", "react", "node.js", "frontend"},
	"java":               {"spring", "kotlin", "backend"},
	"docker":             {"kubernetes", "ci/cd", "devops"},
	"data analysis":      {"excel", "tableau", "power bi", "statistics", "sql"},
	"product management": {"agile", "scrum", "roadmap", "stakeholder management"},
	"marketing":          {"seo", "content marketing", "google analytics", "social media"},
}

// relatedIndex is relatedSkills with every name collapsed to its
// normalized lookup key
var relatedIndex = buildRelatedIndex()

func buildRelatedIndex() map[string][]string {
	index := make(map[string][]string, len(relatedSkills))
	for skill, related := range relatedSkills {
		keys := make([]string, 0, len(related))
		for _, r := range related {
			keys = append(keys, util.NormalizeSkill(r))
		}
		index[util.NormalizeSkill(skill)] = keys
	}
	return index
}

var mlFoundationSkills = []string{
	"python", "machine learning", "deep learning", "pytorch", "tensorflow", "nlp",
}

var llmAdjacentSkills = []string{
	"llm", "large language models", "nlp", "transformers", "gpt",
	"prompt engineering", "langchain", "rag",
}

var seniorityPattern = regexp.MustCompile(`\b(senior|lead|principal|staff)\b`)

// skillVocabulary is the profile's matchable skill surface: normalized
// full entries plus the individual words inside them
type skillVocabulary struct {
	exact map[string]bool
	words map[string]bool
}

func (v *skillVocabulary) has(name string) bool {
	return v.exact[util.NormalizeSkill(name)]
}

func (v *skillVocabulary) hasAllWords(phrase string) bool {
	fields := strings.Fields(util.Normalize(phrase))
	if len(fields) < 2 {
		return false
	}
	for _, w := range fields {
		if !v.words[strings.Trim(w, ",.()/")] {
			return false
		}
	}
	return true
}

// buildProfileVocabulary collects flat skills, detailed skills,
// certification names and experience title tokens
func buildProfileVocabulary(p *domain.Profile) *skillVocabulary {
	vocab := &skillVocabulary{
		exact: make(map[string]bool),
		words: make(map[string]bool),
	}
	if p == nil {
		return vocab
	}

	add := func(entry string) {
		key := util.NormalizeSkill(entry)
		if key == "" {
			return
		}
		vocab.exact[key] = true
		for _, w := range strings.Fields(util.Normalize(entry)) {
			if w = strings.Trim(w, ",.()/"); w != "" {
				vocab.words[w] = true
			}
		}
	}

	for _, skill := range p.AllSkillNames() {
		add(skill)
	}
	for _, cert := range p.Certifications {
		add(cert.Name)
	}
	for _, exp := range p.Experiences {
		for _, token := range strings.Fields(util.Normalize(exp.Title)) {
			add(token)
		}
	}
	return vocab
}

type matchOutcome struct {
	Score      float64
	Confidence string
	Matched    []string
	Missing    []string
	ExactRatio float64
}

// scoreSkillMatch computes the deterministic match score: exact hits
// count full weight, related hits half, with the ML-foundation bonus,
// the LLM-mention bonus, and the seniority-gap penalty applied on top.
func scoreSkillMatch(vocab *skillVocabulary, jdSkills []string, jdText, latestTitle string) matchOutcome {
	cfg := constants.ScoringConfig
	outcome := matchOutcome{Confidence: domain.ConfidenceLow}
	if len(jdSkills) == 0 {
		return outcome
	}

	var exact, partial float64
	for _, skill := range jdSkills {
		switch {
		case vocab.has(skill), len(skill) > 10 && vocab.hasAllWords(skill):
			exact++
			outcome.Matched = append(outcome.Matched, skill)
		case hasRelatedSkill(vocab, skill):
			partial++
			outcome.Matched = append(outcome.Matched, skill+" (related)")
		default:
			outcome.Missing = append(outcome.Missing, skill)
		}
	}

	total := float64(len(jdSkills))
	score := 100 * (exact*cfg.ExactMatchWeight + partial*cfg.PartialMatchWeight) / total

	if countPresent(vocab, mlFoundationSkills) >= 2 {
		score += cfg.MLScoreBonus
	}
	if mentionsLLM(jdText) && countPresent(vocab, llmAdjacentSkills) >= 1 {
		score += cfg.LLMAdjustmentBonus
	}
	if seniorityPattern.MatchString(strings.ToLower(jdText)) &&
		!seniorityPattern.MatchString(strings.ToLower(latestTitle)) {
		score *= cfg.SeniorGapPenalty
	}

	outcome.Score = math.Round(util.ClampScore(score)*100) / 100
	outcome.ExactRatio = exact / total
	outcome.Confidence = confidenceFor(outcome.Score, outcome.ExactRatio)
	return outcome
}

func hasRelatedSkill(vocab *skillVocabulary, jdSkill string) bool {
	key := util.NormalizeSkill(jdSkill)

	// a relative of the JD skill is on the profile
	for _, rel := range relatedIndex[key] {
		if vocab.exact[rel] {
			return true
		}
	}
	// a profile skill lists the JD skill as its relative
	for profileSkill := range vocab.exact {
		if util.Contains(relatedIndex[profileSkill], key) {
			return true
		}
	}
	return false
}

func countPresent(vocab *skillVocabulary, skills []string) int {
	n := 0
	for _, s := range skills {
		if vocab.has(s) {
			n++
		}
	}
	return n
}

func mentionsLLM(jdText string) bool {
	lower := strings.ToLower(jdText)
	return strings.Contains(lower, "llm") || strings.Contains(lower, "large language model")
}

func confidenceFor(score, exactRatio float64) string {
	cfg := constants.ScoringConfig
	switch {
	case score >= cfg.HighConfidenceScore && exactRatio >= cfg.HighConfidenceRatio:
		return domain.ConfidenceHigh
	case score >= cfg.MidConfidenceScore && exactRatio >= cfg.MidConfidenceRatio:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// relevantExperiences ranks experience entries by how many JD skills
// their title and description mention, returning the top 3
func relevantExperiences(p *domain.Profile, jdSkills []string) []domain.Experience {
	type scored struct {
		exp     domain.Experience
		overlap int
	}

	var ranked []scored
	for _, exp := range p.Experiences {
		text := util.Normalize(exp.Title + " " + exp.Description)
		overlap := 0
		for _, skill := range jdSkills {
			if strings.Contains(text, util.Normalize(skill)) {
				overlap++
			}
		}
		if overlap > 0 {
			ranked = append(ranked, scored{exp: exp, overlap: overlap})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].overlap > ranked[j].overlap
	})

	out := make([]domain.Experience, 0, 3)
	for i, r := range ranked {
		if i == 3 {
			break
		}
		out = append(out, r.exp)
	}
	return out
}
