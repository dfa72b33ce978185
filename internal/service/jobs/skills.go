package jobs

import (
	"regexp"
	"strings"
)

// Multi-word skill phrases matched before single tokens so "machine
// learning" never degrades into "machine" + "learning".
var importantPhrases = []string{
	"machine learning",
	"deep learning",
	"natural language processing",
	"large language models",
	"data analysis",
	"data engineering",
	"computer vision",
	"ci/cd",
	"scikit-learn",
	"node.js",
	"power bi",
	"a/b testing",
	"product management",
	"project management",
	"stakeholder management",
	"google analytics",
	"content marketing",
	"email marketing",
	"unit testing",
	"rest api",
	"experimental design",
	"problem solving",
}

// canonicalPhrase maps phrase variants onto the wordlist form
var canonicalPhrase = map[string]string{
	"natural language processing": "nlp",
	"large language models":       "llm",
	"rest api":                    "rest",
}

// commonSkills is the single-token wordlist checked against the text's
// token set, so substrings inside larger words never match.
var commonSkills = []string{
	"python", "java", "javascript", "typescript", "go", "golang", "rust",
	"c++", "c#", "scala", "ruby", "php", "kotlin", "swift", "r",
	"sql", "nosql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"pandas", "numpy", "pytorch", "tensorflow", "keras", "spark", "hadoop",
	"nlp", "llm", "statistics", "excel", "tableau", "looker",
	"aws", "azure", "gcp", "cloud", "docker", "kubernetes", "terraform",
	"git", "linux", "jenkins", "graphql", "grpc", "rest", "microservices",
	"react", "angular", "vue", "django", "flask", "spring", "rails",
	"agile", "scrum", "kanban", "jira", "roadmap", "analytics",
	"seo", "sem", "crm", "salesforce", "hubspot", "copywriting",
	"communication", "leadership", "mentoring", "collaboration",
}

// genericWords never count as skills even when a JD emphasizes them
var genericWords = map[string]struct{}{
	"experience":   {},
	"experiences":  {},
	"years":        {},
	"work":         {},
	"working":      {},
	"team":         {},
	"teams":        {},
	"strong":       {},
	"ability":      {},
	"skills":       {},
	"skill":        {},
	"knowledge":    {},
	"requirements": {},
	"required":     {},
	"preferred":    {},
	"plus":         {},
	"degree":       {},
	"bachelor":     {},
	"master":       {},
	"related":      {},
	"field":        {},
	"tools":        {},
	"environment":  {},
}

var tokenPattern = regexp.MustCompile(`[a-z0-9#+.]+`)

// ExtractSkills pulls known skills out of free text: phrases first, then
// wordlist tokens against the tokenized text. Order is detection order,
// deduplicated, all lowercase.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	if lower == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var found []string

	add := func(skill string) {
		if _, generic := genericWords[skill]; generic {
			return
		}
		if _, dup := seen[skill]; dup {
			return
		}
		seen[skill] = struct{}{}
		found = append(found, skill)
	}

	for _, phrase := range importantPhrases {
		if strings.Contains(lower, phrase) {
			if canonical, ok := canonicalPhrase[phrase]; ok {
				add(canonical)
			} else {
				add(phrase)
			}
		}
	}

	tokens := make(map[string]struct{})
	for _, tok := range tokenPattern.FindAllString(lower, -1) {
		tokens[tok] = struct{}{}
		// "node.js" keeps its dot, "learning." sheds it
		if trimmed := strings.Trim(tok, "."); trimmed != tok {
			tokens[trimmed] = struct{}{}
		}
	}

	for _, skill := range commonSkills {
		if strings.Contains(skill, " ") {
			if strings.Contains(lower, skill) {
				add(skill)
			}
			continue
		}
		if _, ok := tokens[skill]; ok {
			add(skill)
		}
	}

	return found
}
