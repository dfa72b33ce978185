package jobs

import (
	"strings"

	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

// builtinJobs is the offline job description table used when the search
// API is unavailable or returns nothing. Keys are normalized role slugs.
var builtinJobs = map[string]domain.JobDescription{
	"data_analyst": {
		Title: "Data Analyst",
		Text: `We are seeking a Data Analyst to turn raw business data into decisions.

Responsibilities:
- Build and maintain dashboards and reports for product, sales, and operations teams
- Write SQL queries against production replicas and the analytics warehouse
- Clean, reconcile, and document datasets; own data quality for your reports
- Run ad hoc analyses and present findings to non-technical stakeholders
- Partner with engineering to define event tracking and metrics

Requirements:
- 2+ years in an analytics role
- Strong SQL and Excel; Python (pandas) for data wrangling
- Experience with a BI tool such as Tableau or Power BI
- Solid grounding in statistics and A/B testing
- Clear written and verbal communication`,
		RequiredSkills: []string{"sql", "excel", "python", "pandas", "tableau", "power bi", "statistics", "a/b testing", "data analysis", "communication"},
	},
	"software_engineer": {
		Title: "Software Engineer",
		Text: `We are hiring a Software Engineer to design, build, and operate backend services.

Responsibilities:
- Design and implement APIs and services that scale to millions of requests
- Write well-tested, maintainable code and review others' changes
- Own services end to end: deployment, monitoring, and incident response
- Collaborate with product managers and designers on feature scoping
- Improve CI/CD pipelines and developer tooling

Requirements:
- 3+ years of professional software development
- Proficiency in at least one of Go, Java, Python, or TypeScript
- Experience with REST APIs, SQL databases, and microservices
- Familiarity with Docker, Kubernetes, and a major cloud (AWS, GCP, or Azure)
- Strong testing habits and git workflow fluency`,
		RequiredSkills: []string{"go", "java", "python", "typescript", "rest", "sql", "microservices", "docker", "kubernetes", "aws", "ci/cd", "git"},
	},
	"product_manager": {
		Title: "Product Manager",
		Text: `We are looking for a Product Manager to own a product area from discovery to delivery.

Responsibilities:
- Define the roadmap and quarterly outcomes for your product area
- Interview customers, size opportunities, and write crisp problem briefs
- Prioritize ruthlessly with engineering and design; ship iteratively
- Instrument features, run A/B tests, and report on adoption and impact
- Align stakeholders across sales, support, and leadership

Requirements:
- 3+ years in product management or adjacent roles
- Track record of shipping software products users love
- Comfort with data: SQL or analytics tooling for self-serve answers
- Strong stakeholder management and written communication
- Experience with agile development practices`,
		RequiredSkills: []string{"product management", "roadmap", "a/b testing", "sql", "stakeholder management", "agile", "communication", "analytics"},
	},
	"data_scientist": {
		Title: "Data Scientist",
		Text: `We are seeking a Data Scientist to build models that power product features.

Responsibilities:
- Frame ambiguous product questions as tractable modeling problems
- Build, evaluate, and ship machine learning models to production
- Design experiments and causal analyses to measure impact
- Work with engineers to productionize pipelines and monitor drift
- Communicate results and tradeoffs to product and leadership

Requirements:
- 3+ years applying machine learning in industry
- Strong Python: pandas, numpy, scikit-learn; SQL for data access
- Experience with deep learning frameworks (PyTorch or TensorFlow) a plus
- Solid statistics: hypothesis testing, regression, experimental design
- NLP or LLM experience valued`,
		RequiredSkills: []string{"python", "machine learning", "pandas", "numpy", "scikit-learn", "sql", "statistics", "deep learning", "pytorch", "tensorflow", "nlp"},
	},
	"marketing_manager": {
		Title: "Marketing Manager",
		Text: `We are hiring a Marketing Manager to grow our inbound and lifecycle channels.

Responsibilities:
- Own the content calendar: blog, email, social, and landing pages
- Plan and execute campaigns end to end, from brief to post-mortem
- Manage SEO/SEM programs and the paid budget
- Track funnel metrics in Google Analytics and the CRM; report weekly
- Coordinate freelancers, agencies, and internal designers

Requirements:
- 3+ years in B2B or B2C marketing
- Hands-on experience with SEO, SEM, email marketing, and content marketing
- Fluency with Google Analytics and a CRM such as Salesforce or HubSpot
- Strong copywriting and project management skills
- Data-driven mindset with A/B testing experience`,
		RequiredSkills: []string{"seo", "sem", "content marketing", "email marketing", "google analytics", "crm", "salesforce", "copywriting", "project management", "a/b testing"},
	},
}

const genericJobText = `We are looking for a %s to join our team.

Responsibilities:
- Own projects end to end and deliver measurable results
- Collaborate across functions and communicate progress clearly
- Continuously improve processes, tooling, and documentation
- Mentor peers and contribute to a healthy team culture

Requirements:
- Relevant professional experience in the field
- Strong problem-solving and communication skills
- Ability to prioritize and work independently
- Willingness to learn new tools and practices`

var genericSkills = []string{"communication", "problem solving", "project management", "leadership", "collaboration"}

// lookupBuiltin resolves a role against the table: exact slug first, then
// partial match where every word of a table key appears in the request
// ("senior data analyst" resolves to data_analyst).
func lookupBuiltin(role string) (domain.JobDescription, bool) {
	normalized := util.Normalize(role)
	if normalized == "" {
		return domain.JobDescription{}, false
	}

	slug := strings.ReplaceAll(normalized, " ", "_")
	if jd, ok := builtinJobs[slug]; ok {
		return jd, true
	}

	for key, jd := range builtinJobs {
		words := strings.Split(key, "_")
		all := true
		for _, w := range words {
			if !strings.Contains(normalized, w) {
				all = false
				break
			}
		}
		if all {
			return jd, true
		}
	}

	return domain.JobDescription{}, false
}
