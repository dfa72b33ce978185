package domain

// JDSource identifies which resolution tier produced a job description
type JDSource string

const (
	JDSourceCustom  JDSource = "custom"
	JDSourceOnline  JDSource = "online"
	JDSourceBuiltin JDSource = "builtin"
	JDSourceGeneric JDSource = "generic"
)

func (s JDSource) String() string {
	return string(s)
}

type JobDescription struct {
	Title          string   `json:"title"`
	Text           string   `json:"text"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location,omitempty"`
	Source         JDSource `json:"source"`
}

func (jd *JobDescription) IsEmpty() bool {
	return jd == nil || jd.Text == ""
}
