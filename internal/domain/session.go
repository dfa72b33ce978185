package domain

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalysisRecord stores one branch result so later prompts can refer back
// to what was already produced in the conversation.
type AnalysisRecord struct {
	Type      Branch    `json:"type"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the persisted unit of conversation memory. One JSON file per
// session; the field tags are the on-disk schema and must stay stable.
type Session struct {
	SessionID           string           `json:"session_id"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	ConversationHistory []Message        `json:"conversation_history"`
	CurrentProfile      *Profile         `json:"current_profile"`
	TargetRole          string           `json:"target_role"`
	CareerGoals         string           `json:"career_goals"`
	CustomJD            string           `json:"custom_jd,omitempty"`
	Location            string           `json:"location,omitempty"`
	Analyses            []AnalysisRecord `json:"analyses"`
}

func NewSession(sessionID string) *Session {
	now := time.Now()
	return &Session{
		SessionID:           sessionID,
		CreatedAt:           now,
		UpdatedAt:           now,
		ConversationHistory: []Message{},
		Analyses:            []AnalysisRecord{},
	}
}

func (s *Session) HasProfile() bool {
	return s.CurrentProfile != nil
}

// LatestAnalysis returns the most recent record of the given type, nil when
// none exists.
func (s *Session) LatestAnalysis(branch Branch) *AnalysisRecord {
	for i := len(s.Analyses) - 1; i >= 0; i-- {
		if s.Analyses[i].Type == branch {
			return &s.Analyses[i]
		}
	}
	return nil
}

// RecentHistory returns up to n most recent messages in order
func (s *Session) RecentHistory(n int) []Message {
	if n <= 0 || len(s.ConversationHistory) == 0 {
		return nil
	}
	if len(s.ConversationHistory) <= n {
		return s.ConversationHistory
	}
	return s.ConversationHistory[len(s.ConversationHistory)-n:]
}
