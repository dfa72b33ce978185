package server

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/adapter"
	"github.com/careerpilot/linkedin-optimizer-go/internal/agent"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/router"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/importer"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/scrape"
	"github.com/careerpilot/linkedin-optimizer-go/internal/session"
)

// ChatDeps bundles everything a chat turn needs
type ChatDeps struct {
	Router    *router.Router
	Analyzer  *agent.Analyzer
	Matcher   *agent.Matcher
	Content   *agent.ContentAgent
	Counselor *agent.Counselor
	FollowUps *agent.FollowUpGenerator
	Scraper   *scrape.Scraper
	Importer  *importer.Importer
	Sessions  *session.Store
	Formatter *adapter.ResponseFormatter
	Logger    *zap.Logger
}

// ChatReply is the assistant's answer to one message
type ChatReply struct {
	Reply     string        `json:"reply"`
	Branch    domain.Branch `json:"branch"`
	FollowUps []string      `json:"followups"`
}

// ChatService runs the route-dispatch-format pipeline for each
// message. A per-session turn lock keeps concurrent sends from the
// same session strictly ordered.
type ChatService struct {
	deps ChatDeps

	mu    sync.Mutex
	turns map[string]*sync.Mutex
}

func NewChatService(deps ChatDeps) *ChatService {
	return &ChatService{
		deps:  deps,
		turns: make(map[string]*sync.Mutex),
	}
}

// HandleMessage processes one user message end to end: route to a
// branch, run the agent, persist both sides of the exchange, and
// suggest follow-up questions.
func (c *ChatService) HandleMessage(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	turn := c.turnLock(sessionID)
	turn.Lock()
	defer turn.Unlock()

	sess, err := c.deps.Sessions.GetOrCreate(sessionID)
	if err != nil {
		return nil, err
	}

	decision := c.deps.Router.Route(ctx, message, sess.HasProfile(), sess.TargetRole)

	memory, err := c.deps.Sessions.ContextSummary(sessionID)
	if err != nil {
		c.deps.Logger.Warn("Context summary unavailable", zap.String("session", sessionID), zap.Error(err))
		memory = ""
	}

	if err := c.deps.Sessions.AddMessage(sessionID, "user", message); err != nil {
		return nil, err
	}

	if !sess.HasProfile() && decision.Branch != domain.BranchCareerCounseling {
		reply := c.deps.Formatter.FormatNoProfile()
		if err := c.deps.Sessions.AddMessage(sessionID, "assistant", reply); err != nil {
			return nil, err
		}
		return &ChatReply{Reply: reply, Branch: decision.Branch, FollowUps: []string{}}, nil
	}

	var (
		body   string
		record bool
	)

	switch decision.Branch {
	case domain.BranchProfileAnalysis:
		result := c.deps.Analyzer.Analyze(ctx, sess.CurrentProfile, memory, message)
		body = c.deps.Formatter.FormatAnalysis(result)
		record = true

	case domain.BranchJobMatching:
		report := c.deps.Matcher.Match(ctx, agent.MatchInputs{
			SessionID:  sessionID,
			Profile:    sess.CurrentProfile,
			TargetRole: sess.TargetRole,
			Location:   sess.Location,
			CustomJD:   sess.CustomJD,
			Memory:     memory,
			Query:      message,
		})
		body = c.deps.Formatter.FormatMatchReport(report)
		record = true

	case domain.BranchContentGeneration:
		revision := c.deps.Content.Rewrite(ctx, sess.CurrentProfile, sess.TargetRole, memory, message)
		body = c.deps.Formatter.FormatRevision(revision)
		record = true

	default:
		advice := c.deps.Counselor.Advise(ctx, agent.CounselInputs{
			Profile:     sess.CurrentProfile,
			TargetRole:  sess.TargetRole,
			CareerGoals: sess.CareerGoals,
			Memory:      memory,
			Query:       message,
		})
		body = c.deps.Formatter.FormatAdvice(advice)
		// conversational coaching is chat, not a report worth replaying
		record = advice.Comprehensive
	}

	followUps := c.deps.FollowUps.Questions(ctx, decision.Branch, body, sess.HasProfile())

	if err := c.deps.Sessions.AddMessage(sessionID, "assistant", body); err != nil {
		return nil, err
	}
	if record {
		if err := c.deps.Sessions.AddAnalysis(sessionID, decision.Branch, body); err != nil {
			return nil, err
		}
	}

	c.deps.Logger.Info("Chat turn completed",
		zap.String("session", sessionID),
		zap.String("branch", decision.Branch.String()),
		zap.String("route_source", string(decision.Source)),
		zap.Float64("confidence", decision.Confidence),
	)

	return &ChatReply{Reply: body, Branch: decision.Branch, FollowUps: followUps}, nil
}

// LoadProfileFromURL scrapes a LinkedIn profile into the session and
// returns the welcome message
func (c *ChatService) LoadProfileFromURL(ctx context.Context, sessionID, linkedinURL string) (string, error) {
	profile, err := c.deps.Scraper.ScrapeProfile(ctx, linkedinURL)
	if err != nil {
		return "", err
	}
	return c.attachProfile(sessionID, profile)
}

// ImportResume parses an uploaded resume into the session and returns
// the welcome message
func (c *ChatService) ImportResume(sessionID, filename string, data []byte) (string, error) {
	profile, err := c.deps.Importer.ImportResume(filename, data)
	if err != nil {
		return "", err
	}
	return c.attachProfile(sessionID, profile)
}

func (c *ChatService) attachProfile(sessionID string, profile *domain.Profile) (string, error) {
	if err := c.deps.Sessions.SetProfile(sessionID, profile); err != nil {
		return "", err
	}

	welcome := c.deps.Formatter.FormatWelcome(profile)
	if err := c.deps.Sessions.AddMessage(sessionID, "assistant", welcome); err != nil {
		return "", err
	}

	c.deps.Logger.Info("Profile attached to session",
		zap.String("session", sessionID),
		zap.String("source", string(profile.Source)),
		zap.Int("experiences", len(profile.Experiences)),
		zap.Int("skills", len(profile.Skills)),
	)
	return welcome, nil
}

// SetTargeting stores the job-targeting answers for later turns
func (c *ChatService) SetTargeting(sessionID string, t session.Targeting) (*domain.Session, error) {
	if err := c.deps.Sessions.SetTargeting(sessionID, t); err != nil {
		return nil, err
	}
	return c.deps.Sessions.GetOrCreate(sessionID)
}

// ClearConversation wipes the chat history but keeps the profile
func (c *ChatService) ClearConversation(sessionID string) (string, error) {
	if err := c.deps.Sessions.Clear(sessionID); err != nil {
		return "", err
	}

	sess, err := c.deps.Sessions.GetOrCreate(sessionID)
	if err != nil {
		return "", err
	}
	return c.deps.Formatter.FormatCleared(sess.HasProfile()), nil
}

func (c *ChatService) turnLock(sessionID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.turns[sessionID]; ok {
		return l
	}
	l := &sync.Mutex{}
	c.turns[sessionID] = l
	return l
}
