package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
	"github.com/careerpilot/linkedin-optimizer-go/pkg/errors"
)

var validSessionID = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Store persists sessions as one JSON file each under the session
// directory. Every mutation saves synchronously; a per-session mutex
// serializes access; the optional Postgres archive mirrors each save.
type Store struct {
	dir     string
	archive *Archive
	logger  *zap.Logger

	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	sessions map[string]*domain.Session
}

func NewStore(dir string, archive *Archive, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	return &Store{
		dir:      dir,
		archive:  archive,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
		sessions: make(map[string]*domain.Session),
	}, nil
}

// GetOrCreate returns a snapshot of the session, creating it on first
// use. Snapshots are safe to read after the call returns.
func (s *Store) GetOrCreate(sessionID string) (*domain.Session, error) {
	lock, err := s.lockFor(sessionID)
	if err != nil {
		return nil, err
	}
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

func (s *Store) AddMessage(sessionID, role, content string) error {
	return s.update(sessionID, func(sess *domain.Session) {
		sess.ConversationHistory = append(sess.ConversationHistory, domain.Message{
			Role:      role,
			Content:   content,
			Timestamp: time.Now(),
		})
		if max := constants.InputLimits.MaxSessionHistory; len(sess.ConversationHistory) > max {
			sess.ConversationHistory = sess.ConversationHistory[len(sess.ConversationHistory)-max:]
		}
	})
}

func (s *Store) SetProfile(sessionID string, profile *domain.Profile) error {
	return s.update(sessionID, func(sess *domain.Session) {
		sess.CurrentProfile = profile
	})
}

func (s *Store) SetTargetRole(sessionID, role string) error {
	return s.update(sessionID, func(sess *domain.Session) {
		sess.TargetRole = role
	})
}

func (s *Store) SetCareerGoals(sessionID, goals string) error {
	return s.update(sessionID, func(sess *domain.Session) {
		sess.CareerGoals = goals
	})
}

// Targeting carries the job-targeting fields set in one request
type Targeting struct {
	TargetRole  string
	CareerGoals string
	CustomJD    string
	Location    string
}

// SetTargeting updates the provided targeting fields, leaving blank
// ones untouched so partial updates do not erase earlier answers
func (s *Store) SetTargeting(sessionID string, t Targeting) error {
	return s.update(sessionID, func(sess *domain.Session) {
		if t.TargetRole != "" {
			sess.TargetRole = t.TargetRole
		}
		if t.CareerGoals != "" {
			sess.CareerGoals = t.CareerGoals
		}
		if t.CustomJD != "" {
			sess.CustomJD = t.CustomJD
		}
		if t.Location != "" {
			sess.Location = t.Location
		}
	})
}

func (s *Store) AddAnalysis(sessionID string, branch domain.Branch, result string) error {
	return s.update(sessionID, func(sess *domain.Session) {
		sess.Analyses = append(sess.Analyses, domain.AnalysisRecord{
			Type:      branch,
			Result:    result,
			Timestamp: time.Now(),
		})
	})
}

func (s *Store) LatestAnalysis(sessionID string, branch domain.Branch) (*domain.AnalysisRecord, error) {
	sess, err := s.GetOrCreate(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.LatestAnalysis(branch), nil
}

func (s *Store) RecentHistory(sessionID string, n int) ([]domain.Message, error) {
	sess, err := s.GetOrCreate(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.RecentHistory(n), nil
}

// Clear empties the conversation and prior analyses but keeps the
// profile and targeting, matching the "clear chat" button
func (s *Store) Clear(sessionID string) error {
	return s.update(sessionID, func(sess *domain.Session) {
		sess.ConversationHistory = []domain.Message{}
		sess.Analyses = []domain.AnalysisRecord{}
	})
}

// ContextSummary renders the compact memory block interpolated into
// agent prompts: who the user is, what they target, what was already
// produced, and the recent turns.
func (s *Store) ContextSummary(sessionID string) (string, error) {
	sess, err := s.GetOrCreate(sessionID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if sess.HasProfile() {
		fmt.Fprintf(&b, "Profile: %s", sess.CurrentProfile.Name)
		if sess.CurrentProfile.Headline != "" {
			fmt.Fprintf(&b, " (%s)", sess.CurrentProfile.Headline)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Profile: not loaded\n")
	}

	if sess.TargetRole != "" {
		fmt.Fprintf(&b, "Target role: %s\n", sess.TargetRole)
	}
	if sess.CareerGoals != "" {
		fmt.Fprintf(&b, "Career goals: %s\n", sess.CareerGoals)
	}

	if n := len(sess.Analyses); n > 0 {
		types := make([]string, 0, 3)
		for i := n - 1; i >= 0 && len(types) < 3; i-- {
			types = append(types, sess.Analyses[i].Type.String())
		}
		fmt.Fprintf(&b, "Earlier analyses: %s\n", strings.Join(types, ", "))
	}

	if history := sess.RecentHistory(6); len(history) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, msg := range history {
			fmt.Fprintf(&b, "%s: %s\n", msg.Role, util.TruncateString(msg.Content, 200))
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// update runs a mutation under the session lock and saves the result
func (s *Store) update(sessionID string, mutate func(*domain.Session)) error {
	lock, err := s.lockFor(sessionID)
	if err != nil {
		return err
	}
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(sessionID)
	if err != nil {
		return err
	}

	mutate(sess)
	return s.save(sess)
}

func (s *Store) lockFor(sessionID string) (*sync.Mutex, error) {
	if !validSessionID.MatchString(sessionID) {
		return nil, errors.NewValidationError("invalid session id", "session_id", sessionID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.locks[sessionID]; ok {
		return l, nil
	}
	l := &sync.Mutex{}
	s.locks[sessionID] = l
	return l, nil
}

// load returns the live session object. Callers must hold the session
// lock. A missing file creates a fresh session; a corrupt one is
// replaced with a warning rather than failing the request.
func (s *Store) load(sessionID string) (*domain.Session, error) {
	s.mu.Lock()
	cached, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	var sess *domain.Session
	data, err := os.ReadFile(s.path(sessionID))
	switch {
	case os.IsNotExist(err):
		sess = domain.NewSession(sessionID)
	case err != nil:
		return nil, fmt.Errorf("read session file: %w", err)
	default:
		sess = &domain.Session{}
		if uerr := json.Unmarshal(data, sess); uerr != nil {
			s.logger.Warn("Corrupt session file, starting fresh",
				zap.String("session", sessionID),
				zap.Error(uerr),
			)
			sess = domain.NewSession(sessionID)
		}
	}
	if sess.SessionID == "" {
		sess.SessionID = sessionID
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()
	return sess, nil
}

// save writes the session atomically: temp file in the same directory,
// then rename over the target
func (s *Store) save(sess *domain.Session) error {
	sess.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	path := s.path(sess.SessionID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	if s.archive != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.archive.Save(ctx, sess.SessionID, data, sess.UpdatedAt); err != nil {
			s.logger.Warn("Session archive write failed",
				zap.String("session", sess.SessionID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *Store) path(sessionID string) string {
	return filepath.Join(s.dir, "session_"+sessionID+".json")
}

// snapshot copies the session for lock-free reading. The profile
// pointer is shared; profiles are replaced wholesale, never edited in
// place.
func snapshot(sess *domain.Session) *domain.Session {
	cp := *sess
	cp.ConversationHistory = append([]domain.Message(nil), sess.ConversationHistory...)
	cp.Analyses = append([]domain.AnalysisRecord(nil), sess.Analyses...)
	return &cp
}
