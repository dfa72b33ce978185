package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/internal/prompt"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/embedding"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/jobs"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/llm"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/match"
	"github.com/careerpilot/linkedin-optimizer-go/internal/util"
)

const (
	maxEmbedWorkers = 4
	maxJDChunks     = 5
	minChunkChars   = 60
)

// Matcher compares the loaded profile against a job description: a
// deterministic skill-match score, an embedding similarity signal, and
// a model-written narrative on top.
type Matcher struct {
	invoker  ModelInvoker
	jobs     *jobs.Service
	embedder embedding.Embedder
	index    *match.Index
	logger   *zap.Logger
}

func NewMatcher(invoker ModelInvoker, jobsService *jobs.Service, embedder embedding.Embedder, index *match.Index, logger *zap.Logger) *Matcher {
	return &Matcher{
		invoker:  invoker,
		jobs:     jobsService,
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

// MatchInputs carries the session state the matcher reads
type MatchInputs struct {
	SessionID  string
	Profile    *domain.Profile
	TargetRole string
	Location   string
	CustomJD   string
	Memory     string
	Query      string
}

// Match resolves the job description, scores the profile against it,
// and asks the model for commentary. It always returns a usable report.
func (m *Matcher) Match(ctx context.Context, in MatchInputs) *domain.MatchReport {
	jd := m.jobs.Resolve(ctx, in.TargetRole, in.Location, in.CustomJD)

	vocab := buildProfileVocabulary(in.Profile)
	outcome := scoreSkillMatch(vocab, jd.RequiredSkills, jd.Text, latestTitle(in.Profile))

	report := &domain.MatchReport{
		Score:               outcome.Score,
		Confidence:          outcome.Confidence,
		Similarity:          m.semanticSimilarity(ctx, in.SessionID, in.Profile, jd),
		MatchedSkills:       outcome.Matched,
		MissingSkills:       outcome.Missing,
		RelevantExperiences: relevantExperiences(in.Profile, jd.RequiredSkills),
		JobTitle:            jd.Title,
		JDSource:            jd.Source,
	}

	promptText := prompt.BuildMatcherPrompt(prompt.MatcherPromptVars{
		ProfileSummary: summarizeProfile(in.Profile),
		JobTitle:       jd.Title,
		JobDescription: util.TruncateString(jd.Text, 1500),
		MatchScore:     formatMatchScore(report),
		MatchedSkills:  joinOrNone(report.MatchedSkills),
		MissingSkills:  joinOrNone(report.MissingSkills),
		MemoryContext:  in.Memory,
		Query:          in.Query,
	})

	reply, metadata, err := m.invoker.Generate(ctx, promptText, llm.PresetAnalysis, nil)
	if err != nil {
		m.logger.Warn("Match narrative failed, using fallback", zap.Error(err))
		report.Narrative = matchFallback
		return report
	}

	report.Narrative = reply
	report.Improvements = linesAfterHeading(reply, []string{"improvement", "suggestion"}, 8)

	m.logger.Info("Job match complete",
		zap.String("job", jd.Title),
		zap.String("jd_source", string(jd.Source)),
		zap.Float64("score", report.Score),
		zap.String("confidence", report.Confidence),
		zap.Float64("similarity", report.Similarity),
		zap.String("provider", metadata.Provider),
	)
	return report
}

// semanticSimilarity embeds the JD (whole text plus paragraph chunks)
// into the session's vector index and reads back the cosine similarity
// against the profile text. Failures degrade to 0, the score report
// simply omits the semantic signal.
func (m *Matcher) semanticSimilarity(ctx context.Context, sessionID string, profile *domain.Profile, jd *domain.JobDescription) float64 {
	profileVec, err := m.embedder.Embed(ctx, profile.FullText())
	if err != nil {
		m.logger.Warn("Profile embedding failed", zap.Error(err))
		return 0
	}

	candidates := jdCandidates(jd)
	vectors := make([][]float32, len(candidates))
	var vectorsMu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxEmbedWorkers)
	for idx, cand := range candidates {
		idx, cand := idx, cand
		p.Go(func() {
			vec, err := m.embedder.Embed(ctx, cand.text)
			if err != nil {
				m.logger.Warn("JD candidate embedding failed",
					zap.String("doc", cand.id),
					zap.Error(err),
				)
				return
			}
			vectorsMu.Lock()
			vectors[idx] = vec
			vectorsMu.Unlock()
		})
	}
	p.Wait()

	indexed := 0
	for idx, cand := range candidates {
		if vectors[idx] == nil {
			continue
		}
		meta := map[string]string{"title": jd.Title, "source": string(jd.Source)}
		if err := m.index.Upsert(ctx, sessionID, cand.id, cand.text, vectors[idx], meta); err != nil {
			m.logger.Warn("JD candidate indexing failed", zap.String("doc", cand.id), zap.Error(err))
			continue
		}
		indexed++
	}
	if indexed == 0 {
		return 0
	}

	hits, err := m.index.Similarity(ctx, sessionID, profileVec, constants.EmbeddingConfig.DefaultTopK)
	if err != nil {
		m.logger.Warn("Similarity query failed", zap.Error(err))
		return 0
	}
	if len(hits) == 0 {
		return 0
	}

	// prefer a hit belonging to this JD; older turns may still be indexed
	prefix := jdDocPrefix(jd)
	for _, hit := range hits {
		if strings.HasPrefix(hit.JobID, prefix) {
			return hit.Similarity
		}
	}
	return hits[0].Similarity
}

type jdCandidate struct {
	id   string
	text string
}

// jdCandidates returns the whole JD followed by its larger paragraphs,
// so the index can surface which region of the posting fits best
func jdCandidates(jd *domain.JobDescription) []jdCandidate {
	prefix := jdDocPrefix(jd)
	candidates := []jdCandidate{{id: prefix + "_full", text: jd.Text}}

	for i, para := range strings.Split(jd.Text, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) < minChunkChars {
			continue
		}
		candidates = append(candidates, jdCandidate{
			id:   fmt.Sprintf("%s_p%d", prefix, i+1),
			text: para,
		})
		if len(candidates) > maxJDChunks {
			break
		}
	}
	return candidates
}

func jdDocPrefix(jd *domain.JobDescription) string {
	slug := util.Slugify(jd.Title)
	if slug == "" {
		slug = "job"
	}
	return slug
}

func latestTitle(p *domain.Profile) string {
	if p == nil {
		return ""
	}
	if exp := p.LatestExperience(); exp != nil {
		return exp.Title
	}
	return ""
}

func formatMatchScore(r *domain.MatchReport) string {
	return fmt.Sprintf("%.1f/100 (%s confidence, semantic similarity %.0f%%)",
		r.Score, r.Confidence, r.Similarity*100)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
