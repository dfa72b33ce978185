package constants

import "time"

var CacheTTL = struct {
	Profile        time.Duration
	JobSearch      time.Duration
	Embedding      time.Duration
	RouterDecision time.Duration
	JobDescription time.Duration
}{
	Profile:        24 * time.Hour,
	JobSearch:      1 * time.Hour,
	Embedding:      24 * time.Hour,
	RouterDecision: 5 * time.Minute,
	JobDescription: 6 * time.Hour,
}

var WebSocketConfig = struct {
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
}{
	WriteTimeout:   10 * time.Second,
	PongTimeout:    60 * time.Second,
	PingInterval:   54 * time.Second,
	MaxMessageSize: 1 << 20,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var InputLimits = struct {
	MaxQueryLength    int
	MaxResumeBytes    int64
	MaxSessionHistory int
}{
	MaxQueryLength:    500,
	MaxResumeBytes:    10 << 20, // upload cap, larger files are rejected before parsing
	MaxSessionHistory: 50,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    1 * time.Hour, // 429s park the provider far longer than plain failures
	HealthCheckInterval: 10 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}

var APIConfig = struct {
	ApifyBaseURL    string
	ApifyActorID    string
	ApifyTimeout    time.Duration
	TavilyBaseURL   string
	TavilyTimeout   time.Duration
	FetchTimeout    time.Duration
	MaxSearchResult int
}{
	ApifyBaseURL:    "https://api.apify.com/v2",
	ApifyActorID:    "5fajYOBUfeb6fgKlB",
	ApifyTimeout:    90 * time.Second, // actor cold starts routinely take over a minute
	TavilyBaseURL:   "https://api.tavily.com",
	TavilyTimeout:   10 * time.Second,
	FetchTimeout:    15 * time.Second,
	MaxSearchResult: 5,
}

var ScoringConfig = struct {
	ExactMatchWeight    float64
	PartialMatchWeight  float64
	MLScoreBonus        float64
	LLMAdjustmentBonus  float64
	SeniorGapPenalty    float64
	HighConfidenceScore float64
	HighConfidenceRatio float64
	MidConfidenceScore  float64
	MidConfidenceRatio  float64
}{
	ExactMatchWeight:    1.0,
	PartialMatchWeight:  0.5,
	MLScoreBonus:        10,
	LLMAdjustmentBonus:  5,
	SeniorGapPenalty:    0.85,
	HighConfidenceScore: 70,
	HighConfidenceRatio: 0.6,
	MidConfidenceScore:  50,
	MidConfidenceRatio:  0.4,
}

var CompletenessWeights = struct {
	About       int
	Headline    int
	Experience  int
	Education   int
	Skills      int
	Certs       int
	PartialLow  float64
	PartialHigh float64
}{
	About:       15,
	Headline:    10,
	Experience:  30,
	Education:   15,
	Skills:      20,
	Certs:       10,
	PartialLow:  0.3,
	PartialHigh: 0.5,
}

var EmbeddingConfig = struct {
	Dimensions    int
	MinIndexDocs  int
	DefaultTopK   int
	RecencyYears  int
	ConsistentMin int
}{
	Dimensions:    768,
	MinIndexDocs:  1,
	DefaultTopK:   5,
	RecencyYears:  2,
	ConsistentMin: 2,
}

var StringLimits = struct {
	Headline       int
	AboutSection   int
	BulletPoint    int
	FollowUpLength int
	FollowUpCount  int
	SnippetLength  int
}{
	Headline:       220,
	AboutSection:   2600,
	BulletPoint:    250,
	FollowUpLength: 90,
	FollowUpCount:  3,
	SnippetLength:  300,
}
