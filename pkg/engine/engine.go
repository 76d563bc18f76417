// Package engine wires the analysis components into the per-utterance
// pipeline: extract keywords, classify intent, stamp temporal context,
// score importance, persist the memory and facts, advance growth, and fold
// the message into the user's style profile.
package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/luminal-ai/companion/pkg/db"
	"github.com/luminal-ai/companion/pkg/events"
	"github.com/luminal-ai/companion/pkg/extract"
	"github.com/luminal-ai/companion/pkg/growth"
	"github.com/luminal-ai/companion/pkg/helpers"
	"github.com/luminal-ai/companion/pkg/importance"
	"github.com/luminal-ai/companion/pkg/intent"
	"github.com/luminal-ai/companion/pkg/retrospect"
	"github.com/luminal-ai/companion/pkg/style"
	"github.com/luminal-ai/companion/pkg/timectx"
	"github.com/luminal-ai/companion/pkg/voice"
)

// Store is the persistence surface the pipeline itself touches. Growth and
// style keep their own narrower store interfaces.
type Store interface {
	InsertUserMemory(ctx context.Context, m *db.UserMemory) error
	InsertUserFact(ctx context.Context, f *db.UserFact) error
	ListUserFacts(ctx context.Context, userID string) ([]db.UserFact, error)
	ListRecentMemories(ctx context.Context, userID string, limit int) ([]db.UserMemory, error)
	ListMemoryUserIDs(ctx context.Context) ([]string, error)
}

// Request is one inbound utterance plus the contextual flags the calling
// layer supplies.
type Request struct {
	UserID  string
	BotID   string
	Message string
	Mood    string
	Flags   importance.Flags
}

// Result is everything the pipeline derived from one utterance.
type Result struct {
	MemoryID    string
	Intent      intent.Intent
	Analysis    importance.Analysis
	TimeContext timectx.Context
	Growth      *growth.Update
}

// Engine is the façade over the analysis components.
type Engine struct {
	logger      *log.Logger
	store       Store
	extractor   *extract.Extractor
	classifier  *intent.Classifier
	scorer      *importance.Scorer
	growth      *growth.Service
	styles      *style.Adapter
	retro       *retrospect.Generator
	voices      *voice.Selector
	bus         *events.Bus
	recentLimit int
	now         func() time.Time
}

type Options struct {
	Logger      *log.Logger
	Store       Store
	Extractor   *extract.Extractor
	Classifier  *intent.Classifier
	Scorer      *importance.Scorer
	Growth      *growth.Service
	Styles      *style.Adapter
	Retrospect  *retrospect.Generator
	Voices      *voice.Selector
	Bus         *events.Bus
	RecentLimit int
}

func New(opts Options) *Engine {
	limit := opts.RecentLimit
	if limit <= 0 {
		limit = 20
	}
	return &Engine{
		logger:      opts.Logger,
		store:       opts.Store,
		extractor:   opts.Extractor,
		classifier:  opts.Classifier,
		scorer:      opts.Scorer,
		growth:      opts.Growth,
		styles:      opts.Styles,
		retro:       opts.Retrospect,
		voices:      opts.Voices,
		bus:         opts.Bus,
		recentLimit: limit,
		now:         time.Now,
	}
}

// Process runs the full pipeline for one utterance. Classification never
// fails; only persistence errors surface.
func (e *Engine) Process(ctx context.Context, req Request) (*Result, error) {
	keywords := e.extractor.Keywords(req.Message)
	entities := e.extractor.PersonalInfo(req.Message)

	convCtx, err := e.assembleContext(ctx, req)
	if err != nil {
		return nil, err
	}

	detected := e.classifier.Detect(req.Message, convCtx)
	tc := timectx.Extract(req.Message, e.now())

	flags := req.Flags
	if len(entities) > 0 {
		flags.ContainsPersonalInfo = true
	}
	analysis := e.scorer.Analyze(req.Message, flags)

	memory := &db.UserMemory{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		Content:         req.Message,
		Category:        analysis.Category,
		Importance:      string(analysis.Importance),
		Tags:            analysis.Tags,
		EmotionalWeight: analysis.EmotionalWeight,
		RecallPriority:  analysis.RecallPriority,
		CreatedAt:       tc.Timestamp,
	}
	if err := e.store.InsertUserMemory(ctx, memory); err != nil {
		return nil, err
	}
	e.bus.Publish(ctx, events.MemoryStored, req.UserID, map[string]any{
		"memoryId": memory.ID,
		"category": memory.Category,
	})

	for _, entity := range entities {
		fact := &db.UserFact{
			ID:        uuid.NewString(),
			UserID:    req.UserID,
			Fact:      entity.Value,
			Category:  string(entity.Kind),
			CreatedAt: tc.Timestamp,
		}
		if err := e.store.InsertUserFact(ctx, fact); err != nil {
			return nil, err
		}
	}

	update, err := e.growth.ProcessMessage(ctx, req.BotID, req.Message, keywords)
	if err != nil {
		return nil, err
	}

	if err := e.styles.Update(ctx, req.UserID, []string{req.Message}); err != nil {
		return nil, err
	}

	e.logger.Debug("Processed utterance",
		"user_id", req.UserID,
		"intent", detected.Type,
		"category", analysis.Category,
		"new_words", update.NewWords)

	return &Result{
		MemoryID:    memory.ID,
		Intent:      detected,
		Analysis:    analysis,
		TimeContext: tc,
		Growth:      update,
	}, nil
}

// VoiceSettings computes synthesis parameters for the bot's current stage.
func (e *Engine) VoiceSettings(ctx context.Context, botID, mood string) (voice.Settings, error) {
	state, err := e.growth.State(ctx, botID)
	if err != nil {
		return voice.Settings{}, err
	}
	return e.voices.ForMood(mood, growth.Stage(state.Stage)), nil
}

// StylePrompt renders the user's current style directive.
func (e *Engine) StylePrompt(ctx context.Context, userID string) (string, error) {
	return e.styles.Prompt(ctx, userID)
}

// Retrospective builds a summary of the user's recent window and announces
// it on the bus.
func (e *Engine) Retrospective(ctx context.Context, userID, botID, timeframe string) (retrospect.Summary, error) {
	memories, err := e.store.ListRecentMemories(ctx, userID, e.recentLimit)
	if err != nil {
		return retrospect.Summary{}, err
	}
	facts, err := e.store.ListUserFacts(ctx, userID)
	if err != nil {
		return retrospect.Summary{}, err
	}
	state, err := e.growth.State(ctx, botID)
	if err != nil {
		return retrospect.Summary{}, err
	}

	messages := make([]string, 0, len(memories))
	weightTotal := 0.0
	for _, memory := range memories {
		messages = append(messages, memory.Content)
		weightTotal += memory.EmotionalWeight
	}

	factStrings := make([]string, 0, len(facts))
	for _, fact := range facts {
		factStrings = append(factStrings, fact.Fact)
	}

	summary := e.retro.Generate(ctx, retrospect.Context{
		UserMessages:  messages,
		Timeframe:     timeframe,
		UserFacts:     factStrings,
		EmotionalTone: emotionalTone(weightTotal, len(memories)),
		Stage:         growth.Stage(state.Stage),
	})

	e.bus.Publish(ctx, events.SummaryGenerated, userID, map[string]any{
		"timeframe": timeframe,
		"themes":    summary.KeyThemes,
	})
	return summary, nil
}

// RetrospectiveAll runs the retrospective for every user with stored
// memories; used by the periodic review trigger.
func (e *Engine) RetrospectiveAll(ctx context.Context, botID, timeframe string) {
	userIDs, err := e.store.ListMemoryUserIDs(ctx)
	if err != nil {
		e.logger.Error("Listing users for retrospective failed", "error", err)
		return
	}
	for _, userID := range userIDs {
		bot := botID
		if bot == "" {
			bot = userID
		}
		if _, err := e.Retrospective(ctx, userID, bot, timeframe); err != nil {
			e.logger.Error("Retrospective failed", "user_id", userID, "error", err)
		}
	}
}

func (e *Engine) assembleContext(ctx context.Context, req Request) (intent.Context, error) {
	memories, err := e.store.ListRecentMemories(ctx, req.UserID, e.recentLimit)
	if err != nil {
		return intent.Context{}, err
	}
	facts, err := e.store.ListUserFacts(ctx, req.UserID)
	if err != nil {
		return intent.Context{}, err
	}
	state, err := e.growth.State(ctx, req.BotID)
	if err != nil {
		return intent.Context{}, err
	}

	recent := make([]string, 0, len(memories))
	for _, memory := range memories {
		recent = append(recent, memory.Content)
	}
	known := make([]string, 0, len(facts))
	for _, fact := range facts {
		known = append(known, fact.Fact)
	}

	return intent.Context{
		RecentMessages: helpers.SafeLastN(recent, e.recentLimit),
		KnownFacts:     known,
		Mood:           req.Mood,
		Stage:          growth.Stage(state.Stage),
	}, nil
}

func emotionalTone(weightTotal float64, count int) string {
	if count == 0 {
		return "neutral"
	}
	avg := weightTotal / float64(count)
	switch {
	case avg >= 0.65:
		return "intense"
	case avg >= 0.45:
		return "balanced"
	default:
		return "calm"
	}
}
