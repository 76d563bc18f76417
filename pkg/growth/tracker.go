// Package growth maintains each bot's vocabulary, personality traits and
// developmental stage. All mutation for one bot is serialized; different
// bots never contend.
package growth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/luminal-ai/companion/pkg/db"
	"github.com/luminal-ai/companion/pkg/events"
	"github.com/luminal-ai/companion/pkg/helpers"
	"github.com/luminal-ai/companion/pkg/lexicon"
)

const traitStep = 0.1

// Store is the persistence surface the tracker needs.
type Store interface {
	TouchWord(ctx context.Context, botID, word, firstContext string, seenAt time.Time) (int, error)
	VocabularySize(ctx context.Context, botID string) (int, error)
	GetGrowthState(ctx context.Context, botID string) (*db.GrowthState, error)
	SaveGrowthState(ctx context.Context, state *db.GrowthState) error
	InsertMilestone(ctx context.Context, m *db.Milestone) error
}

// Update summarizes the effect of one processed message.
type Update struct {
	State        *db.GrowthState
	NewWords     int
	StageChanged bool
	Milestone    *db.Milestone
}

// Service is the growth tracker.
type Service struct {
	store  Store
	bus    *events.Bus
	lex    *lexicon.Set
	logger *log.Logger
	locks  *helpers.KeyedMutex
}

func NewService(store Store, bus *events.Bus, lex *lexicon.Set, logger *log.Logger) *Service {
	return &Service{
		store:  store,
		bus:    bus,
		lex:    lex,
		logger: logger,
		locks:  helpers.NewKeyedMutex(),
	}
}

// ProcessMessage absorbs one message's keywords into the bot's vocabulary,
// recomputes the stage from the distinct word count, and nudges personality
// traits. This is the only code path that creates milestones.
func (s *Service) ProcessMessage(ctx context.Context, botID, message string, keywords []string) (*Update, error) {
	s.locks.Lock(botID)
	defer s.locks.Unlock(botID)

	state, err := s.store.GetGrowthState(ctx, botID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	update := &Update{State: state}

	seen := make(map[string]struct{}, len(keywords))
	for _, word := range keywords {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}

		frequency, err := s.store.TouchWord(ctx, botID, word, message, now)
		if err != nil {
			return nil, err
		}
		if frequency == 1 {
			update.NewWords++
		}
	}

	size, err := s.store.VocabularySize(ctx, botID)
	if err != nil {
		return nil, err
	}
	state.VocabularySize = size

	previous := Stage(state.Stage)
	current := StageFor(size)
	if rank(current) > rank(previous) {
		state.Stage = string(current)
		update.StageChanged = true

		milestone := &db.Milestone{
			ID:          uuid.NewString(),
			BotID:       botID,
			Title:       fmt.Sprintf("Reached the %s stage", current),
			Description: fmt.Sprintf("Grew from %s to %s with a vocabulary of %d words", previous, current, size),
			AchievedAt:  now,
		}
		if err := s.store.InsertMilestone(ctx, milestone); err != nil {
			return nil, err
		}
		update.Milestone = milestone

		s.logger.Info("Stage milestone achieved", "bot_id", botID, "stage", current, "vocabulary", size)
		s.bus.Publish(ctx, events.MilestoneAchieved, botID, map[string]any{
			"title":      milestone.Title,
			"stage":      string(current),
			"vocabulary": size,
		})
	}

	s.applyTraits(message, state)

	state.UpdatedAt = now
	if err := s.store.SaveGrowthState(ctx, state); err != nil {
		return nil, err
	}

	return update, nil
}

// State returns the current growth snapshot without mutating anything.
func (s *Service) State(ctx context.Context, botID string) (*db.GrowthState, error) {
	return s.store.GetGrowthState(ctx, botID)
}

// NextThreshold reports the vocabulary boundary the bot is working toward.
func (s *Service) NextThreshold(ctx context.Context, botID string) (int, error) {
	state, err := s.store.GetGrowthState(ctx, botID)
	if err != nil {
		return 0, err
	}
	return NextStageThreshold(state.VocabularySize), nil
}

// applyTraits bumps personality traits by a fixed step when the message
// matches the trait lexicons. Traits never decrease automatically.
func (s *Service) applyTraits(message string, state *db.GrowthState) {
	if lexicon.ContainsAnyWord(message, s.lex.Enthusiasm) || strings.Contains(message, "!") {
		state.Enthusiasm = clampTrait(state.Enthusiasm + traitStep)
	}
	if lexicon.ContainsAnyWord(message, s.lex.Humor) {
		state.Humor = clampTrait(state.Humor + traitStep)
	}
	if lexicon.ContainsAny(message, s.lex.Curiosity) {
		state.Curiosity = clampTrait(state.Curiosity + traitStep)
	}
}

func clampTrait(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
