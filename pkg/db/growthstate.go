package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

// GrowthState is the persisted per-bot growth snapshot. Stage is derived
// from vocabulary size; the stored value is a cache of the last derivation,
// kept so stage transitions can be detected.
type GrowthState struct {
	BotID          string    `db:"bot_id"`
	VocabularySize int       `db:"vocabulary_size"`
	Stage          string    `db:"stage"`
	Enthusiasm     float64   `db:"enthusiasm"`
	Humor          float64   `db:"humor"`
	Curiosity      float64   `db:"curiosity"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Milestone is an immutable record of one stage transition.
type Milestone struct {
	ID          string    `db:"id"`
	BotID       string    `db:"bot_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	AchievedAt  time.Time `db:"achieved_at"`
}

// GetGrowthState returns the stored state, or a fresh infant state when the
// bot has no row yet.
func (s *Store) GetGrowthState(ctx context.Context, botID string) (*GrowthState, error) {
	var state GrowthState
	err := s.db.GetContext(ctx, &state, `
		SELECT bot_id, vocabulary_size, stage, enthusiasm, humor, curiosity, updated_at
		FROM growth_states WHERE bot_id = ?
	`, botID)
	if err != nil {
		if isNoRows(err) {
			return &GrowthState{
				BotID:      botID,
				Stage:      "infant",
				Enthusiasm: 3.0,
				Humor:      3.0,
				Curiosity:  3.0,
				UpdatedAt:  time.Now(),
			}, nil
		}
		return nil, errors.Wrap(err, "getting growth state")
	}
	return &state, nil
}

// SaveGrowthState upserts the per-bot growth snapshot.
func (s *Store) SaveGrowthState(ctx context.Context, state *GrowthState) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO growth_states (bot_id, vocabulary_size, stage, enthusiasm, humor, curiosity, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (bot_id) DO UPDATE SET
			vocabulary_size = excluded.vocabulary_size,
			stage = excluded.stage,
			enthusiasm = excluded.enthusiasm,
			humor = excluded.humor,
			curiosity = excluded.curiosity,
			updated_at = excluded.updated_at
	`, state.BotID, state.VocabularySize, state.Stage,
		state.Enthusiasm, state.Humor, state.Curiosity, state.UpdatedAt)
	return errors.Wrap(err, "saving growth state")
}

// InsertMilestone appends a milestone record.
func (s *Store) InsertMilestone(ctx context.Context, m *Milestone) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO milestones (id, bot_id, title, description, achieved_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.BotID, m.Title, m.Description, m.AchievedAt)
	return errors.Wrap(err, "inserting milestone")
}

// ListMilestones returns a bot's milestones in the order they were achieved.
func (s *Store) ListMilestones(ctx context.Context, botID string) ([]Milestone, error) {
	var milestones []Milestone
	err := s.db.SelectContext(ctx, &milestones, `
		SELECT id, bot_id, title, description, achieved_at
		FROM milestones WHERE bot_id = ? ORDER BY achieved_at
	`, botID)
	if err != nil {
		return nil, errors.Wrap(err, "listing milestones")
	}
	return milestones, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
