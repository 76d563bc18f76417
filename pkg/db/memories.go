package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// UserMemory is an append-only scored record of a user message.
type UserMemory struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	Content         string    `db:"content"`
	Category        string    `db:"category"`
	Importance      string    `db:"importance"`
	Tags            []string  `db:"-"`
	TagsJSON        string    `db:"tags"`
	EmotionalWeight float64   `db:"emotional_weight"`
	RecallPriority  float64   `db:"recall_priority"`
	CreatedAt       time.Time `db:"created_at"`
}

// InsertUserMemory appends a memory. Tags are stored as a JSON array.
func (s *Store) InsertUserMemory(ctx context.Context, m *UserMemory) error {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return errors.Wrap(err, "encoding memory tags")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_memories
			(id, user_id, content, category, importance, tags, emotional_weight, recall_priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.UserID, m.Content, m.Category, m.Importance,
		string(tagsJSON), m.EmotionalWeight, m.RecallPriority, m.CreatedAt)
	return errors.Wrap(err, "inserting user memory")
}

// ListRecentMemories returns the newest limit memories for a user, newest
// first.
func (s *Store) ListRecentMemories(ctx context.Context, userID string, limit int) ([]UserMemory, error) {
	var memories []UserMemory
	err := s.db.SelectContext(ctx, &memories, `
		SELECT id, user_id, content, category, importance, tags, emotional_weight, recall_priority, created_at
		FROM user_memories WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing recent memories")
	}
	for i := range memories {
		if err := json.Unmarshal([]byte(memories[i].TagsJSON), &memories[i].Tags); err != nil {
			memories[i].Tags = []string{}
		}
	}
	return memories, nil
}

// ListMemoriesByRecall returns a user's memories ranked by recall priority.
func (s *Store) ListMemoriesByRecall(ctx context.Context, userID string, limit int) ([]UserMemory, error) {
	var memories []UserMemory
	err := s.db.SelectContext(ctx, &memories, `
		SELECT id, user_id, content, category, importance, tags, emotional_weight, recall_priority, created_at
		FROM user_memories WHERE user_id = ?
		ORDER BY recall_priority DESC, created_at DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing memories by recall priority")
	}
	for i := range memories {
		if err := json.Unmarshal([]byte(memories[i].TagsJSON), &memories[i].Tags); err != nil {
			memories[i].Tags = []string{}
		}
	}
	return memories, nil
}

// ListMemoryUserIDs returns every user with at least one stored memory.
func (s *Store) ListMemoryUserIDs(ctx context.Context) ([]string, error) {
	var userIDs []string
	err := s.db.SelectContext(ctx, &userIDs,
		`SELECT DISTINCT user_id FROM user_memories ORDER BY user_id`)
	if err != nil {
		return nil, errors.Wrap(err, "listing memory user ids")
	}
	return userIDs, nil
}
